package catalog

// defaultLevels is the built-in question bank.
var defaultLevels = []Level{
	{
		Number: 1,
		Title:  "HTML Basics",
		Questions: []Question{
			{
				Prompt:  "What does HTML stand for?",
				Options: []string{"HyperText Markup Language", "HyperTransfer Main Link", "HyperText Main Language"},
				Correct: "HyperText Markup Language",
			},
			{
				Prompt:  "Which tag is used for images in HTML?",
				Options: []string{"<img>", "<picture>", "<image>"},
				Correct: "<img>",
			},
		},
	},
	{
		Number: 2,
		Title:  "React Native",
		Questions: []Question{
			{
				Prompt:  "What is React Native?",
				Options: []string{"Mobile App Framework", "Game Engine", "Web Browser"},
				Correct: "Mobile App Framework",
			},
			{
				Prompt:  "Which component is used for touch events?",
				Options: []string{"TouchableOpacity", "Pressable", "Button"},
				Correct: "TouchableOpacity",
			},
		},
	},
	{
		Number: 3,
		Title:  "Styling",
		Questions: []Question{
			{
				Prompt:  "Which language is used for styling web pages?",
				Options: []string{"Python", "CSS", "Java"},
				Correct: "CSS",
			},
			{
				Prompt:  "How do you apply styles in React Native?",
				Options: []string{"CSS", "Stylesheet", "Inline"},
				Correct: "Stylesheet",
			},
		},
	},
}

var defaultCatalog = MustNew(defaultLevels)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}
