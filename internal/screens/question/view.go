package question

import (
	"fmt"
	"strings"

	"github.com/abhisek/levelup/internal/quiz"
	"github.com/abhisek/levelup/internal/ui/layout"
	"github.com/abhisek/levelup/internal/ui/theme"
)

func (s *QuestionScreen) View(width, height int) string {
	var b strings.Builder

	if a := s.ctrl.Attempt(); a != nil {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", a.CurrentIndex+1, len(a.Questions))))
		b.WriteString("\n\n")
	}

	b.WriteString(s.choice.View())

	switch s.feedback {
	case feedbackCorrect:
		b.WriteString("\n" + theme.Correct.Render(fmt.Sprintf("Correct! +%d XP", quiz.XPPerCorrectAnswer)))
	case feedbackWrong:
		b.WriteString("\n" + theme.Incorrect.Render(wrongAnswerText))
	}

	if s.hint != "" {
		b.WriteString("\n\n" + theme.Hint.Render("Hint: "+s.hint))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Incorrect.Render(s.errMsg))
	}

	card := theme.Card.Width(min(width-4, 72)).Render(b.String())
	return layout.Center(card, width, height)
}
