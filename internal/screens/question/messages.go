package question

import "time"

// persistedMsg reports the outcome of a history write.
type persistedMsg struct {
	What string
	Err  error
}

// hintTickMsg polls the hint service while a hint is being generated.
type hintTickMsg time.Time
