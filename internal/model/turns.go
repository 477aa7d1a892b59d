package model

// TriviaQuestion is one multiple-choice question
type TriviaQuestion struct {
	Text    string
	Options []string
	Answer  int // Index into Options, -1 when hidden
}

// TriviaState is a snapshot of a trivia game
type TriviaState struct {
	RunID         RunID
	Status        SessionStatus
	QuestionIndex int
	QuestionCount int
	Question      *TriviaQuestion // Nil once finished
	Answered      bool
	Selected      int // Selected option for the current question, -1 if none
	Correct       int
	Awarded       int
}

// Symbol is the face of a memory card
type Symbol string

// MemoryCard is one entry in a memory match deck
type MemoryCard struct {
	ID      int
	Symbol  Symbol
	Flipped bool
	Matched bool
}

// MemoryState is a snapshot of a memory match game
type MemoryState struct {
	RunID      RunID
	Status     SessionStatus
	Cards      []MemoryCard // Symbols of face-down cards are blanked
	Processing bool
	Moves      int
	Awarded    int
}
