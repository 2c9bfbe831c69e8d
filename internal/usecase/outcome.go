package usecase

// Outcome distinguishes a transition that changed state from a benign
// repeat, so callers don't have to parse message strings.
type Outcome string

const (
	OutcomeApplied        Outcome = "applied"
	OutcomeAlreadyInState Outcome = "already_in_state"
)
