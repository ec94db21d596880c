package phase

// Phase is the lifecycle state of one search request.
type Phase string

// Search phase constants.
const (
	Idle      Phase = "idle"
	Searching Phase = "searching"
	// ResultsFound means structured results were returned.
	ResultsFound Phase = "results-found"
	// AIAnswered means nothing matched but AI guidance is available.
	AIAnswered Phase = "ai-answered"
	// EmptyNoAI means nothing matched and AI guidance failed.
	EmptyNoAI Phase = "empty-no-ai"
)

// IsTerminal reports whether the phase ends a search.
func (p Phase) IsTerminal() bool {
	return p == ResultsFound || p == AIAnswered || p == EmptyNoAI
}

// IsValid checks if the phase is one of the supported values.
func (p Phase) IsValid() bool {
	return p == Idle || p == Searching || p.IsTerminal()
}
