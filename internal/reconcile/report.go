package reconcile

import "github.com/ternarybob/arbor"

// Report is the coverage tally emitted by one reconciliation pass.
type Report struct {
	Articles int
	// Collection sizes after the pass
	Summaries int
	Tips      int

	SummariesCreated     int
	SummariesRegenerated int
	TipsCreated          int
	TipsRegenerated      int

	// MalformedTips counts tips documents found violating the
	// structured-object invariant during this pass.
	MalformedTips int
	// PlaceholdersRemaining counts records left as placeholders because
	// regeneration was unavailable.
	PlaceholdersRemaining int

	// Writes is the total number of repair writes issued. A converged
	// store yields zero.
	Writes int
}

// Log emits the coverage report through the structured logger.
func (r *Report) Log(logger arbor.ILogger) {
	logger.Info().
		Int("articles", r.Articles).
		Int("summaries", r.Summaries).
		Int("tips", r.Tips).
		Int("summaries_created", r.SummariesCreated).
		Int("summaries_regenerated", r.SummariesRegenerated).
		Int("tips_created", r.TipsCreated).
		Int("tips_regenerated", r.TipsRegenerated).
		Int("malformed_tips", r.MalformedTips).
		Int("placeholders_remaining", r.PlaceholdersRemaining).
		Int("writes", r.Writes).
		Msg("Reconciliation pass completed")
}
