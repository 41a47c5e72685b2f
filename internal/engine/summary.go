// Read-only projections for narrative and UI consumers. Summaries carry
// counts and public standings only — never secret conspiracy membership, so a
// civilization that doesn't own this court learns nothing it shouldn't.
package engine

import "github.com/talgya/crownfall/internal/politics"

// Summary is the outward-facing view of a court.
type Summary struct {
	Civilization string `json:"civilization"`
	Turn         uint64 `json:"turn"`

	Leader           string  `json:"leader"`
	LeaderLegitimacy float64 `json:"leader_legitimacy"`

	AdvisorCount    int `json:"advisor_count"`
	ImprisonedCount int `json:"imprisoned_count"`

	ActiveConspiracies   int `json:"active_conspiracies"`
	ArchivedConspiracies int `json:"archived_conspiracies"`

	TopFaction      string  `json:"top_faction,omitempty"`
	TopFactionPower float64 `json:"top_faction_power,omitempty"`

	Stability   politics.Stability `json:"stability"`
	Temperature float64            `json:"temperature"`
}

// Summarize projects the court into its public view.
func (c *Court) Summarize() Summary {
	s := Summary{
		Civilization:         c.Civilization,
		Turn:                 c.Turn,
		Leader:               c.Leader.Name,
		LeaderLegitimacy:     c.Leader.Legitimacy,
		AdvisorCount:         len(c.Advisors),
		ArchivedConspiracies: len(c.Archive),
		Stability:            c.State.Stability,
		Temperature:          c.Temperature,
	}

	for _, a := range c.Advisors {
		if a.Imprisoned {
			s.ImprisonedCount++
		}
	}

	for _, n := range c.Conspiracies {
		if n.Status == politics.ConspiracyActive {
			s.ActiveConspiracies++
		}
	}

	for _, f := range c.sortedFactions() {
		if power := f.PoliticalPower(); power > s.TopFactionPower {
			s.TopFaction = f.Name
			s.TopFactionPower = power
		}
	}

	return s
}
