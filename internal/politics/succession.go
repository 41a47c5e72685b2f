// Leadership, succession candidates, and the civilization's political state.
package politics

import "github.com/talgya/crownfall/internal/advisors"

// LeadershipStyle is how the current leader rules.
type LeadershipStyle string

const (
	StyleAuthoritarian LeadershipStyle = "authoritarian"
	StyleConsultative  LeadershipStyle = "consultative"
	StyleDelegative    LeadershipStyle = "delegative"
)

// Leader is the civilization's current ruler. A leader may have risen from the
// council; the advisor record, if any, stays in the arena.
type Leader struct {
	AdvisorID advisors.AdvisorID `json:"advisor_id"`
	Name      string             `json:"name"`

	Legitimacy float64         `json:"legitimacy"` // 0.0–1.0
	Popularity float64         `json:"popularity"` // 0.0–1.0
	Paranoia   float64         `json:"paranoia"`   // 0.0–1.0
	Style      LeadershipStyle `json:"style"`
}

// SuccessionCandidate is a claimant in a succession crisis. Strength is
// derived, never stored.
type SuccessionCandidate struct {
	AdvisorID advisors.AdvisorID `json:"advisor_id"`

	Legitimacy     float64  `json:"legitimacy"`      // 0.0–1.0
	SupportBase    float64  `json:"support_base"`    // 0.0–1.0
	BackingFactions []string `json:"backing_factions,omitempty"`
	BloodlineClaim float64  `json:"bloodline_claim"` // 0.0–1.0
	AppointedHeir  bool     `json:"appointed_heir"`
	Merit          float64  `json:"merit"`           // 0.0–1.0
	PopularSupport float64  `json:"popular_support"` // 0.0–1.0
	CampaignFunds  float64  `json:"campaign_funds"`  // crowns
	Promises       []string `json:"campaign_promises,omitempty"`
}

// Strength derives the candidate's overall claim weight.
func (c *SuccessionCandidate) Strength() float64 {
	s := c.Legitimacy*0.25 + c.SupportBase*0.2 + c.Merit*0.2 +
		c.PopularSupport*0.15 + c.BloodlineClaim*0.1
	if c.AppointedHeir {
		s += 0.2
	}
	s += 0.05 * float64(len(c.BackingFactions))
	funds := c.CampaignFunds / 500.0 * 0.1
	if funds > 0.1 {
		funds = 0.1
	}
	s += funds
	return clamp01(s)
}

// Stability is the civilization-wide political condition.
type Stability string

const (
	StabilityStable     Stability = "stable"
	StabilityUnstable   Stability = "unstable"
	StabilityCrisis     Stability = "crisis"
	StabilityCollapsing Stability = "collapsing"
)

// GovernmentType is the constitutional form of the civilization.
type GovernmentType string

const (
	GovMonarchy   GovernmentType = "monarchy"
	GovRepublic   GovernmentType = "republic"
	GovTheocracy  GovernmentType = "theocracy"
	GovJunta      GovernmentType = "junta"
)

// PoliticalState is the per-civilization aggregate condition. Stability and
// CoupRisk are always recomputed by the resolver, never hand-set by callers.
type PoliticalState struct {
	Stability       Stability      `json:"stability"`
	Legitimacy      float64        `json:"legitimacy"`       // 0.0–1.0
	Corruption      float64        `json:"corruption"`       // 0.0–1.0
	InternalTension float64        `json:"internal_tension"` // 0.0–1.0
	CoupRisk        float64        `json:"coup_risk"`        // 0.0–1.0
	Government      GovernmentType `json:"government"`
	CouncilAutonomy float64        `json:"council_autonomy"` // 0.0–1.0
}
