// Political factions — open, ideology-aligned groupings, distinct from secret
// conspiracies. Membership changes only by explicit caller action.
package politics

import (
	"github.com/google/uuid"

	"github.com/talgya/crownfall/internal/advisors"
)

// FactionType categorizes what a faction organizes around.
type FactionType string

const (
	FactionCourt    FactionType = "court"
	FactionMilitary FactionType = "military"
	FactionMerchant FactionType = "merchant"
	FactionClergy   FactionType = "clergy"
	FactionPopulist FactionType = "populist"
)

// PoliticalFaction is a named ideological grouping at court. Power is derived
// by PoliticalPower, never stored.
type PoliticalFaction struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Type     FactionType       `json:"type"`
	Ideology advisors.Ideology `json:"ideology"`

	LeaderID   *advisors.AdvisorID  `json:"leader_id,omitempty"`
	Members    []advisors.AdvisorID `json:"members,omitempty"`
	Supporters []advisors.AdvisorID `json:"supporters,omitempty"`

	Influence  float64 `json:"influence"`  // 0.0–1.0
	Popularity float64 `json:"popularity"` // 0.0–1.0
	Cohesion   float64 `json:"cohesion"`   // 0.0–1.0
	Militancy  float64 `json:"militancy"`  // 0.0–1.0

	Treasury     float64 `json:"treasury"` // crowns
	Propaganda   float64 `json:"propaganda"`   // 0.0–1.0 campaign intensity
	Intelligence float64 `json:"intelligence"` // 0.0–1.0 informant reach

	Allies []string `json:"allied_factions,omitempty"`
	Rivals []string `json:"rival_factions,omitempty"`
}

// NewFaction creates a faction with a fresh id and middling cohesion.
func NewFaction(name string, kind FactionType, ideology advisors.Ideology) *PoliticalFaction {
	return &PoliticalFaction{
		ID:       uuid.NewString(),
		Name:     name,
		Type:     kind,
		Ideology: ideology,
		Cohesion: 0.5,
	}
}

// PoliticalPower derives the faction's effective weight: influence and
// popularity dominate, size and money help with diminishing returns, and a
// fractious faction pays for its disunity.
func (f *PoliticalFaction) PoliticalPower() float64 {
	sizeBonus := 0.05 * float64(len(f.Members))
	if sizeBonus > 0.3 {
		sizeBonus = 0.3
	}

	wealthBonus := f.Treasury / 1000.0 * 0.1
	if wealthBonus > 0.2 {
		wealthBonus = 0.2
	}

	power := 0.6*f.Influence + 0.4*f.Popularity + sizeBonus + (f.Cohesion-0.5)*0.2 + wealthBonus
	return clamp01(power)
}

// HasMember reports whether the advisor is a listed member.
func (f *PoliticalFaction) HasMember(id advisors.AdvisorID) bool {
	for _, m := range f.Members {
		if m == id {
			return true
		}
	}
	return false
}

// AddMember enrolls an advisor. Rejects duplicates.
func (f *PoliticalFaction) AddMember(id advisors.AdvisorID) bool {
	if f.HasMember(id) {
		return false
	}
	f.Members = append(f.Members, id)
	return true
}

// RemoveMember drops an advisor from the rolls.
func (f *PoliticalFaction) RemoveMember(id advisors.AdvisorID) bool {
	for i, m := range f.Members {
		if m == id {
			f.Members = append(f.Members[:i], f.Members[i+1:]...)
			return true
		}
	}
	return false
}

// ReformStatus is the lifecycle of a proposed reform.
type ReformStatus string

const (
	ReformProposed ReformStatus = "proposed"
	ReformPassed   ReformStatus = "passed"
	ReformRejected ReformStatus = "rejected"
)

// Reform is a policy change proposed by a faction and voted on by the others.
type Reform struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	ProposedBy string       `json:"proposed_by"` // faction id
	Status     ReformStatus `json:"status"`

	// Net weighted support accumulated from votes, -1.0 to 1.0.
	Support float64 `json:"support"`
}

// NewReform creates a proposed reform.
func NewReform(name, factionID string) *Reform {
	return &Reform{
		ID:         uuid.NewString(),
		Name:       name,
		ProposedBy: factionID,
		Status:     ReformProposed,
	}
}
