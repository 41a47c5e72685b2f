// Package politics provides the relationship ledger, conspiracy networks,
// factions, and succession types of the court-intrigue core.
package politics

import (
	"math"

	"github.com/talgya/crownfall/internal/advisors"
)

// ImpactKind categorizes an event affecting a relationship. Any collaborator
// (resource events, diplomacy, espionage results) may report one.
type ImpactKind string

const (
	ImpactBetrayal      ImpactKind = "betrayal"
	ImpactExposure      ImpactKind = "exposure"
	ImpactCooperation   ImpactKind = "cooperation"
	ImpactMutualBenefit ImpactKind = "mutual_benefit"
	ImpactConflict      ImpactKind = "conflict"
)

// Relationship is a directed edge from one advisor to another. Created lazily
// by the court arena, never explicitly destroyed; decay zeroes it out instead.
type Relationship struct {
	Source advisors.AdvisorID `json:"source"`
	Target advisors.AdvisorID `json:"target"`

	Trust           float64 `json:"trust"`            // -1.0 to 1.0
	Influence       float64 `json:"influence"`        // 0.0 to 1.0, sway over the target
	ConspiracyLevel float64 `json:"conspiracy_level"` // 0.0 to 1.0, established complicity

	// SharedSecrets holds ids of memories both parties are complicit in.
	SharedSecrets []string `json:"shared_secrets,omitempty"`
}

// NewRelationship creates a blank edge between two advisors.
func NewRelationship(source, target advisors.AdvisorID) *Relationship {
	return &Relationship{Source: source, Target: target}
}

// Update applies an event to the edge. Impact magnitudes are clamped, never
// rejected; a bad upstream value must not crash a turn.
func (r *Relationship) Update(impact float64, kind ImpactKind) {
	impact = clampAbs(impact)

	switch kind {
	case ImpactBetrayal, ImpactExposure:
		r.Trust -= math.Abs(impact)
		r.ConspiracyLevel *= 0.5
	case ImpactCooperation, ImpactMutualBenefit:
		r.Trust += impact * 0.5
		// Complicity only deepens once real trust is established.
		if r.Trust > 0.7 {
			r.ConspiracyLevel += 0.05
		}
	case ImpactConflict:
		r.Trust -= impact * 0.3
		r.Influence *= 0.9
	}

	r.clamp()
}

// Decay relaxes the edge toward neutral. Conspiracy ties fray at twice the
// rate of trust: secrets demand upkeep.
func (r *Relationship) Decay(rate float64) {
	r.Trust -= r.Trust * rate
	r.ConspiracyLevel -= r.ConspiracyLevel * 2 * rate
	r.clamp()
}

// ShareSecret records a memory id both parties are complicit in.
func (r *Relationship) ShareSecret(memoryID string) {
	for _, id := range r.SharedSecrets {
		if id == memoryID {
			return
		}
	}
	r.SharedSecrets = append(r.SharedSecrets, memoryID)
}

func (r *Relationship) clamp() {
	if r.Trust < -1 {
		r.Trust = -1
	}
	if r.Trust > 1 {
		r.Trust = 1
	}
	r.Influence = clamp01(r.Influence)
	r.ConspiracyLevel = clamp01(r.ConspiracyLevel)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampAbs bounds an impact magnitude to [-1, 1].
func clampAbs(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
