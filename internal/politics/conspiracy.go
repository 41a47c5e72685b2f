// Conspiracy networks — secret alliances of advisors with a shared illicit
// objective, advanced by a per-turn state machine.
package politics

import (
	"github.com/google/uuid"

	"github.com/talgya/crownfall/internal/advisors"
)

// ConspiracyStatus is the lifecycle state of a network. Forming is initial;
// everything except forming and active is terminal and archive-only.
type ConspiracyStatus string

const (
	ConspiracyForming    ConspiracyStatus = "forming"
	ConspiracyActive     ConspiracyStatus = "active"
	ConspiracyExposed    ConspiracyStatus = "exposed"
	ConspiracySuccessful ConspiracyStatus = "successful"
	ConspiracyFailed     ConspiracyStatus = "failed"
	ConspiracyDisbanded  ConspiracyStatus = "disbanded"
)

// Terminal reports whether the status is archive-only.
func (s ConspiracyStatus) Terminal() bool {
	switch s {
	case ConspiracyExposed, ConspiracySuccessful, ConspiracyFailed, ConspiracyDisbanded:
		return true
	}
	return false
}

// ConspiracyType categorizes what a network is plotting.
type ConspiracyType string

const (
	ConspiracyCoupPlot     ConspiracyType = "coup_plot"
	ConspiracyEmbezzlement ConspiracyType = "embezzlement"
	ConspiracySabotage     ConspiracyType = "sabotage"
	ConspiracySuccession   ConspiracyType = "succession_plot"
)

// ConspiracyNetwork tracks one secret alliance. The leader is never listed in
// Members; strength and discovery risk move in lockstep with membership.
type ConspiracyNetwork struct {
	ID     string           `json:"id"`
	Type   ConspiracyType   `json:"type"`
	Status ConspiracyStatus `json:"status"`

	LeaderID advisors.AdvisorID   `json:"leader_id"`
	Members  []advisors.AdvisorID `json:"members,omitempty"`
	TargetID *advisors.AdvisorID  `json:"target_id,omitempty"`

	Objective     string `json:"objective"`
	FormedTurn    uint64 `json:"formed_turn"`
	ActivatedTurn uint64 `json:"activated_turn,omitempty"`

	Strength      float64 `json:"network_strength"` // 0.0–1.0
	Secrecy       float64 `json:"secrecy_level"`    // 0.0–1.0
	DiscoveryRisk float64 `json:"discovery_risk"`   // 0.0–1.0

	Funds float64  `json:"financial_resources"`
	Intel []string `json:"information_assets,omitempty"` // memory ids

	// ExternalSupport maps a backer tag (foreign court, guild, cult) to the
	// weight of its backing.
	ExternalSupport map[string]float64 `json:"external_support,omitempty"`
}

// NewConspiracy founds a network in the forming state.
func NewConspiracy(kind ConspiracyType, leader advisors.AdvisorID, objective string, turn uint64) *ConspiracyNetwork {
	return &ConspiracyNetwork{
		ID:         uuid.NewString(),
		Type:       kind,
		Status:     ConspiracyForming,
		LeaderID:   leader,
		Objective:  objective,
		FormedTurn: turn,
		Strength:   0.2,
		Secrecy:    0.8,
	}
}

// HasMember reports whether the advisor is the leader or a listed member.
func (c *ConspiracyNetwork) HasMember(id advisors.AdvisorID) bool {
	if id == c.LeaderID {
		return true
	}
	for _, m := range c.Members {
		if m == id {
			return true
		}
	}
	return false
}

// AddMember brings an advisor into the plot. Rejects the leader and existing
// members. Growth strengthens the network but widens the circle of people who
// can talk.
func (c *ConspiracyNetwork) AddMember(id advisors.AdvisorID) bool {
	if c.HasMember(id) {
		return false
	}
	c.Members = append(c.Members, id)
	c.Strength = clamp01(c.Strength + 0.1)
	c.DiscoveryRisk = clamp01(c.DiscoveryRisk + 0.05)
	return true
}

// RemoveMember drops an advisor from the plot. A departing conspirator knows
// everything, so the risk spike is strictly larger than a join ever added.
func (c *ConspiracyNetwork) RemoveMember(id advisors.AdvisorID) bool {
	for i, m := range c.Members {
		if m != id {
			continue
		}
		c.Members = append(c.Members[:i], c.Members[i+1:]...)
		c.Strength -= 0.15
		if c.Strength < 0 {
			c.Strength = 0
		}
		c.DiscoveryRisk = clamp01(c.DiscoveryRisk + 0.2)
		return true
	}
	return false
}

// RecruitmentChance is the probability that the recruiter turns the target,
// given the recruiter→target relationship.
func RecruitmentChance(rel *Relationship) float64 {
	if rel == nil {
		return 0
	}
	return clamp01(rel.Trust*0.4 + rel.ConspiracyLevel*0.6)
}

// SuccessProbability estimates the plot's chance of achieving its objective.
// Pure: identical state yields an identical score.
func (c *ConspiracyNetwork) SuccessProbability() float64 {
	memberBonus := 0.05 * float64(len(c.Members))
	if memberBonus > 0.3 {
		memberBonus = 0.3
	}

	support := 0.0
	for _, w := range c.ExternalSupport {
		support += w * 0.1
	}
	if support > 0.2 {
		support = 0.2
	}

	p := c.Strength + memberBonus + c.Secrecy*0.2 + support - c.DiscoveryRisk*0.4
	return clamp01(p)
}

// AddExternalSupport records backing from an outside power.
func (c *ConspiracyNetwork) AddExternalSupport(backer string, weight float64) {
	if c.ExternalSupport == nil {
		c.ExternalSupport = make(map[string]float64)
	}
	c.ExternalSupport[backer] = clamp01(weight)
}
