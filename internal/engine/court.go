// Package engine ties the political systems together: the per-civilization
// Court arena, the turn pipeline, conspiracy detection, and coup resolution.
package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/entropy"
	"github.com/talgya/crownfall/internal/politics"
	"github.com/talgya/crownfall/internal/tuning"
)

// RelKey identifies a directed relationship edge.
type RelKey struct {
	Source advisors.AdvisorID
	Target advisors.AdvisorID
}

// Court holds the complete political state of one civilization. It owns every
// entity table; cross-references are typed ids, never shared pointers, so
// copying an entity (memory transfer) can't alias another advisor's state.
// A court is never mutated concurrently — the caller serializes turns.
type Court struct {
	Civilization string

	Leader *politics.Leader

	Advisors     []*advisors.Advisor
	AdvisorIndex map[advisors.AdvisorID]*advisors.Advisor

	Relationships map[RelKey]*politics.Relationship
	Conspiracies  map[string]*politics.ConspiracyNetwork
	Archive       []*politics.ConspiracyNetwork
	Factions      map[string]*politics.PoliticalFaction
	Reforms       map[string]*politics.Reform

	State       politics.PoliticalState
	Temperature float64 // political temperature, 0.0–1.0

	Turn   uint64
	Events []Event

	Rand   entropy.Source
	Tuning tuning.Config
}

// Event is a notable occurrence at court.
type Event struct {
	Turn        uint64 `json:"turn"`
	Description string `json:"description"`
	Category    string `json:"category"` // "conspiracy", "coup", "reform", "succession", ...
}

// NewCourt creates a court for one civilization.
func NewCourt(civilization string, leader *politics.Leader, council []*advisors.Advisor, src entropy.Source, cfg tuning.Config) *Court {
	index := make(map[advisors.AdvisorID]*advisors.Advisor, len(council))
	for _, a := range council {
		index[a.ID] = a
		if a.Memories != nil {
			a.Memories.ForgetAt = cfg.MemoryForgetAt
			a.Memories.AccessBump = cfg.MemoryAccessBump
		}
	}
	return &Court{
		Civilization:  civilization,
		Leader:        leader,
		Advisors:      council,
		AdvisorIndex:  index,
		Relationships: make(map[RelKey]*politics.Relationship),
		Conspiracies:  make(map[string]*politics.ConspiracyNetwork),
		Factions:      make(map[string]*politics.PoliticalFaction),
		Reforms:       make(map[string]*politics.Reform),
		State: politics.PoliticalState{
			Stability:       politics.StabilityStable,
			Legitimacy:      leader.Legitimacy,
			Government:      politics.GovMonarchy,
			CouncilAutonomy: 0.5,
		},
		Rand:   src,
		Tuning: cfg,
	}
}

// Advisor looks up a council member by id.
func (c *Court) Advisor(id advisors.AdvisorID) (*advisors.Advisor, bool) {
	a, ok := c.AdvisorIndex[id]
	return a, ok
}

// AddAdvisor seats a new council member. Rejects duplicate ids.
func (c *Court) AddAdvisor(a *advisors.Advisor) bool {
	if _, exists := c.AdvisorIndex[a.ID]; exists {
		return false
	}
	c.Advisors = append(c.Advisors, a)
	c.AdvisorIndex[a.ID] = a
	return true
}

// Relationship returns the directed edge from source to target, creating a
// blank one on first use.
func (c *Court) Relationship(source, target advisors.AdvisorID) *politics.Relationship {
	key := RelKey{Source: source, Target: target}
	if r, ok := c.Relationships[key]; ok {
		return r
	}
	r := politics.NewRelationship(source, target)
	c.Relationships[key] = r
	return r
}

// UpdateRelationship applies an inbound event to the source→target edge.
// Fails soft when either advisor is unknown.
func (c *Court) UpdateRelationship(source, target advisors.AdvisorID, impact float64, kind politics.ImpactKind) bool {
	if _, ok := c.AdvisorIndex[source]; !ok {
		return false
	}
	if _, ok := c.AdvisorIndex[target]; !ok {
		return false
	}
	c.Relationship(source, target).Update(impact, kind)
	return true
}

// StoreMemory appends a memory to an advisor's stream. Fails soft on an
// unknown advisor.
func (c *Court) StoreMemory(id advisors.AdvisorID, m *advisors.Memory) bool {
	a, ok := c.AdvisorIndex[id]
	if !ok {
		return false
	}
	a.Memories.Store(m)
	return true
}

// RecallMemories queries an advisor's memory stream at the configured
// reliability floor. Returns nil for an unknown advisor.
func (c *Court) RecallMemories(id advisors.AdvisorID, tag string, kind advisors.MemoryType) []*advisors.Memory {
	a, ok := c.AdvisorIndex[id]
	if !ok {
		return nil
	}
	return a.Memories.Recall(tag, kind, c.Tuning.MinRecallReliability)
}

// ShareMemory has one advisor tell another about a memory. The listener gets
// an independent, less reliable copy, and the secret binds the tellers' edge.
func (c *Court) ShareMemory(from, to advisors.AdvisorID, memoryID string) (*advisors.Memory, bool) {
	teller, ok := c.AdvisorIndex[from]
	if !ok {
		return nil, false
	}
	listener, ok := c.AdvisorIndex[to]
	if !ok {
		return nil, false
	}
	var original *advisors.Memory
	for _, m := range teller.Memories.Memories {
		if m.ID == memoryID {
			original = m
			break
		}
	}
	if original == nil {
		return nil, false
	}
	copied := advisors.TransferMemory(original, teller, listener, c.Turn)
	c.Relationship(from, to).ShareSecret(original.ID)
	return copied, true
}

// ConspiracyPotential scores how likely two advisors are to conspire, floored
// at the established complicity on their edge — an existing plot never looks
// weaker just because motivation dipped this turn.
func (c *Court) ConspiracyPotential(a, b advisors.AdvisorID) float64 {
	advA, okA := c.AdvisorIndex[a]
	advB, okB := c.AdvisorIndex[b]
	if !okA || !okB {
		return 0
	}

	motivation := (advisors.CoupMotivation(advA) + advisors.CoupMotivation(advB)) / 2
	rel := c.Relationship(a, b)
	trust := rel.Trust
	if trust < 0 {
		trust = 0
	}
	potential := motivation * (0.3 + 0.7*trust) * advisors.PersonalityCompatibility(advA, advB)

	if potential < rel.ConspiracyLevel {
		potential = rel.ConspiracyLevel
	}
	return potential
}

// FoundConspiracy starts a new network led by the given advisor. Fails soft on
// an unknown leader or an imprisoned one.
func (c *Court) FoundConspiracy(leader advisors.AdvisorID, kind politics.ConspiracyType, objective string) (*politics.ConspiracyNetwork, bool) {
	a, ok := c.AdvisorIndex[leader]
	if !ok || a.Imprisoned {
		return nil, false
	}
	n := politics.NewConspiracy(kind, leader, objective, c.Turn)
	c.Conspiracies[n.ID] = n
	c.EmitEvent(Event{
		Turn:        c.Turn,
		Description: fmt.Sprintf("%s begins gathering like-minded souls", a.Name),
		Category:    "conspiracy",
	})
	return n, true
}

// RecruitToConspiracy has a plotter attempt to turn a target. The recruiter
// must already be inside the network; success rides on one uniform draw
// against the recruiter→target relationship.
func (c *Court) RecruitToConspiracy(conspiracyID string, recruiter, target advisors.AdvisorID) bool {
	n, ok := c.Conspiracies[conspiracyID]
	if !ok || n.Status.Terminal() {
		return false
	}
	if !n.HasMember(recruiter) {
		return false
	}
	tgt, ok := c.AdvisorIndex[target]
	if !ok || tgt.Imprisoned || n.HasMember(target) {
		return false
	}

	chance := politics.RecruitmentChance(c.Relationship(recruiter, target))
	if c.Rand.Float() >= chance {
		return false
	}
	return n.AddMember(target)
}

// AddFaction registers a faction in the arena.
func (c *Court) AddFaction(f *politics.PoliticalFaction) {
	c.Factions[f.ID] = f
}

// EmitEvent appends to the event stream, trimming a bounded tail.
func (c *Court) EmitEvent(e Event) {
	c.Events = append(c.Events, e)
	if len(c.Events) > 1000 {
		c.Events = c.Events[len(c.Events)-1000:]
	}
}

// liveConspiracies returns non-terminal networks in stable id order, so turn
// processing is deterministic given a deterministic draw source.
func (c *Court) liveConspiracies() []*politics.ConspiracyNetwork {
	ids := make([]string, 0, len(c.Conspiracies))
	for id := range c.Conspiracies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var live []*politics.ConspiracyNetwork
	for _, id := range ids {
		if n := c.Conspiracies[id]; !n.Status.Terminal() {
			live = append(live, n)
		}
	}
	return live
}

// sortedFactions returns factions in stable id order.
func (c *Court) sortedFactions() []*politics.PoliticalFaction {
	ids := make([]string, 0, len(c.Factions))
	for id := range c.Factions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*politics.PoliticalFaction, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Factions[id])
	}
	return out
}

// archiveConspiracy moves a terminal network out of the live table. Archived
// networks are never deleted.
func (c *Court) archiveConspiracy(n *politics.ConspiracyNetwork) {
	delete(c.Conspiracies, n.ID)
	c.Archive = append(c.Archive, n)
}
