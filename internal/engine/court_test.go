package engine

import (
	"testing"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/entropy"
	"github.com/talgya/crownfall/internal/politics"
	"github.com/talgya/crownfall/internal/tuning"
)

// testAdvisor builds a council member with explicit standing.
func testAdvisor(id advisors.AdvisorID, name string, loyalty, influence float64, p advisors.Personality) *advisors.Advisor {
	return &advisors.Advisor{
		ID:          id,
		Name:        name,
		Role:        advisors.RoleCourtier,
		Personality: p,
		Loyalty:     loyalty,
		Influence:   influence,
		Memories:    advisors.NewMemoryStore(20),
	}
}

// testCourt builds a court with the given advisors and a fixed draw sequence.
func testCourt(src entropy.Source, council ...*advisors.Advisor) *Court {
	leader := &politics.Leader{
		Name:       "Queen Maerwen",
		Legitimacy: 0.7,
		Popularity: 0.6,
		Style:      politics.StyleConsultative,
	}
	return NewCourt("Valdria", leader, council, src, tuning.Default())
}

func TestRelationshipCreatedLazily(t *testing.T) {
	a := testAdvisor(1, "Aldric", 0.5, 0.5, advisors.Personality{})
	b := testAdvisor(2, "Beatrix", 0.5, 0.5, advisors.Personality{})
	c := testCourt(entropy.NewFixed(0.99), a, b)

	if len(c.Relationships) != 0 {
		t.Fatalf("got %d edges before any contact, want 0", len(c.Relationships))
	}
	r1 := c.Relationship(1, 2)
	r2 := c.Relationship(1, 2)
	if r1 != r2 {
		t.Error("repeated lookup created a second edge")
	}
	if len(c.Relationships) != 1 {
		t.Errorf("got %d edges, want 1", len(c.Relationships))
	}
}

func TestUpdateRelationshipFailsSoftOnUnknownAdvisor(t *testing.T) {
	a := testAdvisor(1, "Aldric", 0.5, 0.5, advisors.Personality{})
	c := testCourt(entropy.NewFixed(0.99), a)

	if c.UpdateRelationship(1, 99, 0.5, politics.ImpactCooperation) {
		t.Error("update against a missing advisor reported success")
	}
	if len(c.Relationships) != 0 {
		t.Error("failed update still created an edge")
	}
}

func TestConspiracyPotentialFloor(t *testing.T) {
	hostile := advisors.Personality{Ambition: 0.1, Ideology: advisors.IdeologyTraditionalist}
	a := testAdvisor(1, "Aldric", 0.9, 0.9, hostile)
	b := testAdvisor(2, "Beatrix", 0.9, 0.9, advisors.Personality{
		Ambition: 0.9, Paranoia: 0.9, Ideology: advisors.IdeologyMilitarist,
	})
	c := testCourt(entropy.NewFixed(0.99), a, b)

	// Loyal, incompatible pair: raw potential is tiny.
	raw := c.ConspiracyPotential(1, 2)

	// But an established plot sets a floor recomputation can't undercut.
	c.Relationship(1, 2).ConspiracyLevel = 0.6
	floored := c.ConspiracyPotential(1, 2)
	if floored < 0.6 {
		t.Errorf("got %v, want floored at established level 0.6 (raw was %v)", floored, raw)
	}
}

func TestRecruitToConspiracy(t *testing.T) {
	a := testAdvisor(1, "Aldric", 0.2, 0.4, advisors.Personality{Ambition: 0.8})
	b := testAdvisor(2, "Beatrix", 0.3, 0.3, advisors.Personality{Ambition: 0.6})

	// First draw well under the recruitment chance: succeeds.
	c := testCourt(entropy.NewFixed(0.01, 0.999), a, b)
	n, ok := c.FoundConspiracy(1, politics.ConspiracyCoupPlot, "depose the queen")
	if !ok {
		t.Fatal("founding rejected")
	}

	rel := c.Relationship(1, 2)
	rel.Trust = 0.8
	rel.ConspiracyLevel = 0.5

	if !c.RecruitToConspiracy(n.ID, 1, 2) {
		t.Fatal("recruitment with a favorable draw failed")
	}
	if !n.HasMember(2) {
		t.Error("recruited advisor not in network")
	}

	// Non-members can't recruit.
	outsider := testAdvisor(3, "Cassian", 0.5, 0.5, advisors.Personality{})
	c.AddAdvisor(outsider)
	if c.RecruitToConspiracy(n.ID, 3, 2) {
		t.Error("outsider was allowed to recruit")
	}

	// Unlucky draw: rejected, state untouched.
	d := testAdvisor(4, "Delphine", 0.5, 0.5, advisors.Personality{})
	c.AddAdvisor(d)
	before := len(n.Members)
	if c.RecruitToConspiracy(n.ID, 1, 4) {
		t.Error("recruitment with an unfavorable draw succeeded")
	}
	if len(n.Members) != before {
		t.Error("failed recruitment changed membership")
	}
}

func TestShareMemory(t *testing.T) {
	a := testAdvisor(1, "Aldric", 0.5, 0.5, advisors.Personality{})
	b := testAdvisor(2, "Beatrix", 0.5, 0.5, advisors.Personality{})
	c := testCourt(entropy.NewFixed(0.5), a, b)

	secret := advisors.NewMemory(1, advisors.MemoryBetrayal, "the chancellor takes bribes", 0.8, 0.02, 0)
	a.Memories.Store(secret)

	copied, ok := c.ShareMemory(1, 2, secret.ID)
	if !ok {
		t.Fatal("share rejected")
	}
	if copied.SourceID == nil || *copied.SourceID != 1 {
		t.Error("copy lost provenance")
	}
	if len(b.Memories.Memories) != 1 {
		t.Error("listener did not receive the copy")
	}

	edge := c.Relationship(1, 2)
	if len(edge.SharedSecrets) != 1 || edge.SharedSecrets[0] != secret.ID {
		t.Error("shared secret not recorded on the edge")
	}

	if _, ok := c.ShareMemory(1, 2, "no-such-memory"); ok {
		t.Error("sharing an unknown memory reported success")
	}
}

func TestSummaryHidesMembership(t *testing.T) {
	a := testAdvisor(1, "Aldric", 0.2, 0.4, advisors.Personality{Ambition: 0.9})
	b := testAdvisor(2, "Beatrix", 0.2, 0.4, advisors.Personality{Ambition: 0.9})
	c := testCourt(entropy.NewFixed(0.99), a, b)

	n, _ := c.FoundConspiracy(1, politics.ConspiracyCoupPlot, "depose the queen")
	n.AddMember(2)
	n.Status = politics.ConspiracyActive

	f := politics.NewFaction("Reform League", politics.FactionPopulist, advisors.IdeologyReformist)
	f.Influence = 0.8
	f.Popularity = 0.6
	c.AddFaction(f)

	s := c.Summarize()
	if s.ActiveConspiracies != 1 {
		t.Errorf("got %d active conspiracies, want 1", s.ActiveConspiracies)
	}
	if s.TopFaction != "Reform League" {
		t.Errorf("got top faction %q", s.TopFaction)
	}
	if s.AdvisorCount != 2 {
		t.Errorf("got %d advisors, want 2", s.AdvisorCount)
	}
}

func TestRecallMemoriesAppliesFloor(t *testing.T) {
	a := testAdvisor(1, "Aldric", 0.5, 0.5, advisors.Personality{})
	c := testCourt(entropy.NewFixed(0.99), a)

	strong := advisors.NewMemory(1, advisors.MemoryBetrayal, "Cassian sold my letters", 0.9, 0.01, 0, "betrayal")
	faint := advisors.NewMemory(1, advisors.MemoryBetrayal, "someone moved my papers", 0.2, 0.01, 0, "betrayal")
	faint.Reliability = 0.05
	c.StoreMemory(1, strong)
	c.StoreMemory(1, faint)

	got := c.RecallMemories(1, "betrayal", advisors.MemoryBetrayal)
	if len(got) != 1 || got[0].ID != strong.ID {
		t.Fatalf("got %d memories, want only the reliable one", len(got))
	}
	if c.RecallMemories(99, "betrayal", advisors.MemoryBetrayal) != nil {
		t.Error("unknown advisor returned memories")
	}
}
