package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/entropy"
	"github.com/talgya/crownfall/internal/politics"
	"github.com/talgya/crownfall/internal/tuning"
)

// populatedCourt builds a court with a little of everything in it.
func populatedCourt(t *testing.T) *Court {
	t.Helper()

	a := testAdvisor(1, "Aldric", 0.2, 0.5, advisors.Personality{Ambition: 0.8, Paranoia: 0.4})
	b := testAdvisor(2, "Beatrix", 0.6, 0.3, advisors.Personality{Ambition: 0.3})
	d := testAdvisor(3, "Cassian", 0.9, 0.7, advisors.Personality{Pragmatism: 0.8})
	c := testCourt(entropy.NewSeeded(7), a, b, d)

	c.UpdateRelationship(1, 2, 0.4, politics.ImpactCooperation)
	c.UpdateRelationship(2, 1, 0.2, politics.ImpactCooperation)
	c.UpdateRelationship(3, 1, 0.5, politics.ImpactBetrayal)

	m := advisors.NewMemory(1, advisors.MemoryBetrayal, "Cassian sold my letters", 0.9, 0.02, 1, "betrayal")
	c.StoreMemory(1, m)

	n, _ := c.FoundConspiracy(1, politics.ConspiracyCoupPlot, "seize the regency")
	n.AddMember(2)

	f := politics.NewFaction("Reform League", politics.FactionPopulist, advisors.IdeologyReformist)
	f.AddMember(2)
	c.AddFaction(f)

	r, _ := c.ProposeReform(f.ID, "Charter of Council Rights")
	c.VoteOnReform(r.ID, f.ID, true)

	for i := 0; i < 3; i++ {
		if _, err := c.ProcessTurn(); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}
	return c
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := populatedCourt(t)

	first := c.Snapshot()
	restored := Restore(first, entropy.NewSeeded(7), tuning.Default())
	second := restored.Snapshot()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("snapshot mismatch after restore (-saved +restored):\n%s", diff)
	}
}

func TestSnapshotStableOrder(t *testing.T) {
	c := populatedCourt(t)

	first := c.Snapshot()
	second := c.Snapshot()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two snapshots of the same court differ:\n%s", diff)
	}
}

func TestRestoreRebuildsIndexes(t *testing.T) {
	c := populatedCourt(t)
	restored := Restore(c.Snapshot(), entropy.NewSeeded(7), tuning.Default())

	if len(restored.AdvisorIndex) != len(c.Advisors) {
		t.Errorf("got %d indexed advisors, want %d", len(restored.AdvisorIndex), len(c.Advisors))
	}
	if _, ok := restored.Advisor(1); !ok {
		t.Error("advisor 1 missing after restore")
	}
	if len(restored.Relationships) != len(c.Relationships) {
		t.Errorf("got %d edges, want %d", len(restored.Relationships), len(c.Relationships))
	}
	if len(restored.Conspiracies) != len(c.Conspiracies) {
		t.Errorf("got %d live conspiracies, want %d", len(restored.Conspiracies), len(c.Conspiracies))
	}

	// A restored court keeps working.
	if _, err := restored.ProcessTurn(); err != nil {
		t.Fatalf("restored court failed to process a turn: %v", err)
	}
	if restored.Turn != c.Turn+1 {
		t.Errorf("got turn %d, want %d", restored.Turn, c.Turn+1)
	}
}
