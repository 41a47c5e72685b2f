package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/engine"
	"github.com/talgya/crownfall/internal/entropy"
	"github.com/talgya/crownfall/internal/politics"
	"github.com/talgya/crownfall/internal/tuning"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "court.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seededCourt(t *testing.T) *engine.Court {
	t.Helper()

	council := []*advisors.Advisor{
		{ID: 1, Name: "Aldric", Role: advisors.RoleChancellor, Loyalty: 0.3, Influence: 0.6,
			Personality: advisors.Personality{Ambition: 0.8, Ideology: advisors.IdeologyReformist},
			Memories:    advisors.NewMemoryStore(10)},
		{ID: 2, Name: "Beatrix", Role: advisors.RoleSpymaster, Loyalty: 0.7, Influence: 0.4,
			Personality: advisors.Personality{Paranoia: 0.6, Ideology: advisors.IdeologyTraditionalist},
			Memories:    advisors.NewMemoryStore(10)},
	}
	leader := &politics.Leader{Name: "Queen Maerwen", Legitimacy: 0.7, Popularity: 0.6, Style: politics.StyleConsultative}
	c := engine.NewCourt("Valdria", leader, council, entropy.NewSeeded(3), tuning.Default())

	c.StoreMemory(1, advisors.NewMemory(1, advisors.MemoryRumor, "whispers in the gallery", 0.4, 0.05, 0, "rumor"))
	c.UpdateRelationship(1, 2, 0.3, politics.ImpactCooperation)

	n, ok := c.FoundConspiracy(1, politics.ConspiracyEmbezzlement, "skim the treasury")
	require.True(t, ok)
	n.AddMember(2)

	f := politics.NewFaction("Old Guard", politics.FactionCourt, advisors.IdeologyTraditionalist)
	f.Influence = 0.5
	c.AddFaction(f)

	r, ok := c.ProposeReform(f.ID, "Grain Tariff Repeal")
	require.True(t, ok)
	require.True(t, c.VoteOnReform(r.ID, f.ID, true))

	_, err := c.ProcessTurn()
	require.NoError(t, err)
	return c
}

func TestSaveLoadCourt(t *testing.T) {
	db := openTestDB(t)
	c := seededCourt(t)

	saved := c.Snapshot()
	require.NoError(t, db.SaveCourt(saved))

	loaded, err := db.LoadCourt()
	require.NoError(t, err)

	require.Equal(t, saved.Civilization, loaded.Civilization)
	require.Equal(t, saved.Turn, loaded.Turn)
	require.Equal(t, saved.Temperature, loaded.Temperature)
	require.Equal(t, saved.Leader, loaded.Leader)
	require.Equal(t, saved.State, loaded.State)
	require.Equal(t, saved.Advisors, loaded.Advisors)
	require.Equal(t, saved.Relationships, loaded.Relationships)
	require.ElementsMatch(t, saved.Conspiracies, loaded.Conspiracies)
	require.ElementsMatch(t, saved.Archive, loaded.Archive)
	require.Equal(t, saved.Factions, loaded.Factions)
	require.Equal(t, saved.Reforms, loaded.Reforms)

	// A restored court keeps working.
	restored := engine.Restore(loaded, entropy.NewSeeded(3), tuning.Default())
	_, err = restored.ProcessTurn()
	require.NoError(t, err)
	require.Equal(t, saved.Turn+1, restored.Turn)
}

func TestSaveCourtReplaces(t *testing.T) {
	db := openTestDB(t)
	c := seededCourt(t)

	require.NoError(t, db.SaveCourt(c.Snapshot()))

	_, err := c.ProcessTurn()
	require.NoError(t, err)
	require.NoError(t, db.SaveCourt(c.Snapshot()))

	loaded, err := db.LoadCourt()
	require.NoError(t, err)
	require.Equal(t, c.Turn, loaded.Turn)
	require.Len(t, loaded.Advisors, 2)
}

func TestEventsAppend(t *testing.T) {
	db := openTestDB(t)

	first := []engine.Event{
		{Turn: 1, Description: "a plot takes shape", Category: "conspiracy"},
		{Turn: 1, Description: "the council convenes", Category: "reform"},
	}
	require.NoError(t, db.SaveEvents(first))
	require.NoError(t, db.SaveEvents([]engine.Event{
		{Turn: 2, Description: "the plot is exposed", Category: "conspiracy"},
	}))

	events, err := db.RecentEvents(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, uint64(2), events[0].Turn)
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveMeta("seed", "42"))
	require.NoError(t, db.SaveMeta("seed", "43"))

	v, err := db.GetMeta("seed")
	require.NoError(t, err)
	require.Equal(t, "43", v)

	_, err = db.GetMeta("missing")
	require.Error(t, err)
}
