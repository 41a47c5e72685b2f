// Snapshot — structurally-typed save state for the whole political graph.
// Sets serialize as unordered string collections and enums as string tags;
// restoring rebuilds every index so cross-references stay typed ids.
package engine

import (
	"sort"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/entropy"
	"github.com/talgya/crownfall/internal/politics"
	"github.com/talgya/crownfall/internal/tuning"
)

// Snapshot is the persistable form of a Court.
type Snapshot struct {
	Civilization string `json:"civilization"`
	Turn         uint64 `json:"turn"`

	Leader *politics.Leader        `json:"leader"`
	State  politics.PoliticalState `json:"state"`

	Temperature float64 `json:"temperature"`

	Advisors      []*advisors.Advisor           `json:"advisors"`
	Relationships []*politics.Relationship      `json:"relationships"`
	Conspiracies  []*politics.ConspiracyNetwork `json:"conspiracies"`
	Archive       []*politics.ConspiracyNetwork `json:"archive"`
	Factions      []*politics.PoliticalFaction  `json:"factions"`
	Reforms       []*politics.Reform            `json:"reforms"`

	Events []Event `json:"events"`
}

// Snapshot projects the court into its persistable form. Collections come out
// in stable id order so two snapshots of the same state compare equal.
func (c *Court) Snapshot() *Snapshot {
	snap := &Snapshot{
		Civilization: c.Civilization,
		Turn:         c.Turn,
		Leader:       c.Leader,
		State:        c.State,
		Temperature:  c.Temperature,
		Advisors:     append([]*advisors.Advisor(nil), c.Advisors...),
		Archive:      append([]*politics.ConspiracyNetwork(nil), c.Archive...),
		Events:       append([]Event(nil), c.Events...),
	}

	keys := make([]RelKey, 0, len(c.Relationships))
	for k := range c.Relationships {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Source != keys[j].Source {
			return keys[i].Source < keys[j].Source
		}
		return keys[i].Target < keys[j].Target
	})
	for _, k := range keys {
		snap.Relationships = append(snap.Relationships, c.Relationships[k])
	}

	for _, n := range sortedByID(c.Conspiracies) {
		snap.Conspiracies = append(snap.Conspiracies, n)
	}
	snap.Factions = append(snap.Factions, c.sortedFactions()...)

	reformIDs := make([]string, 0, len(c.Reforms))
	for id := range c.Reforms {
		reformIDs = append(reformIDs, id)
	}
	sort.Strings(reformIDs)
	for _, id := range reformIDs {
		snap.Reforms = append(snap.Reforms, c.Reforms[id])
	}

	return snap
}

// Restore reconstructs a court from a snapshot, rebuilding every index.
func Restore(snap *Snapshot, src entropy.Source, cfg tuning.Config) *Court {
	c := NewCourt(snap.Civilization, snap.Leader, snap.Advisors, src, cfg)
	c.Turn = snap.Turn
	c.State = snap.State
	c.Temperature = snap.Temperature
	c.Archive = append([]*politics.ConspiracyNetwork(nil), snap.Archive...)
	c.Events = append([]Event(nil), snap.Events...)

	for _, r := range snap.Relationships {
		c.Relationships[RelKey{Source: r.Source, Target: r.Target}] = r
	}
	for _, n := range snap.Conspiracies {
		c.Conspiracies[n.ID] = n
	}
	for _, f := range snap.Factions {
		c.Factions[f.ID] = f
	}
	for _, r := range snap.Reforms {
		c.Reforms[r.ID] = r
	}

	return c
}

func sortedByID(m map[string]*politics.ConspiracyNetwork) []*politics.ConspiracyNetwork {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*politics.ConspiracyNetwork, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
