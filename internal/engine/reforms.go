// Open politics — faction propaganda campaigns and reform votes.
package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/crownfall/internal/politics"
)

// ProposeReform lets a faction put a policy change on the table. Fails soft on
// an unknown faction.
func (c *Court) ProposeReform(factionID, name string) (*politics.Reform, bool) {
	if _, ok := c.Factions[factionID]; !ok {
		return nil, false
	}
	r := politics.NewReform(name, factionID)
	c.Reforms[r.ID] = r
	c.EmitEvent(Event{
		Turn:        c.Turn,
		Description: fmt.Sprintf("%s has been put before the council", name),
		Category:    "reform",
	})
	return r, true
}

// VoteOnReform records a faction's vote, weighted by its political power.
// Returns false and leaves state untouched when either id is unknown or the
// reform is already settled.
func (c *Court) VoteOnReform(reformID, factionID string, inFavor bool) bool {
	r, ok := c.Reforms[reformID]
	if !ok || r.Status != politics.ReformProposed {
		return false
	}
	f, ok := c.Factions[factionID]
	if !ok {
		return false
	}

	weight := f.PoliticalPower() * 0.5
	if inFavor {
		r.Support += weight
	} else {
		r.Support -= weight
	}
	if r.Support > 1 {
		r.Support = 1
	}
	if r.Support < -1 {
		r.Support = -1
	}
	return true
}

// tallyReforms settles proposed reforms whose support has crossed a threshold.
func (c *Court) tallyReforms(res *TurnResult) {
	ids := make([]string, 0, len(c.Reforms))
	for id := range c.Reforms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		r := c.Reforms[id]
		if r.Status != politics.ReformProposed {
			continue
		}
		switch {
		case r.Support >= c.Tuning.ReformPassSupport:
			r.Status = politics.ReformPassed
			res.PassedReforms = append(res.PassedReforms, ReformNotice{ID: r.ID, Name: r.Name})
			c.EmitEvent(Event{
				Turn:        c.Turn,
				Description: fmt.Sprintf("the council has passed %s", r.Name),
				Category:    "reform",
			})
		case r.Support <= -c.Tuning.ReformPassSupport:
			r.Status = politics.ReformRejected
			c.EmitEvent(Event{
				Turn:        c.Turn,
				Description: fmt.Sprintf("the council has rejected %s", r.Name),
				Category:    "reform",
			})
		}
	}
}

// runPropaganda applies active faction campaigns. No draw involved: a funded
// campaign grinds away deterministically.
func (c *Court) runPropaganda(res *TurnResult) {
	for _, f := range c.sortedFactions() {
		if f.Propaganda <= 0.5 {
			continue
		}
		shift := f.Propaganda * 0.05
		f.Popularity = clamp01(f.Popularity + shift)
		res.Propaganda = append(res.Propaganda, PropagandaEffect{
			FactionID:       f.ID,
			FactionName:     f.Name,
			PopularityShift: shift,
		})
	}
}
