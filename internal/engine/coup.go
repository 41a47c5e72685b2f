// Coup and succession resolution — leadership transfer, punishment, and the
// memories everyone keeps afterward.
package engine

import (
	"fmt"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/politics"
)

// CoupOutcome records how a coup attempt resolved.
type CoupOutcome struct {
	Success      bool                 `json:"success"`
	Conspirators []advisors.AdvisorID `json:"conspirators"`
	NewLeaderID  *advisors.AdvisorID  `json:"new_leader_id,omitempty"`
	OldLeader    string               `json:"old_leader"`
	Chance       float64              `json:"chance"`
}

// ResolveCoup executes a coup attempt by the named conspirators. An id absent
// from the advisor table is a data-integrity violation and surfaces as an
// error; it must not be silently skipped. Fewer than two conspirators is an
// immediate failure — the plot collapses before launch, unexposed.
func (c *Court) ResolveCoup(conspirators []advisors.AdvisorID) (*CoupOutcome, error) {
	plotters := make([]*advisors.Advisor, 0, len(conspirators))
	for _, id := range conspirators {
		a, ok := c.AdvisorIndex[id]
		if !ok {
			return nil, fmt.Errorf("conspirator %d not found in advisor table", id)
		}
		plotters = append(plotters, a)
	}

	outcome := &CoupOutcome{
		Conspirators: conspirators,
		OldLeader:    c.Leader.Name,
	}

	if len(plotters) < 2 {
		// Under-manned: fizzles quietly, but the would-be plotters remember.
		for _, a := range plotters {
			a.Memories.Store(advisors.NewMemory(a.ID, advisors.MemoryCoup,
				"the plot died stillborn for want of allies", 0.9, 0.02, c.Turn, "coup"))
		}
		return outcome, nil
	}

	totalInfluence := 0.0
	totalMotivation := 0.0
	for _, a := range plotters {
		totalInfluence += a.Influence
		totalMotivation += advisors.CoupMotivation(a)
	}
	avgMotivation := totalMotivation / float64(len(plotters))

	outcome.Chance = (totalInfluence + avgMotivation) /
		(2.0 + c.Leader.Legitimacy + c.Leader.Popularity)

	if c.Rand.Float() < outcome.Chance {
		c.coupSucceeds(plotters, outcome)
	} else {
		c.coupFails(plotters, outcome)
	}

	// Settle any live coup plot led by one of the conspirators.
	for _, n := range c.liveConspiracies() {
		if n.Type != politics.ConspiracyCoupPlot {
			continue
		}
		for _, a := range plotters {
			if n.LeaderID == a.ID {
				if outcome.Success {
					n.Status = politics.ConspiracySuccessful
				} else {
					n.Status = politics.ConspiracyFailed
				}
				c.archiveConspiracy(n)
				break
			}
		}
	}

	return outcome, nil
}

// coupSucceeds installs the first-listed conspirator as the new leader.
func (c *Court) coupSucceeds(plotters []*advisors.Advisor, outcome *CoupOutcome) {
	usurper := plotters[0]
	id := usurper.ID
	outcome.Success = true
	outcome.NewLeaderID = &id

	// The old leader is discarded; the throne is taken, not inherited.
	c.Leader = &politics.Leader{
		AdvisorID:  usurper.ID,
		Name:       usurper.Name,
		Legitimacy: 0.3,
		Popularity: usurper.Influence,
		Paranoia:   usurper.Personality.Paranoia,
		Style:      politics.StyleAuthoritarian,
	}
	c.State.Legitimacy = 0.3
	c.State.Stability = politics.StabilityUnstable
	c.State.InternalTension = 0.8

	usurper.Loyalty = 1.0
	usurper.AdjustInfluence(0.3)

	for _, a := range plotters {
		a.Memories.Store(advisors.NewMemory(a.ID, advisors.MemoryCoup,
			fmt.Sprintf("we seized the palace and raised %s", usurper.Name),
			0.95, 0.01, c.Turn, "coup"))
	}

	c.EmitEvent(Event{
		Turn:        c.Turn,
		Description: fmt.Sprintf("COUP: %s has overthrown %s and taken power", usurper.Name, outcome.OldLeader),
		Category:    "coup",
	})
}

// coupFails imprisons the conspirators and hardens the surviving leader.
func (c *Court) coupFails(plotters []*advisors.Advisor, outcome *CoupOutcome) {
	for _, a := range plotters {
		a.Imprisoned = true
		a.Loyalty = 0.0
		a.Influence *= 0.1

		a.Memories.Store(advisors.NewMemory(a.ID, advisors.MemoryCoup,
			"the coup failed and the cell door closed behind me",
			0.95, 0.01, c.Turn, "coup"))
	}

	c.Leader.Paranoia = clamp01(c.Leader.Paranoia + 0.2)
	c.Leader.Legitimacy = clamp01(c.Leader.Legitimacy + 0.05)
	c.State.Legitimacy = c.Leader.Legitimacy

	c.EmitEvent(Event{
		Turn:        c.Turn,
		Description: fmt.Sprintf("a coup against %s has failed; %d conspirators imprisoned", c.Leader.Name, len(plotters)),
		Category:    "coup",
	})
}

// resolveSuccessionCrisis hands power to the strongest claimant when the
// leader's legitimacy has collapsed without anyone forcing the issue.
func (c *Court) resolveSuccessionCrisis(res *TurnResult) {
	if res.Coup != nil && res.Coup.Success {
		return // The throne already changed hands this turn.
	}
	if c.Leader.Legitimacy >= 0.1 {
		return
	}

	candidates := c.successionCandidates()
	if len(candidates) == 0 {
		return
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.Strength() > best.Strength() {
			best = cand
		}
	}

	heir, ok := c.AdvisorIndex[best.AdvisorID]
	if !ok {
		return
	}

	c.Leader = &politics.Leader{
		AdvisorID:  heir.ID,
		Name:       heir.Name,
		Legitimacy: 0.3 + best.Strength()*0.4,
		Popularity: best.PopularSupport,
		Paranoia:   heir.Personality.Paranoia,
		Style:      politics.StyleConsultative,
	}
	c.State.Legitimacy = c.Leader.Legitimacy
	c.State.InternalTension = clamp01(c.State.InternalTension + 0.2)

	res.Succession = &SuccessionNotice{NewLeaderID: heir.ID, Name: heir.Name}
	c.EmitEvent(Event{
		Turn:        c.Turn,
		Description: fmt.Sprintf("the old order collapses; %s takes the throne in the succession crisis", heir.Name),
		Category:    "succession",
	})
}

// successionCandidates builds claimants from the free council, backed by the
// factions they belong to.
func (c *Court) successionCandidates() []*politics.SuccessionCandidate {
	var out []*politics.SuccessionCandidate
	for _, a := range c.Advisors {
		if a.Imprisoned || a.ID == c.Leader.AdvisorID {
			continue
		}
		cand := &politics.SuccessionCandidate{
			AdvisorID:      a.ID,
			Legitimacy:     a.Loyalty * 0.5,
			SupportBase:    a.Influence,
			Merit:          1.0 - a.Personality.Corruption,
			PopularSupport: a.Influence * (1.0 - a.Personality.Paranoia*0.5),
		}
		for _, f := range c.sortedFactions() {
			if f.HasMember(a.ID) {
				cand.BackingFactions = append(cand.BackingFactions, f.ID)
			}
		}
		out = append(out, cand)
	}
	return out
}
