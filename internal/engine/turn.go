// Turn pipeline — one synchronous pass over the whole political graph.
// Ordering is fixed: memory decay precedes conspiracy detection, which
// precedes coup resolution, so a coup always sees this turn's decayed state.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/politics"
)

// ConspiracyNotice identifies a network that changed state this turn.
type ConspiracyNotice struct {
	ID       string                  `json:"id"`
	Type     politics.ConspiracyType `json:"type"`
	LeaderID advisors.AdvisorID      `json:"leader_id"`
}

// PropagandaEffect records one faction's campaign landing this turn.
type PropagandaEffect struct {
	FactionID       string  `json:"faction_id"`
	FactionName     string  `json:"faction_name"`
	PopularityShift float64 `json:"popularity_shift"`
}

// ReformNotice identifies a reform that passed this turn.
type ReformNotice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SuccessionNotice records a leadership transfer outside a coup.
type SuccessionNotice struct {
	NewLeaderID advisors.AdvisorID `json:"new_leader_id"`
	Name        string             `json:"name"`
}

// TurnResult enumerates everything that happened in one processed turn, one
// typed field per phase. Collaborators (narrative, memory materialization)
// consume this instead of poking at court internals.
type TurnResult struct {
	Turn uint64 `json:"turn"`

	ForgottenMemories int `json:"forgotten_memories"`

	Exposed   []ConspiracyNotice `json:"exposed_conspiracies,omitempty"`
	Activated []ConspiracyNotice `json:"activated_conspiracies,omitempty"`

	Coup       *CoupOutcome      `json:"coup,omitempty"`
	Succession *SuccessionNotice `json:"succession,omitempty"`

	Propaganda    []PropagandaEffect `json:"propaganda_effects,omitempty"`
	PassedReforms []ReformNotice     `json:"passed_reforms,omitempty"`
}

// ProcessTurn advances the court by one turn. The only error condition is a
// data-integrity violation (a coup roster naming an unknown advisor); every
// other rejection fails soft inside its phase.
func (c *Court) ProcessTurn() (*TurnResult, error) {
	c.Turn++
	turn := c.Turn
	res := &TurnResult{Turn: turn}

	// Phase 1: memories fade.
	for _, a := range c.Advisors {
		res.ForgottenMemories += a.Memories.Decay(turn)
	}

	// Phase 2: relationships relax toward neutral.
	for _, r := range c.Relationships {
		r.Decay(c.Tuning.RelationshipDecayRate)
	}

	// Phase 3: conspiracies advance — discovery draws and activations.
	for _, n := range c.liveConspiracies() {
		c.advanceConspiracy(n, turn, res)
	}

	// Phase 4+5: detection over the decayed graph, then at most one coup.
	groups := c.DetectConspiracies()
	if len(groups) > 0 {
		top := groups[0]
		if top.Strength > c.Tuning.AutoCoupStrength && top.AvgMotivation > c.Tuning.AutoCoupMotivation {
			outcome, err := c.ResolveCoup(top.Members)
			if err != nil {
				return nil, fmt.Errorf("resolve coup: %w", err)
			}
			res.Coup = outcome
		}
	}

	// Phase 6: open politics — propaganda campaigns and reform tallies.
	c.runPropaganda(res)
	c.tallyReforms(res)

	// Phase 7: recompute the aggregate condition.
	c.resolveSuccessionCrisis(res)
	c.updateTemperature(res)
	c.updateStability(res)

	slog.Debug("turn processed",
		"civilization", c.Civilization,
		"turn", turn,
		"forgotten", res.ForgottenMemories,
		"exposed", len(res.Exposed),
		"activated", len(res.Activated),
		"coup", res.Coup != nil,
		"temperature", fmt.Sprintf("%.3f", c.Temperature),
		"stability", c.State.Stability,
	)

	return res, nil
}

// advanceConspiracy runs one network's per-turn state machine.
func (c *Court) advanceConspiracy(n *politics.ConspiracyNetwork, turn uint64, res *TurnResult) {
	// Large circles leak.
	if len(n.Members) > 3 {
		n.DiscoveryRisk += 0.05
		if n.DiscoveryRisk > 1 {
			n.DiscoveryRisk = 1
		}
	}

	// Discovery draw.
	if c.Rand.Float() < n.DiscoveryRisk {
		c.exposeConspiracy(n, turn, res)
		return
	}

	// A forming plot with real membership and muscle goes active.
	if n.Status == politics.ConspiracyForming && len(n.Members) >= 2 && n.Strength > 0.5 {
		n.Status = politics.ConspiracyActive
		n.ActivatedTurn = turn
		res.Activated = append(res.Activated, ConspiracyNotice{ID: n.ID, Type: n.Type, LeaderID: n.LeaderID})
		c.EmitEvent(Event{
			Turn:        turn,
			Description: fmt.Sprintf("a %s moves from whispers to action", n.Type),
			Category:    "conspiracy",
		})
	}
}

// exposeConspiracy marks a network discovered, archives it, and fans out the
// political consequences.
func (c *Court) exposeConspiracy(n *politics.ConspiracyNetwork, turn uint64, res *TurnResult) {
	n.Status = politics.ConspiracyExposed
	c.archiveConspiracy(n)
	res.Exposed = append(res.Exposed, ConspiracyNotice{ID: n.ID, Type: n.Type, LeaderID: n.LeaderID})

	participants := append([]advisors.AdvisorID{n.LeaderID}, n.Members...)

	// Exposure shreds the complicity edges between participants.
	for _, from := range participants {
		for _, to := range participants {
			if from == to {
				continue
			}
			if r, ok := c.Relationships[RelKey{Source: from, Target: to}]; ok {
				r.Update(0.2, politics.ImpactExposure)
			}
		}
	}

	// Everyone implicated remembers the day the plot unraveled.
	for _, id := range participants {
		a, ok := c.AdvisorIndex[id]
		if !ok {
			continue
		}
		m := advisors.NewMemory(id, advisors.MemoryCrisis,
			fmt.Sprintf("our %s was dragged into the light", n.Type),
			0.85, 0.02, turn, "exposure")
		a.Memories.Store(m)
	}

	// Spymasters log what their informants uncovered.
	for _, a := range c.Advisors {
		if a.Role != advisors.RoleSpymaster || n.HasMember(a.ID) {
			continue
		}
		m := advisors.NewMemory(a.ID, advisors.MemoryConspiracy,
			fmt.Sprintf("informants uncovered a %s at court", n.Type),
			0.7, 0.03, turn, "informant")
		a.Memories.Store(m)
	}

	c.State.InternalTension = clamp01(c.State.InternalTension + 0.1)

	leaderName := "an unknown hand"
	if a, ok := c.AdvisorIndex[n.LeaderID]; ok {
		leaderName = a.Name
	}
	c.EmitEvent(Event{
		Turn:        turn,
		Description: fmt.Sprintf("a %s led by %s has been exposed", n.Type, leaderName),
		Category:    "conspiracy",
	})
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
