// Political temperature and stability — the aggregate pressure reading other
// subsystems (events, narrative) key off.
package engine

import (
	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/politics"
)

// updateTemperature decays the temperature toward calm, then re-inflates it
// from what actually happened: active plots simmer, propaganda agitates, and
// crises spike it.
func (c *Court) updateTemperature(res *TurnResult) {
	c.Temperature *= 1.0 - c.Tuning.TemperatureDecay

	active := 0
	for _, n := range c.Conspiracies {
		if n.Status == politics.ConspiracyActive {
			active++
		}
	}

	crises := len(res.Exposed)
	if res.Coup != nil {
		crises++
	}
	if res.Succession != nil {
		crises++
	}

	c.Temperature += float64(active)*c.Tuning.HeatPerConspiracy +
		float64(len(res.Propaganda))*c.Tuning.HeatPerPropaganda +
		float64(crises)*c.Tuning.HeatPerCrisis

	c.Temperature = clamp01(c.Temperature)
}

// updateStability recomputes coup risk and the stability band. These are
// derived readings; nothing outside the resolver ever hand-sets them.
func (c *Court) updateStability(res *TurnResult) {
	maxMotivation := 0.0
	for _, a := range c.Advisors {
		if a.Imprisoned {
			continue
		}
		if m := advisors.CoupMotivation(a); m > maxMotivation {
			maxMotivation = m
		}
	}

	active := 0
	for _, n := range c.Conspiracies {
		if n.Status == politics.ConspiracyActive {
			active++
		}
	}

	c.State.CoupRisk = clamp01(
		0.4*maxMotivation +
			0.1*float64(active) +
			0.3*(1.0-c.Leader.Legitimacy) +
			0.2*c.State.InternalTension)

	score := 0.6*c.State.CoupRisk + 0.4*c.State.InternalTension
	switch {
	case score < 0.3:
		c.State.Stability = politics.StabilityStable
	case score < 0.55:
		c.State.Stability = politics.StabilityUnstable
	case score < 0.8:
		c.State.Stability = politics.StabilityCrisis
	default:
		c.State.Stability = politics.StabilityCollapsing
	}

	// A throne taken this turn is never reported stable, whatever the math says.
	if res.Coup != nil && res.Coup.Success && c.State.Stability == politics.StabilityStable {
		c.State.Stability = politics.StabilityUnstable
	}
}
