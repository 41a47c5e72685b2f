// Motivation scoring — pure functions mapping personality and standing to
// coup willingness. No state, no draws; identical inputs give identical outputs.
package advisors

import "math"

// CoupMotivation estimates an advisor's willingness to join or lead an
// overthrow. Disloyalty dominates; ambition always contributes; paranoia only
// bites past 0.6; marginalized advisors (low influence) have less to lose.
func CoupMotivation(a *Advisor) float64 {
	m := 0.0
	if a.Loyalty < 0.3 {
		m += (0.3 - a.Loyalty) * 2.0
	}
	m += a.Personality.Ambition * 0.5
	if a.Personality.Paranoia > 0.6 {
		m += (a.Personality.Paranoia - 0.6) * 0.8
	}
	if a.Influence < 0.3 {
		m += (0.3 - a.Influence) * 0.7
	}
	return clamp01(m)
}

// PersonalityCompatibility scores how well two advisors would conspire
// together: shared ideology and similar pragmatism/corruption help, competing
// ambition and mutual paranoia hurt.
func PersonalityCompatibility(a, b *Advisor) float64 {
	ideology := 0.0
	if a.Personality.Ideology == b.Personality.Ideology {
		ideology = 1.0
	}
	pragmatism := 1.0 - math.Abs(a.Personality.Pragmatism-b.Personality.Pragmatism)
	corruption := 1.0 - math.Abs(a.Personality.Corruption-b.Personality.Corruption)

	score := (ideology + pragmatism + corruption) / 3.0
	score -= math.Abs(a.Personality.Ambition-b.Personality.Ambition) * 0.25
	score -= a.Personality.Paranoia * b.Personality.Paranoia * 0.25

	return clamp01(score)
}
