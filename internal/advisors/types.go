// Package advisors provides the council-member data model, the per-advisor
// memory store, and the pure motivation scoring functions.
package advisors

// AdvisorID is a unique identifier for a council advisor.
type AdvisorID uint64

// Role is an advisor's seat on the ruling council.
type Role string

const (
	RoleChancellor Role = "chancellor"
	RoleTreasurer  Role = "treasurer"
	RoleSpymaster  Role = "spymaster"
	RoleGeneral    Role = "general"
	RoleDiplomat   Role = "diplomat"
	RoleCourtier   Role = "courtier"
)

// Ideology is an advisor's or faction's political alignment.
type Ideology string

const (
	IdeologyTraditionalist Ideology = "traditionalist"
	IdeologyReformist      Ideology = "reformist"
	IdeologyMilitarist     Ideology = "militarist"
	IdeologyMercantile     Ideology = "mercantile"
	IdeologyTheocratic     Ideology = "theocratic"
)

// Ideologies lists every alignment, in a stable order for deterministic spawning.
var Ideologies = []Ideology{
	IdeologyTraditionalist,
	IdeologyReformist,
	IdeologyMilitarist,
	IdeologyMercantile,
	IdeologyTheocratic,
}

// Personality holds the fixed character traits that drive an advisor's
// political behavior. All scalars are in [0, 1].
type Personality struct {
	Ambition   float64  `json:"ambition"`
	Paranoia   float64  `json:"paranoia"`
	Pragmatism float64  `json:"pragmatism"`
	Corruption float64  `json:"corruption"`
	Ideology   Ideology `json:"ideology"`
}

// Advisor is a member of a civilization's ruling council.
type Advisor struct {
	ID   AdvisorID `json:"id"`
	Name string    `json:"name"`
	Role Role      `json:"role"`

	Personality Personality `json:"personality"`

	Loyalty   float64 `json:"loyalty"`   // 0.0–1.0, toward the current leader
	Influence float64 `json:"influence"` // 0.0–1.0, weight at court

	Imprisoned bool `json:"imprisoned"`

	// Private memory stream, owned exclusively by this advisor.
	Memories *MemoryStore `json:"memories"`
}

// AdjustLoyalty shifts loyalty by delta, clamped to [0, 1].
func (a *Advisor) AdjustLoyalty(delta float64) {
	a.Loyalty = clamp01(a.Loyalty + delta)
}

// AdjustInfluence shifts influence by delta, clamped to [0, 1].
func (a *Advisor) AdjustInfluence(delta float64) {
	a.Influence = clamp01(a.Influence + delta)
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
