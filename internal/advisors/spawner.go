// Advisor spawning — creates a council roster with names, roles, personalities,
// and starting standing.
package advisors

import "github.com/talgya/crownfall/internal/entropy"

// Spawner creates advisors for a civilization's council.
type Spawner struct {
	src    entropy.Source
	nextID AdvisorID

	memoryCapacity int
}

// NewSpawner creates an advisor spawner drawing from the given source.
func NewSpawner(src entropy.Source) *Spawner {
	return &Spawner{
		src:            src,
		nextID:         1,
		memoryCapacity: DefaultMemoryCapacity,
	}
}

// SetMemoryCapacity overrides the per-advisor memory bound for spawned advisors.
func (s *Spawner) SetMemoryCapacity(capacity int) {
	s.memoryCapacity = capacity
}

// SetNextID sets the next advisor ID to be issued (used when restoring a
// snapshot).
func (s *Spawner) SetNextID(id AdvisorID) {
	s.nextID = id
}

// SpawnCouncil creates a full council roster. Roles cycle through the seats so
// every council has at least one of each core role once it is large enough.
func (s *Spawner) SpawnCouncil(count int) []*Advisor {
	roles := []Role{
		RoleChancellor, RoleTreasurer, RoleSpymaster,
		RoleGeneral, RoleDiplomat, RoleCourtier,
	}
	council := make([]*Advisor, 0, count)
	for i := 0; i < count; i++ {
		council = append(council, s.spawnOne(roles[i%len(roles)]))
	}
	return council
}

func (s *Spawner) spawnOne(role Role) *Advisor {
	id := s.nextID
	s.nextID++

	return &Advisor{
		ID:   id,
		Name: s.generateName(),
		Role: role,
		Personality: Personality{
			Ambition:   s.src.Float(),
			Paranoia:   s.src.Float() * 0.8,
			Pragmatism: s.src.Float(),
			Corruption: s.src.Float() * 0.6,
			Ideology:   Ideologies[int(s.src.Float()*float64(len(Ideologies)))%len(Ideologies)],
		},
		// Councils start loyal-ish but not uniformly so.
		Loyalty:   0.4 + s.src.Float()*0.5,
		Influence: 0.2 + s.src.Float()*0.5,
		Memories:  NewMemoryStore(s.memoryCapacity),
	}
}

var givenNames = []string{
	"Aldric", "Beatrix", "Cassian", "Delphine", "Edmund", "Fiora",
	"Gareth", "Helena", "Isolde", "Jorah", "Katala", "Lucian",
	"Maerwen", "Nikolai", "Ophelia", "Perrin", "Rosalind", "Severin",
	"Thessaly", "Ulric", "Valeria", "Wendell", "Yvaine", "Zorander",
}

var houseNames = []string{
	"Ashford", "Blackwell", "Corvane", "Draymoor", "Eastmere", "Falkrath",
	"Greystone", "Hollowgate", "Ironwood", "Karstead", "Lowvale", "Morrow",
	"Northfell", "Oakhart", "Pellinore", "Ravencourt", "Silvane", "Thornwick",
}

func (s *Spawner) generateName() string {
	given := givenNames[int(s.src.Float()*float64(len(givenNames)))%len(givenNames)]
	house := houseNames[int(s.src.Float()*float64(len(houseNames)))%len(houseNames)]
	return given + " of " + house
}
