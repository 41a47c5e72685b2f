// Advisor memory stream — weighted, decaying observations of court life.
// Everything higher up (threat assessment, conspiracy motivation) reads from here.
package advisors

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Memory store defaults. A store created by NewMemoryStore uses these; the
// spawner overrides them from tuning.
const (
	DefaultMemoryCapacity = 50
	DefaultForgetAt       = 0.01
	DefaultAccessBump     = 0.05
	DefaultMinReliability = 0.1
)

// MemoryType categorizes what a memory is about.
type MemoryType string

const (
	MemoryBetrayal   MemoryType = "betrayal"
	MemoryFavor      MemoryType = "favor"
	MemoryConspiracy MemoryType = "conspiracy"
	MemoryCrisis     MemoryType = "crisis"
	MemoryRumor      MemoryType = "rumor"
	MemoryCoup       MemoryType = "coup"
)

// Memory records a single observation in an advisor's life. EmotionalImpact is
// fixed at creation; Reliability only falls over time, apart from a small
// reinforcement bump on access.
type Memory struct {
	ID        string     `json:"id"`
	AdvisorID AdvisorID  `json:"advisor_id"`
	Type      MemoryType `json:"type"`
	Content   string     `json:"content"`

	EmotionalImpact float64 `json:"emotional_impact"` // 0.0–1.0, immutable
	Reliability     float64 `json:"reliability"`      // 0.0–1.0
	DecayRate       float64 `json:"decay_rate"`       // 0.0–1.0, per-turn loss

	CreatedTurn      uint64 `json:"created_turn"`
	LastAccessedTurn uint64 `json:"last_accessed_turn"`

	Tags []string `json:"tags,omitempty"`

	// SourceID is set when the memory arrived second-hand from another advisor.
	SourceID *AdvisorID `json:"source_id,omitempty"`
}

// NewMemory creates a memory with a fresh id and full reliability.
// Numeric inputs are clamped, never rejected.
func NewMemory(owner AdvisorID, kind MemoryType, content string, impact, decayRate float64, turn uint64, tags ...string) *Memory {
	return &Memory{
		ID:               uuid.NewString(),
		AdvisorID:        owner,
		Type:             kind,
		Content:          content,
		EmotionalImpact:  clamp01(impact),
		Reliability:      1.0,
		DecayRate:        clamp01(decayRate),
		CreatedTurn:      turn,
		LastAccessedTurn: turn,
		Tags:             tags,
	}
}

// Importance weighs a memory for eviction and recall ordering.
func (m *Memory) Importance() float64 {
	return m.EmotionalImpact * m.Reliability
}

// HasTag reports whether the memory carries the given tag.
func (m *Memory) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MemoryStore owns the ordered collection of memories for one advisor.
type MemoryStore struct {
	Capacity   int       `json:"capacity"`
	Memories   []*Memory `json:"memories"`
	ForgetAt   float64   `json:"forget_at"`
	AccessBump float64   `json:"access_bump"`
}

// NewMemoryStore creates an empty store with the given capacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{
		Capacity:   capacity,
		ForgetAt:   DefaultForgetAt,
		AccessBump: DefaultAccessBump,
	}
}

// Store appends a memory and compresses the stream when over capacity: sorted
// by importance descending and truncated, so a high-importance record is never
// displaced by arrival order.
func (s *MemoryStore) Store(m *Memory) {
	s.Memories = append(s.Memories, m)
	if len(s.Memories) <= s.Capacity {
		return
	}
	sort.SliceStable(s.Memories, func(i, j int) bool {
		return s.Memories[i].Importance() > s.Memories[j].Importance()
	})
	s.Memories = s.Memories[:s.Capacity]
}

// Recall returns memories matching the filters, sorted by importance
// descending. A zero-value type or empty tag matches everything.
func (s *MemoryStore) Recall(tag string, kind MemoryType, minReliability float64) []*Memory {
	var matches []*Memory
	for _, m := range s.Memories {
		if m.Reliability < minReliability {
			continue
		}
		if kind != "" && m.Type != kind {
			continue
		}
		if tag != "" && !m.HasTag(tag) {
			continue
		}
		matches = append(matches, m)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Importance() > matches[j].Importance()
	})
	return matches
}

// Access marks a memory as recalled this turn and nudges reliability up.
func (s *MemoryStore) Access(m *Memory, turn uint64) {
	m.LastAccessedTurn = turn
	m.Reliability = clamp01(m.Reliability + s.AccessBump)
}

// Decay applies time-based reliability loss to every memory and forgets the
// ones that have collapsed. Returns the number forgotten.
//
//	reliability *= (1 - decay_rate)^(turn - last_accessed)
func (s *MemoryStore) Decay(turn uint64) int {
	kept := s.Memories[:0]
	forgotten := 0
	for _, m := range s.Memories {
		if turn > m.LastAccessedTurn {
			elapsed := float64(turn - m.LastAccessedTurn)
			m.Reliability *= math.Pow(1.0-m.DecayRate, elapsed)
		}
		if m.Reliability <= s.ForgetAt {
			forgotten++
			continue
		}
		kept = append(kept, m)
	}
	s.Memories = kept
	return forgotten
}

// TransferMemory copies a memory from one advisor to another. The copy gets a
// fresh id, 80% of the source's reliability, and provenance pointing at the
// teller. Copies decay independently; memories are never shared by reference.
func TransferMemory(m *Memory, from, to *Advisor, turn uint64) *Memory {
	src := from.ID
	copied := &Memory{
		ID:               uuid.NewString(),
		AdvisorID:        to.ID,
		Type:             m.Type,
		Content:          m.Content,
		EmotionalImpact:  m.EmotionalImpact,
		Reliability:      m.Reliability * 0.8,
		DecayRate:        m.DecayRate,
		CreatedTurn:      turn,
		LastAccessedTurn: turn,
		Tags:             append([]string(nil), m.Tags...),
		SourceID:         &src,
	}
	to.Memories.Store(copied)
	return copied
}
