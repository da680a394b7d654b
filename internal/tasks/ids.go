package tasks

import (
	"math/rand/v2"
	"sync"
)

// Bounds of the random identifier space [MinRandomID, MaxRandomID)
const (
	MinRandomID ID = 1000
	MaxRandomID ID = 10000
)

// IDGenerator produces candidate identifiers for new tasks.
// The Store rejects candidates that are already live and asks again.
type IDGenerator interface {
	NextID() ID
}

// RandomIDs draws identifiers uniformly from [MinRandomID, MaxRandomID)
type RandomIDs struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomIDs creates a generator seeded with the given value.
// Equal seeds produce equal sequences.
func NewRandomIDs(seed uint64) *RandomIDs {
	return &RandomIDs{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NextID implements IDGenerator
func (r *RandomIDs) NextID() ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return MinRandomID + ID(r.rng.Int32N(int32(MaxRandomID-MinRandomID)))
}

// SequentialIDs hands out increasing identifiers starting at a fixed value
type SequentialIDs struct {
	mu   sync.Mutex
	next ID
}

// NewSequentialIDs creates a counter whose first identifier is start
func NewSequentialIDs(start ID) *SequentialIDs {
	return &SequentialIDs{next: start}
}

// NextID implements IDGenerator
func (s *SequentialIDs) NextID() ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}

// Observe advances the counter past an identifier that already exists
func (s *SequentialIDs) Observe(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id >= s.next {
		s.next = id + 1
	}
}

// observer is implemented by generators that want to learn about seeded identifiers
type observer interface {
	Observe(id ID)
}
