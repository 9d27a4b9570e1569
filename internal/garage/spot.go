package garage

import "sync"

// Spot is a single parking space. Its class never changes after
// creation; occupancy is guarded by a per-spot lock so concurrent
// claims on the same spot resolve to exactly one winner.
type Spot struct {
	ID    string
	Class VehicleClass

	mu       sync.Mutex
	occupied bool
}

func NewSpot(id string, class VehicleClass) *Spot {
	return &Spot{
		ID:    id,
		Class: class,
	}
}

// Claim marks the spot occupied if it is free, returning true on
// success. A claim against an occupied spot fails without blocking.
func (s *Spot) Claim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.occupied {
		return false
	}
	s.occupied = true
	return true
}

// Release marks the spot free. Releasing a free spot is a no-op.
func (s *Spot) Release() {
	s.mu.Lock()
	s.occupied = false
	s.mu.Unlock()
}

func (s *Spot) IsOccupied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.occupied
}
