package garage

import "fmt"

// Level is one floor of the garage: a fixed, ordered collection of
// spots created at construction time. Spots are never added or removed
// afterwards.
type Level struct {
	Number int
	spots  []*Spot
}

// NewLevel builds a level from a class→count configuration. Spot ids
// encode the level number, the class code and a 1-based index within
// that class, e.g. level 1's second car spot is "L1-C2".
func NewLevel(number int, spotsPerClass map[VehicleClass]int) *Level {
	var spots []*Spot
	for _, class := range classOrder {
		for i := 0; i < spotsPerClass[class]; i++ {
			id := fmt.Sprintf("L%d-%s%d", number, class.Code(), i+1)
			spots = append(spots, NewSpot(id, class))
		}
	}

	return &Level{
		Number: number,
		spots:  spots,
	}
}

// FindAndClaim scans spots in creation order and returns the first
// spot of the given class it manages to claim, or nil when every
// matching spot is occupied. Losing a claim race moves the scan to the
// next candidate; nothing is claimed speculatively.
func (l *Level) FindAndClaim(class VehicleClass) *Spot {
	for _, spot := range l.spots {
		if spot.Class == class && spot.Claim() {
			return spot
		}
	}
	return nil
}

func (l *Level) Capacity() int {
	return len(l.spots)
}

func (l *Level) Occupied() int {
	count := 0
	for _, spot := range l.spots {
		if spot.IsOccupied() {
			count++
		}
	}
	return count
}
