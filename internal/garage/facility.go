package garage

import (
	"math"
	"sync"
	"time"
)

// Config describes the garage layout: how many levels, and how many
// spots of each class on every level.
type Config struct {
	Levels        int
	SpotsPerClass map[VehicleClass]int
}

// DefaultConfig mirrors the reference layout: 2 levels, each with
// 10 car, 2 bus and 5 motorcycle spots.
func DefaultConfig() Config {
	return Config{
		Levels: 2,
		SpotsPerClass: map[VehicleClass]int{
			Car:        10,
			Bus:        2,
			Motorcycle: 5,
		},
	}
}

// Facility owns the levels and the registry of outstanding tickets.
// Park and Exit are the only registry mutators, which keeps outstanding
// tickets and occupied spots in one-to-one correspondence.
type Facility struct {
	levels []*Level

	mu      sync.Mutex
	tickets map[string]*Ticket

	now func() time.Time
}

func NewFacility(cfg Config) *Facility {
	levels := make([]*Level, cfg.Levels)
	for i := 0; i < cfg.Levels; i++ {
		levels[i] = NewLevel(i+1, cfg.SpotsPerClass)
	}

	return &Facility{
		levels:  levels,
		tickets: make(map[string]*Ticket),
		now:     time.Now,
	}
}

// Park claims a spot matching the vehicle's class, scanning levels in
// construction order, and returns the minted ticket. Returns ErrLotFull
// when no level has a free spot of that class.
func (f *Facility) Park(vehicle *Vehicle) (*Ticket, error) {
	for _, level := range f.levels {
		spot := level.FindAndClaim(vehicle.Class)
		if spot == nil {
			continue
		}

		ticket := newTicket(vehicle, spot, f.now())
		f.mu.Lock()
		f.tickets[ticket.ID] = ticket
		f.mu.Unlock()
		return ticket, nil
	}
	return nil, ErrLotFull
}

// Exit consumes the ticket, releases its spot and returns the receipt.
// The ticket is removed from the registry atomically, so a second exit
// with the same id fails with ErrInvalidTicket.
func (f *Facility) Exit(ticketID string) (*Receipt, error) {
	f.mu.Lock()
	ticket, ok := f.tickets[ticketID]
	if ok {
		delete(f.tickets, ticketID)
	}
	f.mu.Unlock()

	if !ok {
		return nil, ErrInvalidTicket
	}

	exitTime := f.now()
	hours := exitTime.Sub(ticket.EntryTime).Hours()

	class, _ := f.LookupSpotClass(ticket.SpotID)
	amount := math.Max(1, hours) * class.HourlyRate()

	f.releaseSpot(ticket.SpotID)

	return &Receipt{
		TicketID:  ticket.ID,
		ExitTime:  exitTime,
		AmountDue: amount,
	}, nil
}

// LookupSpotClass scans every level for the spot id and reports its
// class, or false when no such spot exists.
func (f *Facility) LookupSpotClass(spotID string) (VehicleClass, bool) {
	for _, level := range f.levels {
		for _, spot := range level.spots {
			if spot.ID == spotID {
				return spot.Class, true
			}
		}
	}
	return "", false
}

func (f *Facility) releaseSpot(spotID string) {
	for _, level := range f.levels {
		for _, spot := range level.spots {
			if spot.ID == spotID {
				spot.Release()
				return
			}
		}
	}
}

// LevelStatus is a point-in-time occupancy summary for one level.
type LevelStatus struct {
	Level    int
	Capacity int
	Occupied int
}

func (f *Facility) Status() []LevelStatus {
	status := make([]LevelStatus, 0, len(f.levels))
	for _, level := range f.levels {
		status = append(status, LevelStatus{
			Level:    level.Number,
			Capacity: level.Capacity(),
			Occupied: level.Occupied(),
		})
	}
	return status
}

func (f *Facility) OutstandingTickets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickets)
}
