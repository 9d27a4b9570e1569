package garage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ticket is the proof of an active parking session, minted once per
// successful park and held in the facility's registry until exit.
type Ticket struct {
	ID        string
	Plate     string
	SpotID    string
	EntryTime time.Time
}

func newTicket(vehicle *Vehicle, spot *Spot, entryTime time.Time) *Ticket {
	return &Ticket{
		ID:        uuid.New().String(),
		Plate:     vehicle.Plate,
		SpotID:    spot.ID,
		EntryTime: entryTime,
	}
}

// Receipt is the finalized bill issued at exit. It is returned to the
// caller and not retained.
type Receipt struct {
	TicketID  string
	ExitTime  time.Time
	AmountDue float64
}

func (r *Receipt) String() string {
	return fmt.Sprintf("Receipt(%s): $%.2f", r.TicketID, r.AmountDue)
}
