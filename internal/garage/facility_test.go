package garage

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Levels: 2,
		SpotsPerClass: map[VehicleClass]int{
			Car:        2,
			Bus:        1,
			Motorcycle: 1,
		},
	}
}

func mustVehicle(t *testing.T, vtype, plate string) *Vehicle {
	t.Helper()
	vehicle, err := NewVehicle(vtype, plate)
	if err != nil {
		t.Fatalf("Unexpected error creating vehicle: %s", err.Error())
	}
	return vehicle
}

func TestNewFacility(t *testing.T) {
	f := NewFacility(DefaultConfig())

	status := f.Status()
	if len(status) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(status))
	}

	for _, ls := range status {
		if ls.Capacity != 17 {
			t.Errorf("Expected level %d capacity 17, got %d", ls.Level, ls.Capacity)
		}
		if ls.Occupied != 0 {
			t.Errorf("Expected level %d to start empty, got %d occupied", ls.Level, ls.Occupied)
		}
	}
}

func TestFacilityPark(t *testing.T) {
	f := NewFacility(testConfig())

	ticket, err := f.Park(mustVehicle(t, "car", "KA01HH1234"))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	if ticket.ID == "" {
		t.Error("Expected a non-empty ticket id")
	}
	if ticket.Plate != "KA01HH1234" {
		t.Errorf("Expected plate KA01HH1234, got %s", ticket.Plate)
	}
	if ticket.SpotID != "L1-C1" {
		t.Errorf("Expected first car to take L1-C1, got %s", ticket.SpotID)
	}

	class, found := f.LookupSpotClass(ticket.SpotID)
	if !found {
		t.Fatalf("Expected spot %s to exist", ticket.SpotID)
	}
	if class != Car {
		t.Errorf("Expected claimed spot class %s, got %s", Car, class)
	}

	if f.OutstandingTickets() != 1 {
		t.Errorf("Expected 1 outstanding ticket, got %d", f.OutstandingTickets())
	}
}

func TestFacilityParkSpillsToNextLevel(t *testing.T) {
	f := NewFacility(testConfig())

	first, err := f.Park(mustVehicle(t, "bus", "BUS001"))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if first.SpotID != "L1-B1" {
		t.Errorf("Expected first bus to take L1-B1, got %s", first.SpotID)
	}

	second, err := f.Park(mustVehicle(t, "bus", "BUS002"))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if second.SpotID != "L2-B1" {
		t.Errorf("Expected second bus to spill to L2-B1, got %s", second.SpotID)
	}
}

func TestFacilityParkCapacity(t *testing.T) {
	f := NewFacility(testConfig())

	// 2 levels x 2 car spots.
	seen := make(map[string]bool)
	for i := 0; i < 4; i++ {
		ticket, err := f.Park(mustVehicle(t, "car", "CAR"))
		if err != nil {
			t.Fatalf("Unexpected error on park %d: %s", i+1, err.Error())
		}
		if seen[ticket.SpotID] {
			t.Errorf("Spot %s assigned twice", ticket.SpotID)
		}
		seen[ticket.SpotID] = true
	}

	_, err := f.Park(mustVehicle(t, "car", "CAR5"))
	if err == nil {
		t.Fatal("Expected error when lot is full for class")
	}
	if !errors.Is(err, ErrLotFull) {
		t.Errorf("Expected ErrLotFull, got %v", err)
	}

	// Other classes are unaffected by car exhaustion.
	if _, err := f.Park(mustVehicle(t, "motorcycle", "MOTO1")); err != nil {
		t.Errorf("Unexpected error parking motorcycle: %s", err.Error())
	}
}

func TestFacilityExit(t *testing.T) {
	f := NewFacility(testConfig())

	ticket, err := f.Park(mustVehicle(t, "car", "KA01HH1234"))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	receipt, err := f.Exit(ticket.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	if receipt.TicketID != ticket.ID {
		t.Errorf("Expected receipt for ticket %s, got %s", ticket.ID, receipt.TicketID)
	}

	if f.OutstandingTickets() != 0 {
		t.Errorf("Expected 0 outstanding tickets, got %d", f.OutstandingTickets())
	}

	// The spot is reusable after exit.
	again, err := f.Park(mustVehicle(t, "car", "KA01HH9999"))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if again.SpotID != ticket.SpotID {
		t.Errorf("Expected to reuse spot %s, got %s", ticket.SpotID, again.SpotID)
	}
}

func TestFacilityExitTwice(t *testing.T) {
	f := NewFacility(testConfig())

	ticket, err := f.Park(mustVehicle(t, "car", "KA01HH1234"))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	if _, err := f.Exit(ticket.ID); err != nil {
		t.Fatalf("Unexpected error on first exit: %s", err.Error())
	}

	_, err = f.Exit(ticket.ID)
	if err == nil {
		t.Fatal("Expected error on second exit with same ticket")
	}
	if !errors.Is(err, ErrInvalidTicket) {
		t.Errorf("Expected ErrInvalidTicket, got %v", err)
	}
}

func TestFacilityExitUnknownTicket(t *testing.T) {
	f := NewFacility(testConfig())

	_, err := f.Exit("no-such-ticket")
	if err == nil {
		t.Fatal("Expected error for never-issued ticket")
	}
	if !errors.Is(err, ErrInvalidTicket) {
		t.Errorf("Expected ErrInvalidTicket, got %v", err)
	}
}

func TestFacilityFeeMinimumHour(t *testing.T) {
	f := NewFacility(testConfig())

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return base }

	ticket, err := f.Park(mustVehicle(t, "car", "KA01HH1234"))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	f.now = func() time.Time { return base.Add(30 * time.Minute) }

	receipt, err := f.Exit(ticket.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	// Half an hour still bills the one-hour minimum at the car rate.
	if receipt.AmountDue != 2.0 {
		t.Errorf("Expected amount 2.0, got %f", receipt.AmountDue)
	}
	if !receipt.ExitTime.Equal(base.Add(30 * time.Minute)) {
		t.Errorf("Expected exit time %v, got %v", base.Add(30*time.Minute), receipt.ExitTime)
	}
}

func TestFacilityFeePerClass(t *testing.T) {
	tests := []struct {
		vtype  string
		hours  time.Duration
		amount float64
	}{
		{"car", 3 * time.Hour, 6.0},
		{"bus", 2 * time.Hour, 10.0},
		{"motorcycle", 4 * time.Hour, 4.0},
	}

	for _, tt := range tests {
		f := NewFacility(testConfig())

		base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		f.now = func() time.Time { return base }

		ticket, err := f.Park(mustVehicle(t, tt.vtype, "PLATE"))
		if err != nil {
			t.Fatalf("Unexpected error: %s", err.Error())
		}

		f.now = func() time.Time { return base.Add(tt.hours) }

		receipt, err := f.Exit(ticket.ID)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err.Error())
		}

		if receipt.AmountDue != tt.amount {
			t.Errorf("Expected %s amount %f after %v, got %f", tt.vtype, tt.amount, tt.hours, receipt.AmountDue)
		}
	}
}

func TestFacilityLookupSpotClass(t *testing.T) {
	f := NewFacility(testConfig())

	class, found := f.LookupSpotClass("L2-M1")
	if !found {
		t.Fatal("Expected spot L2-M1 to exist")
	}
	if class != Motorcycle {
		t.Errorf("Expected class %s, got %s", Motorcycle, class)
	}

	if _, found := f.LookupSpotClass("L9-Z1"); found {
		t.Error("Expected lookup of unknown spot to report not found")
	}
}

func TestFacilityParkClassMatchesVehicle(t *testing.T) {
	f := NewFacility(testConfig())

	for _, vtype := range []string{"motorcycle", "car", "bus"} {
		vehicle := mustVehicle(t, vtype, "PLATE-"+strings.ToUpper(vtype))
		ticket, err := f.Park(vehicle)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err.Error())
		}

		class, found := f.LookupSpotClass(ticket.SpotID)
		if !found {
			t.Fatalf("Expected spot %s to exist", ticket.SpotID)
		}
		if class != vehicle.Class {
			t.Errorf("Expected spot class %s for %s, got %s", vehicle.Class, vtype, class)
		}
	}
}

func TestReceiptString(t *testing.T) {
	receipt := &Receipt{TicketID: "abc", AmountDue: 2.5}

	if got := receipt.String(); got != "Receipt(abc): $2.50" {
		t.Errorf("Expected Receipt(abc): $2.50, got %s", got)
	}
}
