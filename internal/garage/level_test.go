package garage

import "testing"

func TestNewLevel(t *testing.T) {
	level := NewLevel(1, map[VehicleClass]int{Car: 2, Motorcycle: 1})

	if level.Number != 1 {
		t.Errorf("Expected level number 1, got %d", level.Number)
	}

	if level.Capacity() != 3 {
		t.Errorf("Expected capacity 3, got %d", level.Capacity())
	}

	if level.Occupied() != 0 {
		t.Errorf("Expected 0 occupied spots, got %d", level.Occupied())
	}
}

func TestLevelSpotIDs(t *testing.T) {
	level := NewLevel(2, map[VehicleClass]int{Car: 2, Bus: 1, Motorcycle: 1})

	expected := map[string]VehicleClass{
		"L2-M1": Motorcycle,
		"L2-C1": Car,
		"L2-C2": Car,
		"L2-B1": Bus,
	}

	for id, class := range expected {
		found, ok := func() (VehicleClass, bool) {
			for _, spot := range level.spots {
				if spot.ID == id {
					return spot.Class, true
				}
			}
			return "", false
		}()
		if !ok {
			t.Errorf("Expected spot %s to exist", id)
			continue
		}
		if found != class {
			t.Errorf("Expected spot %s to have class %s, got %s", id, class, found)
		}
	}
}

func TestLevelFindAndClaim(t *testing.T) {
	level := NewLevel(1, map[VehicleClass]int{Car: 2})

	first := level.FindAndClaim(Car)
	if first == nil {
		t.Fatal("Expected to claim a car spot")
	}
	if first.ID != "L1-C1" {
		t.Errorf("Expected first claim to take L1-C1, got %s", first.ID)
	}

	second := level.FindAndClaim(Car)
	if second == nil {
		t.Fatal("Expected to claim the second car spot")
	}
	if second.ID != "L1-C2" {
		t.Errorf("Expected second claim to take L1-C2, got %s", second.ID)
	}

	if spot := level.FindAndClaim(Car); spot != nil {
		t.Errorf("Expected claim on exhausted class to fail, got %s", spot.ID)
	}
}

func TestLevelFindAndClaimClassFilter(t *testing.T) {
	level := NewLevel(1, map[VehicleClass]int{Car: 1})

	if spot := level.FindAndClaim(Bus); spot != nil {
		t.Errorf("Expected no bus spot on a car-only level, got %s", spot.ID)
	}

	if level.Occupied() != 0 {
		t.Errorf("Expected failed claim to leave nothing occupied, got %d", level.Occupied())
	}
}
