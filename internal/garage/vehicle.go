package garage

import "strings"

// VehicleClass identifies the size class of a vehicle and the class of
// spot it requires. The set is closed.
type VehicleClass string

const (
	Motorcycle VehicleClass = "motorcycle"
	Car        VehicleClass = "car"
	Bus        VehicleClass = "bus"
)

// classOrder fixes the spot creation order within a level.
var classOrder = []VehicleClass{Motorcycle, Car, Bus}

// Code returns the single-letter class code used in spot ids.
func (c VehicleClass) Code() string {
	switch c {
	case Motorcycle:
		return "M"
	case Car:
		return "C"
	case Bus:
		return "B"
	}
	return "?"
}

// HourlyRate returns the fee charged per hour for this class.
// An unrecognized class is free.
func (c VehicleClass) HourlyRate() float64 {
	switch c {
	case Motorcycle:
		return 1.0
	case Car:
		return 2.0
	case Bus:
		return 5.0
	}
	return 0
}

type Vehicle struct {
	Plate string
	Class VehicleClass
}

// NewVehicle builds a Vehicle from a case-insensitive type tag
// ("car", "bus" or "motorcycle") and a plate identifier.
func NewVehicle(vtype, plate string) (*Vehicle, error) {
	switch strings.ToLower(vtype) {
	case "car":
		return &Vehicle{Plate: plate, Class: Car}, nil
	case "bus":
		return &Vehicle{Plate: plate, Class: Bus}, nil
	case "motorcycle":
		return &Vehicle{Plate: plate, Class: Motorcycle}, nil
	}
	return nil, ErrUnknownVehicleType
}
