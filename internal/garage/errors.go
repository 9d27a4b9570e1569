package garage

import "errors"

var (
	ErrUnknownVehicleType = errors.New("unknown vehicle type")
	ErrLotFull            = errors.New("lot full for this class")
	ErrInvalidTicket      = errors.New("invalid ticket")
	ErrSpotNotFound       = errors.New("spot not found")
)
