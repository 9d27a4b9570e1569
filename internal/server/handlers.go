package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"parking-garage/internal/garage"

	"github.com/go-chi/chi/v5"
)

func getServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "parking-garage-service"
}

// Handler exposes a single facility over HTTP. The facility is
// constructed once at startup and injected here.
type Handler struct {
	facility *garage.InstrumentedFacility
}

func NewHandler(facility *garage.InstrumentedFacility) *Handler {
	return &Handler{facility: facility}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": getServiceName(),
		"meta":    extractMeta(r.Context()),
	})
}

func (h *Handler) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Type == "" || req.Plate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Type and plate are required")
		return
	}

	vehicle, err := garage.NewVehicle(req.Type, req.Plate)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := h.facility.Park(ctx, vehicle)
	if err != nil {
		if errors.Is(err, garage.ErrLotFull) {
			WriteError(ctx, w, http.StatusConflict, err.Error())
			return
		}
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", TicketResponse{
		TicketID:  ticket.ID,
		Plate:     ticket.Plate,
		SpotID:    ticket.SpotID,
		EntryTime: ticket.EntryTime,
	})
}

func (h *Handler) ExitVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TicketID == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Ticket id is required")
		return
	}

	receipt, err := h.facility.Exit(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, garage.ErrInvalidTicket) {
			WriteError(ctx, w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle exited successfully", ReceiptResponse{
		TicketID:  receipt.TicketID,
		ExitTime:  receipt.ExitTime,
		AmountDue: receipt.AmountDue,
	})
}

func (h *Handler) GetSpotClass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spotID := chi.URLParam(r, "spotID")
	if spotID == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Spot id is required")
		return
	}

	class, found := h.facility.LookupSpotClass(ctx, spotID)
	if !found {
		WriteError(ctx, w, http.StatusNotFound, "Spot not found")
		return
	}

	WriteSuccess(ctx, w, "Spot found", SpotClassResponse{
		SpotID: spotID,
		Class:  string(class),
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := h.facility.Status(ctx)

	levels := make([]LevelStatusResponse, 0, len(status))
	occupied, capacity := 0, 0
	for _, ls := range status {
		levels = append(levels, LevelStatusResponse{
			Level:    ls.Level,
			Occupied: ls.Occupied,
			Capacity: ls.Capacity,
		})
		occupied += ls.Occupied
		capacity += ls.Capacity
	}

	WriteSuccess(ctx, w, "Status retrieved successfully", StatusResponse{
		Levels:             levels,
		Occupied:           occupied,
		Capacity:           capacity,
		OutstandingTickets: h.facility.OutstandingTickets(),
	})
}
