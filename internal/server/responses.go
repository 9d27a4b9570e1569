package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ParkRequest struct {
	Type  string `json:"type"`
	Plate string `json:"plate"`
}

type TicketResponse struct {
	TicketID  string    `json:"ticket_id"`
	Plate     string    `json:"plate"`
	SpotID    string    `json:"spot_id"`
	EntryTime time.Time `json:"entry_time"`
}

type ExitRequest struct {
	TicketID string `json:"ticket_id"`
}

type ReceiptResponse struct {
	TicketID  string    `json:"ticket_id"`
	ExitTime  time.Time `json:"exit_time"`
	AmountDue float64   `json:"amount_due"`
}

type SpotClassResponse struct {
	SpotID string `json:"spot_id"`
	Class  string `json:"class"`
}

type LevelStatusResponse struct {
	Level    int `json:"level"`
	Occupied int `json:"occupied"`
	Capacity int `json:"capacity"`
}

type StatusResponse struct {
	Levels             []LevelStatusResponse `json:"levels"`
	Occupied           int                   `json:"occupied"`
	Capacity           int                   `json:"capacity"`
	OutstandingTickets int                   `json:"outstanding_tickets"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
