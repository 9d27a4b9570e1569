package garage

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedFacility wraps a Facility with tracing and metrics. The
// embedded Facility carries the actual allocation and ticket logic.
type InstrumentedFacility struct {
	*Facility
	telemetry *TelemetryProvider

	parkOperations    metric.Int64Counter
	exitOperations    metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	operationDuration metric.Float64Histogram
	totalSpotsGauge   metric.Int64UpDownCounter
	revenueCounter    metric.Float64Counter
}

func NewInstrumentedFacility(cfg Config, telemetry *TelemetryProvider) (*InstrumentedFacility, error) {
	facility := NewFacility(cfg)

	meter := telemetry.Meter()

	parkOperations, err := meter.Int64Counter("park_operations_total",
		metric.WithDescription("Total number of park operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	exitOperations, err := meter.Int64Counter("exit_operations_total",
		metric.WithDescription("Total number of exit operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("garage_occupancy",
		metric.WithDescription("Current number of occupied spots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of garage operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSpotsGauge, err := meter.Int64UpDownCounter("garage_total_spots",
		metric.WithDescription("Total number of parking spots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	revenueCounter, err := meter.Float64Counter("garage_revenue_total",
		metric.WithDescription("Total amount billed across all receipts"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	ifc := &InstrumentedFacility{
		Facility:          facility,
		telemetry:         telemetry,
		parkOperations:    parkOperations,
		exitOperations:    exitOperations,
		occupancyGauge:    occupancyGauge,
		operationDuration: operationDuration,
		totalSpotsGauge:   totalSpotsGauge,
		revenueCounter:    revenueCounter,
	}

	total := 0
	for _, ls := range facility.Status() {
		total += ls.Capacity
	}
	totalSpotsGauge.Add(context.Background(), int64(total))

	return ifc, nil
}

func (ifc *InstrumentedFacility) Park(ctx context.Context, vehicle *Vehicle) (*Ticket, error) {
	tracer := ifc.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.park",
		trace.WithAttributes(
			attribute.String("vehicle.plate", vehicle.Plate),
			attribute.String("vehicle.class", string(vehicle.Class)),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("finding_available_spot")

	ticket, err := ifc.Facility.Park(vehicle)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_class", string(vehicle.Class)),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
		ifc.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	} else {
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("spot_id", ticket.SpotID),
		)
		span.SetAttributes(
			attribute.String("ticket.id", ticket.ID),
			attribute.String("spot.id", ticket.SpotID),
		)
		span.AddEvent("spot_claimed", trace.WithAttributes(
			attribute.String("spot_id", ticket.SpotID),
		))

		ifc.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
		ifc.occupancyGauge.Add(ctx, 1)
	}

	ifc.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return ticket, err
}

func (ifc *InstrumentedFacility) Exit(ctx context.Context, ticketID string) (*Receipt, error) {
	tracer := ifc.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.exit",
		trace.WithAttributes(
			attribute.String("ticket.id", ticketID),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("releasing_spot")

	receipt, err := ifc.Facility.Exit(ticketID)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "exit"),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(attribute.Float64("receipt.amount_due", receipt.AmountDue))
		span.AddEvent("spot_released")
		ifc.occupancyGauge.Add(ctx, -1)
		ifc.revenueCounter.Add(ctx, receipt.AmountDue)
	}

	ifc.exitOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ifc.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return receipt, err
}

func (ifc *InstrumentedFacility) LookupSpotClass(ctx context.Context, spotID string) (VehicleClass, bool) {
	tracer := ifc.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.spot_class",
		trace.WithAttributes(
			attribute.String("spot.id", spotID),
		))
	defer span.End()

	start := time.Now()

	class, found := ifc.Facility.LookupSpotClass(spotID)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "spot_class"),
	}

	if !found {
		span.AddEvent("spot_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	} else {
		span.SetAttributes(attribute.String("spot.class", string(class)))
		labels = append(labels, attribute.String("status", "found"))
	}

	ifc.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return class, found
}

func (ifc *InstrumentedFacility) Status(ctx context.Context) []LevelStatus {
	tracer := ifc.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.status")
	defer span.End()

	start := time.Now()

	span.AddEvent("retrieving_status")

	status := ifc.Facility.Status()

	duration := time.Since(start).Seconds()

	occupied := 0
	for _, ls := range status {
		occupied += ls.Occupied
	}
	span.SetAttributes(
		attribute.Int("occupied_spots_count", occupied),
		attribute.Int("levels_count", len(status)),
	)

	labels := []attribute.KeyValue{
		attribute.String("operation", "status"),
		attribute.String("status", "success"),
	}

	ifc.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return status
}
