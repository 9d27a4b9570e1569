package garage

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedShell is a stdin REPL over a facility. Each command runs
// under its own span.
type InstrumentedShell struct {
	facility  *InstrumentedFacility
	scanner   *bufio.Scanner
	telemetry *TelemetryProvider
}

func NewInstrumentedShell(facility *InstrumentedFacility, telemetry *TelemetryProvider) *InstrumentedShell {
	return &InstrumentedShell{
		facility:  facility,
		scanner:   bufio.NewScanner(os.Stdin),
		telemetry: telemetry,
	}
}

func (s *InstrumentedShell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	span.AddEvent("shell_ended")
}

func (s *InstrumentedShell) processCommand(ctx context.Context, input string) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.parse_command")
	defer span.End()

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := parts[0]
	span.SetAttributes(attribute.String("command.name", command))

	switch command {
	case "park":
		s.handlePark(ctx, parts)
	case "exit":
		s.handleExit(ctx, parts)
	case "spot_class":
		s.handleSpotClass(ctx, parts)
	case "status":
		s.handleStatus(ctx)
	default:
		span.AddEvent("unknown_command", trace.WithAttributes(
			attribute.String("unknown_command", command),
		))
		fmt.Printf("Unknown command: %s\n", command)
	}
}

func (s *InstrumentedShell) handlePark(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.park_command")
	defer span.End()

	if len(parts) != 3 {
		span.AddEvent("invalid_arguments")
		fmt.Println("Usage: park <type> <plate>")
		return
	}

	vtype := parts[1]
	plate := parts[2]

	span.SetAttributes(
		attribute.String("vehicle.type", vtype),
		attribute.String("vehicle.plate", plate),
	)

	vehicle, err := NewVehicle(vtype, plate)
	if err != nil {
		span.RecordError(err)
		span.AddEvent("unknown_vehicle_type")
		fmt.Printf("Unknown vehicle type: %s\n", vtype)
		return
	}

	ticket, err := s.facility.Park(ctx, vehicle)
	if err != nil {
		span.AddEvent("park_failed")
		fmt.Println("Sorry, lot is full for this class")
		return
	}

	span.AddEvent("park_successful", trace.WithAttributes(
		attribute.String("spot_id", ticket.SpotID),
	))
	fmt.Printf("Parked at: %s  Ticket: %s\n", ticket.SpotID, ticket.ID)
}

func (s *InstrumentedShell) handleExit(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.exit_command")
	defer span.End()

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		fmt.Println("Usage: exit <ticket_id>")
		return
	}

	ticketID := parts[1]
	span.SetAttributes(attribute.String("ticket.id", ticketID))

	receipt, err := s.facility.Exit(ctx, ticketID)
	if err != nil {
		span.AddEvent("exit_failed")
		fmt.Println("Invalid ticket")
		return
	}

	span.AddEvent("exit_successful")
	fmt.Println(receipt)
}

func (s *InstrumentedShell) handleSpotClass(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.spot_class_command")
	defer span.End()

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		fmt.Println("Usage: spot_class <spot_id>")
		return
	}

	spotID := parts[1]
	span.SetAttributes(attribute.String("spot.id", spotID))

	class, found := s.facility.LookupSpotClass(ctx, spotID)
	if !found {
		span.AddEvent("spot_not_found")
		fmt.Println("Not found")
		return
	}

	span.AddEvent("spot_found", trace.WithAttributes(
		attribute.String("spot.class", string(class)),
	))
	fmt.Println(class)
}

func (s *InstrumentedShell) handleStatus(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.status_command")
	defer span.End()

	status := s.facility.Status(ctx)

	occupied := 0
	for _, ls := range status {
		occupied += ls.Occupied
	}
	span.SetAttributes(attribute.Int("occupied_spots_count", occupied))
	span.AddEvent("status_retrieved")

	fmt.Println("Level\tOccupied\tCapacity")
	for _, ls := range status {
		fmt.Printf("%d\t%d\t\t%d\n", ls.Level, ls.Occupied, ls.Capacity)
	}
	fmt.Printf("Outstanding tickets: %d\n", s.facility.OutstandingTickets())
}
