package grpcserver

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/obelixq/obelixq/libs/grpcx"
	"github.com/obelixq/obelixq/services/booking-service/internal/booking"
	"github.com/obelixq/obelixq/services/booking-service/internal/catalog"
	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func startServer(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.Fixtures()
	l := ledger.New(cat, ledger.Config{Location: time.FixedZone("COT", -5*3600), Logger: logger})

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := grpcx.NewServer([]grpc.UnaryServerInterceptor{grpcx.UnaryServerLogInterceptor(logger)})
	Register(srv, NewServer(booking.NewService(l, cat), logger))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpcx.Dial(lis.Addr().String(), grpcx.DialOptions{})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func TestReserveOverGRPC(t *testing.T) {
	c := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := c.ReserveSlot(ctx, "user1", "1", "s1", "2025-03-10T09:00:00-05:00", "")
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if out["status"] != "pending" {
		t.Fatalf("unexpected reply %v", out)
	}
	id, _ := out["appointment_id"].(string)

	_, err = c.ReserveSlot(ctx, "user2", "1", "s2", "2025-03-10T14:00:00Z", "")
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("code = %v, want AlreadyExists", status.Code(err))
	}

	detail, err := c.GetAppointmentDetail(ctx, id)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	user, _ := detail["user"].(map[string]any)
	if user["full_name"] != "Juan Pérez" {
		t.Fatalf("unexpected detail %v", detail)
	}

	slots, err := c.ListAvailableSlots(ctx, "1", "2025-03-10")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if list, _ := slots["slots"].([]any); len(list) != 19 {
		t.Fatalf("got %d slots, want 19", len(list))
	}
}

func TestErrorCodes(t *testing.T) {
	c := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := c.ReserveSlot(ctx, "user1", "2", "s4", "2025-03-10T10:00:00-05:00", "")
	if err != nil {
		t.Fatal(err)
	}
	id, _ := out["appointment_id"].(string)
	if _, err := c.CancelAppointment(ctx, id); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"missing user", func() error {
			_, err := c.ReserveSlot(ctx, "", "1", "s1", "2025-03-10T09:00:00Z", "")
			return err
		}, codes.InvalidArgument},
		{"bad time", func() error {
			_, err := c.ReserveSlot(ctx, "user1", "1", "s1", "soon", "")
			return err
		}, codes.InvalidArgument},
		{"unknown appointment", func() error {
			_, err := c.GetAppointmentDetail(ctx, "missing")
			return err
		}, codes.NotFound},
		{"confirm cancelled", func() error {
			_, err := c.TransitionStatus(ctx, id, "confirmed")
			return err
		}, codes.FailedPrecondition},
		{"bad status", func() error {
			_, err := c.ListAppointments(ctx, "user1", "archived")
			return err
		}, codes.InvalidArgument},
		{"unknown method", func() error {
			_, err := c.Call(ctx, "Nope", map[string]any{})
			return err
		}, codes.Unimplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(tt.call()); got != tt.want {
				t.Fatalf("code = %v, want %v", got, tt.want)
			}
		})
	}

	list, err := c.ListAppointments(ctx, "user1", "cancelled")
	if err != nil {
		t.Fatal(err)
	}
	if items, _ := list["appointments"].([]any); len(items) != 1 {
		t.Fatalf("got %v", list)
	}
}
