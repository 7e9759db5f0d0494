package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote BookingLedger with plain maps.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Call(ctx context.Context, method string, fields map[string]any) (map[string]any, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func (c *Client) ReserveSlot(ctx context.Context, userID, businessID, serviceID, scheduledAt, notes string) (map[string]any, error) {
	return c.Call(ctx, MethodReserveSlot, map[string]any{
		"user_id":      userID,
		"business_id":  businessID,
		"service_id":   serviceID,
		"scheduled_at": scheduledAt,
		"notes":        notes,
	})
}

func (c *Client) ListAppointments(ctx context.Context, userID, status string) (map[string]any, error) {
	return c.Call(ctx, MethodListAppointments, map[string]any{"user_id": userID, "status": status})
}

func (c *Client) GetAppointmentDetail(ctx context.Context, appointmentID string) (map[string]any, error) {
	return c.Call(ctx, MethodGetAppointmentDetail, map[string]any{"appointment_id": appointmentID})
}

func (c *Client) TransitionStatus(ctx context.Context, appointmentID, status string) (map[string]any, error) {
	return c.Call(ctx, MethodTransitionStatus, map[string]any{"appointment_id": appointmentID, "status": status})
}

func (c *Client) CancelAppointment(ctx context.Context, appointmentID string) (map[string]any, error) {
	return c.Call(ctx, MethodCancelAppointment, map[string]any{"appointment_id": appointmentID})
}

func (c *Client) ListAvailableSlots(ctx context.Context, businessID, date string) (map[string]any, error) {
	return c.Call(ctx, MethodListAvailableSlots, map[string]any{"business_id": businessID, "date": date})
}
