package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "obelixq.booking.v1.BookingLedger"

const (
	MethodReserveSlot          = "ReserveSlot"
	MethodListAppointments     = "ListAppointments"
	MethodGetAppointmentDetail = "GetAppointmentDetail"
	MethodTransitionStatus     = "TransitionStatus"
	MethodCancelAppointment    = "CancelAppointment"
	MethodListAvailableSlots   = "ListAvailableSlots"
)

// BookingLedgerServer exchanges google.protobuf.Struct messages, so no generated stubs are needed.
type BookingLedgerServer interface {
	ReserveSlot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAppointments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAppointmentDetail(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TransitionStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelAppointment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAvailableSlots(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(BookingLedgerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(BookingLedgerServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*structpb.Struct))
			})
		},
	}
}

func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingLedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodReserveSlot, BookingLedgerServer.ReserveSlot),
		unary(MethodListAppointments, BookingLedgerServer.ListAppointments),
		unary(MethodGetAppointmentDetail, BookingLedgerServer.GetAppointmentDetail),
		unary(MethodTransitionStatus, BookingLedgerServer.TransitionStatus),
		unary(MethodCancelAppointment, BookingLedgerServer.CancelAppointment),
		unary(MethodListAvailableSlots, BookingLedgerServer.ListAvailableSlots),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "booking/v1/booking.proto",
}

func Register(s grpc.ServiceRegistrar, srv BookingLedgerServer) {
	s.RegisterService(&ServiceDesc, srv)
}
