package hddtemp

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// HddtempServiceServer is the server API for HddtempService.
type HddtempServiceServer interface {
	GetDevices(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetRaw(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

type service struct {
	client *Client
}

func RegisterHddtempService(server grpc.ServiceRegistrar, client *Client) {
	server.RegisterService(&hddtempServiceDesc, &service{client: client})
}

func (s *service) GetDevices(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if s.client == nil {
		return nil, status.Error(codes.FailedPrecondition, "hddtemp client not configured")
	}
	devices, err := s.client.Devices(ctx)
	if err != nil {
		return nil, statusFromError("get devices", err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"address": s.client.Address(),
		"devices": deviceValues(devices),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode devices: %v", err)
	}
	return out, nil
}

func (s *service) GetRaw(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	if s.client == nil {
		return nil, status.Error(codes.FailedPrecondition, "hddtemp client not configured")
	}
	raw, err := s.client.Raw(ctx)
	if err != nil {
		return nil, statusFromError("get raw", err)
	}
	return wrapperspb.String(raw), nil
}

func statusFromError(action string, err error) error {
	switch {
	case errors.Is(err, ErrTransport):
		return status.Errorf(codes.Unavailable, "%s: %v", action, err)
	case errors.Is(err, ErrMissingStartDelimiter), errors.Is(err, ErrMissingEndDelimiter):
		return status.Errorf(codes.DataLoss, "%s: %v", action, err)
	default:
		return status.Errorf(codes.Internal, "%s: %v", action, err)
	}
}

func deviceValues(devices Devices) []any {
	values := make([]any, 0, len(devices))
	for _, id := range devices.IDs() {
		device := devices[id]
		entry := map[string]any{
			"id":     id,
			"model":  device.Model,
			"status": device.Result.Label(),
		}
		if device.Temperature != nil {
			entry["temperature"] = float64(*device.Temperature)
		}
		if device.Unit != nil {
			entry["unit"] = device.Unit.String()
		}
		values = append(values, entry)
	}
	return values
}

// HddtempServiceClient is the client API for HddtempService.
type HddtempServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHddtempServiceClient(cc grpc.ClientConnInterface) *HddtempServiceClient {
	return &HddtempServiceClient{cc: cc}
}

func (c *HddtempServiceClient) GetDevices(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getDevicesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HddtempServiceClient) GetRaw(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, getRawMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func getDevicesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HddtempServiceServer).GetDevices(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getDevicesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HddtempServiceServer).GetDevices(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getRawHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HddtempServiceServer).GetRaw(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getRawMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HddtempServiceServer).GetRaw(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var hddtempServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HddtempServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetDevices", Handler: getDevicesHandler},
		{MethodName: "GetRaw", Handler: getRawHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}
