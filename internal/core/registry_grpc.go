package core

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	registryProtoFile    = "gohome/registry/v1/registry.proto"
	registryServiceShort = "Registry"
	RegistryServiceName  = "gohome.registry.v1." + registryServiceShort
	listPluginsMethod    = "/" + RegistryServiceName + "/ListPlugins"
	describePluginMethod = "/" + RegistryServiceName + "/DescribePlugin"
)

func init() {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(registryProtoFile),
		Package: proto.String("gohome.registry.v1"),
		Dependency: []string{
			emptypb.File_google_protobuf_empty_proto.Path(),
			structpb.File_google_protobuf_struct_proto.Path(),
			wrapperspb.File_google_protobuf_wrappers_proto.Path(),
		},
		Syntax: proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String(registryServiceShort),
			Method: []*descriptorpb.MethodDescriptorProto{
				{
					Name:       proto.String("ListPlugins"),
					InputType:  proto.String(".google.protobuf.Empty"),
					OutputType: proto.String(".google.protobuf.Struct"),
				},
				{
					Name:       proto.String("DescribePlugin"),
					InputType:  proto.String(".google.protobuf.StringValue"),
					OutputType: proto.String(".google.protobuf.Struct"),
				},
			},
		}},
	}

	file, err := protodesc.NewFile(fd, protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("build %s: %v", registryProtoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(file); err != nil {
		panic(fmt.Sprintf("register %s: %v", registryProtoFile, err))
	}
}

// RegistryServer is the server API for the plugin registry.
type RegistryServer interface {
	ListPlugins(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	DescribePlugin(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

type registryServer struct {
	registry *RegistryService
}

// RegisterRegistryService exposes the registry over gRPC.
func RegisterRegistryService(server grpc.ServiceRegistrar, registry *RegistryService) {
	server.RegisterService(&registryServiceDesc, &registryServer{registry: registry})
}

// ListPlugins returns {"plugins": [PluginSummary...]}.
func (s *registryServer) ListPlugins(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(map[string]any{"plugins": s.registry.ListPlugins()})
}

// DescribePlugin returns the PluginDescriptor for the requested id.
func (s *registryServer) DescribePlugin(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	descriptor, ok := s.registry.DescribePlugin(req.GetValue())
	if !ok {
		return nil, status.Errorf(codes.NotFound, "plugin %q not found", req.GetValue())
	}
	return toStruct(descriptor)
}

// toStruct converts a JSON-tagged value into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode: %v", err)
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, status.Errorf(codes.Internal, "encode: %v", err)
	}
	return out, nil
}

// RegistryClient is the client API for the plugin registry.
type RegistryClient struct {
	cc grpc.ClientConnInterface
}

func NewRegistryClient(cc grpc.ClientConnInterface) *RegistryClient {
	return &RegistryClient{cc: cc}
}

func (c *RegistryClient) ListPlugins(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listPluginsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RegistryClient) DescribePlugin(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, describePluginMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func listPluginsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServer).ListPlugins(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listPluginsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistryServer).ListPlugins(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func describePluginHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServer).DescribePlugin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: describePluginMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistryServer).DescribePlugin(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var registryServiceDesc = grpc.ServiceDesc{
	ServiceName: RegistryServiceName,
	HandlerType: (*RegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListPlugins", Handler: listPluginsHandler},
		{MethodName: "DescribePlugin", Handler: describePluginHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: registryProtoFile,
}
