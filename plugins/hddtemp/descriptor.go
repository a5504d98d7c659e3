package hddtemp

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	protoFile        = "gohome/plugins/hddtemp/v1/hddtemp.proto"
	protoPackage     = "gohome.plugins.hddtemp.v1"
	ServiceName      = protoPackage + ".HddtempService"
	getDevicesMethod = "/" + ServiceName + "/GetDevices"
	getRawMethod     = "/" + ServiceName + "/GetRaw"
)

// The service only uses well-known types, so its descriptor is built here
// and registered globally for server reflection.
func init() {
	deps := []string{
		emptypb.File_google_protobuf_empty_proto.Path(),
		structpb.File_google_protobuf_struct_proto.Path(),
		wrapperspb.File_google_protobuf_wrappers_proto.Path(),
	}
	fd := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFile),
		Package:    proto.String(protoPackage),
		Dependency: deps,
		Syntax:     proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("HddtempService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				{
					Name:       proto.String("GetDevices"),
					InputType:  proto.String(".google.protobuf.Empty"),
					OutputType: proto.String(".google.protobuf.Struct"),
				},
				{
					Name:       proto.String("GetRaw"),
					InputType:  proto.String(".google.protobuf.Empty"),
					OutputType: proto.String(".google.protobuf.StringValue"),
				},
			},
		}},
	}

	file, err := protodesc.NewFile(fd, protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("build %s: %v", protoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(file); err != nil {
		panic(fmt.Sprintf("register %s: %v", protoFile, err))
	}
}
