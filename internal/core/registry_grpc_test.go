package core

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func dialRegistry(t *testing.T, plugins []Plugin) *RegistryClient {
	t.Helper()
	ln := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	RegisterRegistryService(server, NewRegistryService(plugins))
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return ln.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewRegistryClient(conn)
}

func TestRegistryGRPCListPlugins(t *testing.T) {
	client := dialRegistry(t, []Plugin{newStubPlugin("demo"), newStubPlugin("other")})

	resp, err := client.ListPlugins(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("ListPlugins: %v", err)
	}
	plugins := resp.GetFields()["plugins"].GetListValue().GetValues()
	if len(plugins) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(plugins))
	}
	first := plugins[0].GetStructValue().GetFields()
	if first["plugin_id"].GetStringValue() != "demo" || first["status"].GetStringValue() != string(HealthHealthy) {
		t.Fatalf("unexpected summary: %v", first)
	}
}

func TestRegistryGRPCDescribePlugin(t *testing.T) {
	client := dialRegistry(t, []Plugin{newStubPlugin("demo")})

	resp, err := client.DescribePlugin(context.Background(), wrapperspb.String("demo"))
	if err != nil {
		t.Fatalf("DescribePlugin: %v", err)
	}
	fields := resp.GetFields()
	if fields["agents_md"].GetStringValue() != "demo agents" {
		t.Fatalf("unexpected agents: %v", fields["agents_md"])
	}
	dashboards := fields["dashboards"].GetListValue().GetValues()
	if len(dashboards) != 1 || dashboards[0].GetStructValue().GetFields()["path"].GetStringValue() != "/dashboards/demo/demo.json" {
		t.Fatalf("unexpected dashboards: %v", dashboards)
	}

	_, err = client.DescribePlugin(context.Background(), wrapperspb.String("missing"))
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestRegistryDescriptorRegistered(t *testing.T) {
	if _, err := protoregistry.GlobalFiles.FindDescriptorByName(RegistryServiceName); err != nil {
		t.Fatalf("find %s: %v", RegistryServiceName, err)
	}
}
