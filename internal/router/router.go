package router

import (
	"google.golang.org/grpc"

	"github.com/joshp123/gohome-hddtemp/internal/core"
)

// RegisterPlugins registers every plugin's services on the gRPC server.
func RegisterPlugins(server grpc.ServiceRegistrar, plugins []core.Plugin) {
	for _, p := range plugins {
		p.RegisterGRPC(server)
	}
}
