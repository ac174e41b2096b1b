package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"eventcraft/internal/event"
	"eventcraft/internal/workflow"
)

// Resolver turns a user-supplied object name or id into an ObjectRef.
type Resolver interface {
	Resolve(nameOrID string) (event.ObjectRef, bool)
}

type Server struct {
	svc     *workflow.Service
	resolve Resolver
	mcp     *sdk.Server
}

func NewServer(svc *workflow.Service, resolve Resolver, version string) *Server {
	s := &Server{
		svc:     svc,
		resolve: resolve,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "eventcraft",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
