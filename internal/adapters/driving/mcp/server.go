package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tally/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

const instructions = `Counts whole-word keyword occurrences in documents.
Use list_taxonomies to see stored taxonomies, then count_keywords with text
or a file path. Every search term gets a row, in taxonomy order, including
terms with no matches.`

// shutdownTimeout bounds how long in-flight HTTP requests may finish.
const shutdownTimeout = 5 * time.Second

// Server exposes the tally and taxonomy services as MCP tools and resources.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer validates the ports and registers every tool and resource.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "tally", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves a single client over stdin and stdout until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("mcp: serving on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves streamable HTTP on addr until ctx is done.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.serveHTTP(ctx, ln)
}

func (s *Server) serveHTTP(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.server
		}, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	served := make(chan error, 1)
	go func() {
		served <- httpServer.Serve(ln)
	}()
	logger.Info("mcp: serving HTTP on %s", ln.Addr())

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down MCP HTTP server: %w", err)
	}
	if err := <-served; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
