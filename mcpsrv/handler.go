package mcpsrv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// NewHandler returns the streamable HTTP transport for server. Every session is
// served by the same server and so shares one catalog store.
func NewHandler(server *mcp.Server, opts *mcp.StreamableHTTPOptions) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, opts)
}

// Routes mounts the guarded MCP endpoint at /mcp next to a /healthz probe.
func Routes(server *mcp.Server, cfg Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMid.RealIP)
	r.Use(chiMid.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/mcp", WrapMCPHandler(NewHandler(server, StreamableOptions(cfg)), cfg, logger))
	return r
}
