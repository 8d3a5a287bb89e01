package mcpsrv

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config holds the transport settings of the MCP endpoint. Catalog and order
// settings come from the shared config file.
type Config struct {
	Port           string
	AllowedOrigins []string
	Stateless      bool
	EnableOrders   bool
	APIKey         string
	RPS            float64
	Burst          int
	SessionTimeout time.Duration
}

func LoadConfig() Config {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) Config {
	port := strings.TrimSpace(getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	cfg := Config{
		Port:           port,
		AllowedOrigins: parseCSV(getenv("CRAFTSHELF_MCP_ALLOWED_ORIGINS")),
		Stateless:      parseBool(getenv("CRAFTSHELF_MCP_STATELESS"), false),
		EnableOrders:   parseBool(getenv("CRAFTSHELF_MCP_ENABLE_ORDERS"), true),
		APIKey:         strings.TrimSpace(getenv("CRAFTSHELF_MCP_API_KEY")),
		RPS:            parseFloat(getenv("CRAFTSHELF_MCP_RPS"), 5),
		Burst:          parseInt(getenv("CRAFTSHELF_MCP_BURST"), 10),
		SessionTimeout: parseDuration(getenv("CRAFTSHELF_MCP_SESSION_TIMEOUT"), 15*time.Minute),
	}

	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}

	return cfg
}

func StreamableOptions(cfg Config) *mcp.StreamableHTTPOptions {
	return &mcp.StreamableHTTPOptions{
		Stateless:      cfg.Stateless,
		SessionTimeout: cfg.SessionTimeout,
	}
}

func parseCSV(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBool(raw string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return b
}

func parseInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(raw string, fallback float64) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return d
}
