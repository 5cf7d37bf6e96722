package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/erraggy/oasclientgen/extractor"
	"github.com/erraggy/oasclientgen/generator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Generation defaults, used when a tool call leaves them out.
	Policy        string
	PackageName   string
	ErrorTypeName string
	RuntimeImport string
	Format        bool

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASCLIENTGEN_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Policy:          envPolicy("OASCLIENTGEN_POLICY", "strict"),
		PackageName:     envString("OASCLIENTGEN_PACKAGE", generator.DefaultPackageName),
		ErrorTypeName:   envString("OASCLIENTGEN_ERROR_TYPE", "Error"),
		RuntimeImport:   envString("OASCLIENTGEN_RUNTIME_IMPORT", generator.DefaultRuntimeImport),
		Format:          envBool("OASCLIENTGEN_FORMAT", true),
		MaxInlineSize:   envInt64("OASCLIENTGEN_MAX_INLINE_SIZE", 10*1024*1024),
		AllowPrivateIPs: envBool("OASCLIENTGEN_ALLOW_PRIVATE_IPS", false),
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envPolicy(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if _, err := extractor.PolicyByName(v); err != nil {
		slog.Warn("invalid policy env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return strings.ToLower(v)
}
