package config

import "github.com/dmitrijs2005/gophupload/internal/flagx"

// Config holds runtime settings for the uploader.
//
// Fields:
//   - ServerURL: scheme://host:port of the bin server.
//   - ApplicationID, WorkspaceID: the upload target, fixed for the session.
//   - LinkBasePath: path segment the bins are served under.
//   - FileField: form field name used for plain file arguments.
//   - UserID: when set, sent as the leading "userId" text field.
//   - LogLevel, LogFormat: slog level (debug..error) and handler (text|json).
//   - OtelEndpoint: OTLP/HTTP trace endpoint; empty disables tracing.
//   - Interactive: start the REPL instead of a single upload.
type Config struct {
	ServerURL     string `env:"GOPHUPLOAD_SERVER_URL"`
	ApplicationID string `env:"GOPHUPLOAD_APP"`
	WorkspaceID   string `env:"GOPHUPLOAD_WORKSPACE"`
	LinkBasePath  string `env:"GOPHUPLOAD_BASE_PATH"`
	FileField     string `env:"GOPHUPLOAD_FILE_FIELD"`
	UserID        string `env:"GOPHUPLOAD_USER_ID"`
	LogLevel      string `env:"GOPHUPLOAD_LOG_LEVEL"`
	LogFormat     string `env:"GOPHUPLOAD_LOG_FORMAT"`
	OtelEndpoint  string `env:"GOPHUPLOAD_OTEL_ENDPOINT"`
	Interactive   bool   `env:"GOPHUPLOAD_INTERACTIVE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8090"
	c.ApplicationID = "mytestapp"
	c.WorkspaceID = "1003452"
	c.LinkBasePath = "/bin"
	c.FileField = "file"
	c.UserID = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.OtelEndpoint = ""
	c.Interactive = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Positional returns the command-line arguments that are not configuration
// flags; for the uploader these describe the form to submit.
func Positional(args []string) []string {
	set := flagSet
	cfg := flagx.ConfigFlags()
	set.Valued = append(append([]string{}, set.Valued...), cfg.Valued...)
	return flagx.Positional(args, set)
}
