package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophupload/internal/flagx"
)

var flagSet = flagx.Set{
	Valued: []string{"-s", "-app", "-w", "-b", "-f", "-u", "-l", "-log-format", "-otel"},
	Bool:   []string{"-i"},
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-s string          server URL
//	-app string        application id
//	-w string          workspace id
//	-b string          link base path
//	-f string          form field name for file arguments
//	-u string          user id sent as the userId field
//	-l string          log level
//	-log-format string text or json
//	-otel string       OTLP/HTTP trace endpoint
//	-i                 interactive mode
//
// os.Args is filtered with flagx.FilterArgs first so positional form
// arguments and the -c/-config flags do not disturb parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], flagSet)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "server URL")
	fs.StringVar(&cfg.ApplicationID, "app", cfg.ApplicationID, "application id")
	fs.StringVar(&cfg.WorkspaceID, "w", cfg.WorkspaceID, "workspace id")
	fs.StringVar(&cfg.LinkBasePath, "b", cfg.LinkBasePath, "base path of file links")
	fs.StringVar(&cfg.FileField, "f", cfg.FileField, "form field name for file arguments")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "user id sent as the userId field")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	fs.StringVar(&cfg.OtelEndpoint, "otel", cfg.OtelEndpoint, "OTLP/HTTP trace endpoint")
	fs.BoolVar(&cfg.Interactive, "i", cfg.Interactive, "interactive mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
