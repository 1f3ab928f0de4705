// Package flagx splits a command line between several independent flag
// parsers and the positional arguments that are left over.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// Set describes the flags one parser owns. Valued flags consume the next
// argument unless it looks like another flag; Bool flags never do.
type Set struct {
	Valued []string
	Bool   []string
}

// kind looks name up in s. "--name" and "-name" are the same flag, as they
// are for the flag package.
func (s Set) kind(name string) (known, valued bool) {
	name = normalize(name)
	for _, f := range s.Valued {
		if normalize(f) == name {
			return true, true
		}
	}
	for _, f := range s.Bool {
		if normalize(f) == name {
			return true, false
		}
	}
	return false, false
}

func normalize(name string) string {
	if strings.HasPrefix(name, "--") {
		return name[1:]
	}
	return name
}

// FilterArgs returns only the arguments that belong to s, keeping values of
// valued flags next to their flag.
//
// Supported formats:
//
//	-c conf.json
//	--config=conf.json
//	--config conf.json
//	-i            (bool flag, never takes the next argument)
func FilterArgs(args []string, s Set) []string {
	filtered, _ := split(args, s)
	return filtered
}

// Positional returns the arguments that are neither flags of s nor values of
// those flags. Everything after a bare "--" is positional. A lone "-" is
// positional too (conventionally standard input).
//
// Unknown flags are skipped together with a following non-flag value only
// when they use the "name=value" form; otherwise the value would be
// indistinguishable from a positional argument.
func Positional(args []string, s Set) []string {
	_, rest := split(args, s)
	return rest
}

func split(args []string, s Set) (filtered, rest []string) {
	filtered = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if known, _ := s.kind(name); known {
				filtered = append(filtered, arg)
			}
			continue
		}

		known, valued := s.kind(arg)
		if !known {
			continue
		}
		filtered = append(filtered, arg)
		if valued && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered, rest
}

// configSet lists the flags that select a JSON config file.
var configSet = Set{Valued: []string{"-c", "-config"}}

// ConfigFlags is the flag set JsonConfigFlags consumes; other parsers add it
// to their own sets so the file path is not mistaken for a positional arg.
func ConfigFlags() Set {
	return configSet
}

// JsonConfigFlags extracts the config file path provided via -c or -config.
// It returns an empty string when neither is present.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], configSet)

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
