// Package cli provides the uploader command-line client.
//
// In one-shot mode the positional arguments describe a single form, which is
// submitted, awaited and printed as a log entry. In interactive mode a REPL
// accepts any number of upload commands; uploads run in the background and
// their outcomes accumulate in the session log, which lives only as long as
// the process.
//
// See App.Run and runREPL for details.
package cli
