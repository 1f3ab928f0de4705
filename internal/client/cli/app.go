package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/gophupload/internal/client/config"
	"github.com/dmitrijs2005/gophupload/internal/logging"
	"github.com/dmitrijs2005/gophupload/internal/progress"
	"github.com/dmitrijs2005/gophupload/internal/resultlog"
	"github.com/dmitrijs2005/gophupload/internal/upload"
	"github.com/dustin/go-humanize"
)

// Exit codes returned by Run.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

type App struct {
	config     *config.Config
	controller *upload.Controller
	log        *resultlog.Log
	logger     logging.Logger
	server     *url.URL
	stdin      io.Reader
	out        io.Writer
	inFlight   atomic.Int64
	reports    sync.WaitGroup
}

// NewApp wires the upload controller with the session log and a progress bar
// drawn on stderr.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	return newApp(c, logger, progress.NewBar(os.Stderr), os.Stdin, os.Stdout)
}

func newApp(c *config.Config, logger logging.Logger, ind upload.Indicator, stdin io.Reader, out io.Writer) (*App, error) {
	server, err := url.Parse(c.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}

	target := upload.Target{
		ApplicationID: c.ApplicationID,
		WorkspaceID:   c.WorkspaceID,
		BasePath:      c.LinkBasePath,
	}
	log := resultlog.New()

	ctl, err := upload.NewController(c.ServerURL, target,
		upload.WithIndicator(ind),
		upload.WithRenderer(resultlog.NewRenderer(log, target)),
		upload.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		config:     c,
		controller: ctl,
		log:        log,
		logger:     logger,
		server:     server,
		stdin:      stdin,
		out:        out,
	}, nil
}

// Run submits the form described by args once and prints the result, or
// starts the REPL in interactive mode. It returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if a.config.Interactive {
		a.logger.Info(ctx, "interactive session started", "endpoint", a.controller.Endpoint())
		runREPL(ctx, a, a.status, bufio.NewScanner(a.stdin), a.out)
		a.controller.Wait()
		a.reports.Wait()
		return ExitOK
	}
	return a.runOnce(ctx, args)
}

func (a *App) runOnce(ctx context.Context, args []string) int {
	u, err := a.submit(ctx, args, a.stdin)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return ExitUsage
	}

	o, _ := u.Wait(context.Background())

	_ = printEntries(a.out, a.log.Entries(), a.server)

	if _, failed := o.(upload.Failure); failed {
		return ExitFailed
	}
	return ExitOK
}

func (a *App) submit(ctx context.Context, args []string, stdin io.Reader) (*upload.Upload, error) {
	form, err := buildForm(args, a.config.FileField, a.config.UserID, stdin)
	if err != nil {
		return nil, err
	}

	u := a.controller.Submit(ctx, form)
	fmt.Fprintf(a.out, "upload %s: sending %d file(s), %s\n", u.ID, form.FileCount(), sizeText(form.ContentSize()))
	return u, nil
}

// Upload starts an upload without waiting for it. A summary line is printed
// when it completes; the full entry is available through ShowLog. Standard
// input holds the commands, so "-" is refused.
func (a *App) Upload(ctx context.Context, args []string) error {
	u, err := a.submit(ctx, args, nil)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	a.inFlight.Add(1)
	a.reports.Add(1)
	go func() {
		defer a.reports.Done()
		defer a.inFlight.Add(-1)
		o, _ := u.Wait(context.Background())
		fmt.Fprintf(a.out, "upload %s: %s\n", u.ID, summary(o))
	}()

	return nil
}

// Wait blocks until all uploads of the session have completed and their
// summaries are printed.
func (a *App) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.controller.Wait()
		a.reports.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShowLog prints the session log as text, or as HTML with "log html".
func (a *App) ShowLog(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "html" {
		if err := a.log.WriteHTML(a.out); err != nil {
			return err
		}
		_, err := fmt.Fprintln(a.out)
		return err
	}
	return printEntries(a.out, a.log.Entries(), a.server)
}

func (a *App) status() string {
	if n := a.inFlight.Load(); n > 0 {
		return fmt.Sprintf(" (%d in flight)", n)
	}
	return ""
}

func sizeText(n int64) string {
	if n == upload.SizeUnknown {
		return "unknown size"
	}
	return humanize.Bytes(uint64(n))
}

func summary(o upload.Outcome) string {
	switch o := o.(type) {
	case upload.Success:
		return fmt.Sprintf("stored %d file(s), quota left %s", len(o.Files), o.Quota)
	case upload.Failure:
		return o.String()
	}
	return "no outcome"
}
