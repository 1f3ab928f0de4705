package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophupload/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Renderer consumes completed outcomes. The controller calls Render exactly
// once per submitted upload, possibly from several goroutines at once.
type Renderer interface {
	Render(o Outcome)
}

type nopRenderer struct{}

func (nopRenderer) Render(Outcome) {}

type Option func(*Controller)

// WithHTTPClient sets the client used for uploads. No timeout is imposed
// by the controller itself.
func WithHTTPClient(c *http.Client) Option {
	return func(ctl *Controller) { ctl.client = c }
}

// WithIndicator injects the shared progress display.
func WithIndicator(ind Indicator) Option {
	return func(ctl *Controller) { ctl.indicator = ind }
}

// WithRenderer injects the shared result log renderer.
func WithRenderer(r Renderer) Option {
	return func(ctl *Controller) { ctl.renderer = r }
}

func WithLogger(l logging.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(ctl *Controller) { ctl.tracer = t }
}

// Controller submits forms to one Target.
type Controller struct {
	endpoint  string
	target    Target
	client    *http.Client
	indicator Indicator
	renderer  Renderer
	logger    logging.Logger
	tracer    trace.Tracer

	wg sync.WaitGroup
}

// NewController builds a controller posting to serverURL + target.Path().
func NewController(serverURL string, target Target, opts ...Option) (*Controller, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", serverURL)
	}

	c := &Controller{
		endpoint:  strings.TrimRight(u.String(), "/") + target.Path(),
		target:    target,
		client:    http.DefaultClient,
		indicator: nopIndicator{},
		renderer:  nopRenderer{},
		logger:    logging.Discard(),
		tracer:    otel.Tracer("github.com/dmitrijs2005/gophupload/internal/upload"),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint is the absolute URL uploads are posted to.
func (c *Controller) Endpoint() string {
	return c.endpoint
}

func (c *Controller) Target() Target {
	return c.target
}

// Upload is a submitted request. It is both a future for the Outcome and the
// source of the request's progress events.
type Upload struct {
	ID string

	progress chan Event
	done     chan struct{}
	outcome  Outcome
}

// Progress delivers the request's events in transfer order and is closed when
// the request ends. If the receiver lags, older events are dropped; the order
// is kept and the latest event is always delivered.
func (u *Upload) Progress() <-chan Event {
	return u.progress
}

// Done is closed once the outcome has been rendered.
func (u *Upload) Done() <-chan struct{} {
	return u.done
}

// Wait blocks until the outcome is available or ctx is done.
func (u *Upload) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-u.done:
		return u.outcome, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit snapshots form and starts the upload in the background. It never
// blocks on the network and may be called again while earlier uploads are
// still in flight. Cancelling ctx aborts the transfer, which is then reported
// as a transport failure.
func (c *Controller) Submit(ctx context.Context, form *Form) *Upload {
	fields := form.Fields()
	p := newPayload(fields)
	t := newTracker(c.indicator, p.length)

	u := &Upload{
		ID:       uuid.NewString(),
		progress: t.events,
		done:     make(chan struct{}),
	}

	c.wg.Add(1)
	go c.run(ctx, u, p, t, len(fields))

	return u
}

// Wait blocks until every submitted upload has been rendered.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) run(ctx context.Context, u *Upload, p *payload, t *tracker, nFields int) {
	defer c.wg.Done()
	defer close(u.done)

	ctx, span := c.tracer.Start(ctx, "upload.Submit", trace.WithAttributes(
		attribute.String("upload.id", u.ID),
		attribute.String("upload.endpoint", c.endpoint),
		attribute.Int64("upload.size", p.length),
	))
	defer span.End()

	log := c.logger.With("upload_id", u.ID)
	log.Info(ctx, "upload started", "endpoint", c.endpoint, "fields", nFields, "size", p.length)

	outcome := c.transfer(ctx, p, t, log)

	switch o := outcome.(type) {
	case Success:
		span.SetAttributes(attribute.Int("upload.files", len(o.Files)))
		log.Info(ctx, "upload finished", "files", len(o.Files), "quota", o.Quota)
	case Failure:
		span.RecordError(o.Err)
		span.SetStatus(codes.Error, o.String())
		log.Warn(ctx, "upload failed", "status", o.Status, "detail", o.Detail, "err", o.Err)
	}

	u.outcome = outcome
	c.renderer.Render(outcome)
}

func (c *Controller) transfer(ctx context.Context, p *payload, t *tracker, log logging.Logger) Outcome {
	t.start()
	defer t.finish()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, t.wrap(p.body))
	if err != nil {
		_ = p.body.Close()
		return transportFailure(err)
	}
	req.Header.Set("Content-Type", p.contentType)
	// SizeUnknown (-1) makes the transport fall back to chunked encoding.
	req.ContentLength = p.length

	resp, err := c.client.Do(req)
	if err != nil {
		return transportFailure(err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response received", "status", resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Failure{
			Status: StatusError,
			Detail: statusText(resp),
			Err:    fmt.Errorf("%w: %s", ErrRejected, resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(err)
	}

	s, err := Decode(body)
	if err != nil {
		return Failure{Status: StatusParseError, Detail: err.Error(), Err: err}
	}
	return s
}

func transportFailure(err error) Failure {
	detail := err.Error()
	var uerr *url.Error
	if errors.As(err, &uerr) {
		detail = uerr.Err.Error()
	}
	return Failure{
		Status: StatusError,
		Detail: detail,
		Err:    fmt.Errorf("%w: %w", ErrTransport, err),
	}
}

// statusText is the reason phrase of the response, e.g. "Not Found".
func statusText(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	if t := http.StatusText(resp.StatusCode); t != "" {
		return t
	}
	return resp.Status
}
