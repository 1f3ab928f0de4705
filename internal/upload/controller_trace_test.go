package upload_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/gophupload/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedController(t *testing.T, serverURL string) (*upload.Controller, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctl, err := upload.NewController(serverURL, target, upload.WithTracer(tp.Tracer("test")))
	require.NoError(t, err)
	return ctl, rec
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestSubmit_SpanOnSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"diskQuota":"5GB","result":[{"guid":"a1","fileName":"x.txt"},{"guid":"a2","fileName":"y.txt"}]}`)
	}))
	defer ts.Close()

	ctl, rec := tracedController(t, ts.URL)
	u := ctl.Submit(context.Background(), textForm("userId", "1"))
	wait(t, u)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	s := spans[0]

	assert.Equal(t, "upload.Submit", s.Name())
	assert.Equal(t, codes.Unset, s.Status().Code)

	attrs := spanAttrs(s)
	assert.Equal(t, u.ID, attrs["upload.id"].AsString())
	assert.Equal(t, ctl.Endpoint(), attrs["upload.endpoint"].AsString())
	assert.Positive(t, attrs["upload.size"].AsInt64())
	assert.Equal(t, int64(2), attrs["upload.files"].AsInt64())
}

func TestSubmit_SpanOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such bin", http.StatusNotFound)
	}))
	defer ts.Close()

	ctl, rec := tracedController(t, ts.URL)
	wait(t, ctl.Submit(context.Background(), textForm("userId", "1")))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	s := spans[0]

	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Equal(t, "error: Not Found", s.Status().Description)
	_, hasFiles := spanAttrs(s)["upload.files"]
	assert.False(t, hasFiles)

	var exceptions int
	for _, ev := range s.Events() {
		if ev.Name == "exception" {
			exceptions++
		}
	}
	assert.Equal(t, 1, exceptions)
}
