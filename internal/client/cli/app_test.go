package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophupload/internal/client/config"
	"github.com/dmitrijs2005/gophupload/internal/logging"
	"github.com/dmitrijs2005/gophupload/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written to by background upload reports.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

type nopIndicator struct{}

func (nopIndicator) Show()   {}
func (nopIndicator) Set(int) {}
func (nopIndicator) Hide()   {}

func binServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("userId") != "1" {
			http.Error(w, "Not authorized", http.StatusForbidden)
			return
		}
		_, fh, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file expected", http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"diskQuota":1024,"result":[{"guid":"g1","fileName":%q}]}`, fh.Filename)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(serverURL string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerURL = serverURL
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, stdin string) (*App, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	app, err := newApp(cfg, logging.Discard(), nopIndicator{}, strings.NewReader(stdin), out)
	require.NoError(t, err)
	return app, out
}

func tempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_OneShotSuccess(t *testing.T) {
	ts := binServer(t)
	cfg := testConfig(ts.URL)
	cfg.UserID = "1"
	app, out := newTestApp(t, cfg, "")

	code := app.Run(context.Background(), []string{tempFile(t, "x.txt", "hello")})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "sending 1 file(s), 5 B")
	assert.Contains(t, out.String(), "[success] Successfully added file(s). Quota left: 1024\n")
	assert.Contains(t, out.String(), "    x.txt  "+ts.URL+"/bin/mytestapp/1003452/g1\n")
}

func TestRun_OneShotRejected(t *testing.T) {
	ts := binServer(t)
	app, out := newTestApp(t, testConfig(ts.URL), "")

	code := app.Run(context.Background(), []string{tempFile(t, "x.txt", "hello")})

	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, out.String(), "[error] error: Forbidden\n")
}

func TestRun_OneShotStdin(t *testing.T) {
	ts := binServer(t)
	cfg := testConfig(ts.URL)
	cfg.UserID = "1"
	app, out := newTestApp(t, cfg, "from a pipe")

	code := app.Run(context.Background(), []string{"-"})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "unknown size")
	assert.Contains(t, out.String(), "    stdin  ")
}

func TestRun_OneShotBadArgument(t *testing.T) {
	app, out := newTestApp(t, testConfig("http://127.0.0.1:1"), "")

	code := app.Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})

	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, out.String(), "missing")
	assert.Equal(t, 0, app.log.Len())
}

func TestRun_InteractiveOverlappingUploads(t *testing.T) {
	ts := binServer(t)
	cfg := testConfig(ts.URL)
	cfg.Interactive = true

	a := tempFile(t, "a.txt", "aaa")
	b := tempFile(t, "b.txt", "bbb")
	script := strings.Join([]string{
		"upload userId=1 " + a,
		"upload userId=1 " + b,
		"upload " + a,
		"wait",
		"log",
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, cfg, script)
	code := app.Run(context.Background(), nil)

	assert.Equal(t, ExitOK, code)
	entries := app.log.Entries()
	require.Len(t, entries, 3)

	var success, failed int
	for _, e := range entries {
		switch e.Kind {
		case "success":
			success++
		case "error":
			failed++
			assert.Equal(t, "error: Forbidden", e.Text)
		}
	}
	assert.Equal(t, 2, success)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "Bye!")
	assert.Equal(t, 2, strings.Count(out.String(), ": stored 1 file(s), quota left 1024\n"))
	assert.Equal(t, 1, strings.Count(out.String(), ": error: Forbidden\n"))
}

func TestRun_InteractiveRefusesStdin(t *testing.T) {
	ts := binServer(t)
	cfg := testConfig(ts.URL)
	cfg.Interactive = true
	cfg.UserID = "1"

	script := "upload -\nupload note=x upload=@-\nlog\nexit\n"
	app, out := newTestApp(t, cfg, script)

	done := make(chan int, 1)
	go func() { done <- app.Run(context.Background(), nil) }()

	select {
	case code := <-done:
		assert.Equal(t, ExitOK, code)
	case <-time.After(5 * time.Second):
		t.Fatal("interactive session did not end on exit")
	}

	assert.Equal(t, 2, strings.Count(out.String(), errStdinUnavailable.Error()+"\n"))
	assert.Contains(t, out.String(), "Bye!")
	assert.Equal(t, 0, app.log.Len())
}

func TestRun_InteractiveExitPrintsPendingSummaries(t *testing.T) {
	ts := binServer(t)
	cfg := testConfig(ts.URL)
	cfg.Interactive = true
	cfg.UserID = "1"

	script := "upload " + tempFile(t, "a.txt", "aaa") + "\nexit\n"
	app, out := newTestApp(t, cfg, script)

	require.Equal(t, ExitOK, app.Run(context.Background(), nil))

	assert.Contains(t, out.String(), ": stored 1 file(s), quota left 1024\n")
	assert.Equal(t, "", app.status())
}

func TestShowLog_HTML(t *testing.T) {
	ts := binServer(t)
	cfg := testConfig(ts.URL)
	cfg.UserID = "1"
	app, out := newTestApp(t, cfg, "")

	require.Equal(t, ExitOK, app.Run(context.Background(), []string{tempFile(t, "x.txt", "x")}))
	require.NoError(t, app.ShowLog(context.Background(), []string{"html"}))

	assert.Contains(t, out.String(), `<a target="_blank" href="/bin/mytestapp/1003452/g1">x.txt</a>`)
}

func TestWait_NoUploads(t *testing.T) {
	app, _ := newTestApp(t, testConfig("http://127.0.0.1:1"), "")
	assert.NoError(t, app.Wait(context.Background()))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "stored 2 file(s), quota left 5GB",
		summary(upload.Success{Quota: "5GB", Files: make([]upload.StoredFile, 2)}))
	assert.Equal(t, "error: Not Found", summary(upload.Failure{Status: "error", Detail: "Not Found"}))
	assert.Equal(t, "no outcome", summary(nil))
}

func TestNewApp_InvalidTarget(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.WorkspaceID = ""
	_, err := newApp(cfg, logging.Discard(), nopIndicator{}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, upload.ErrInvalidTarget)
}
