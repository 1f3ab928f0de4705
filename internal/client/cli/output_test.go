package cli

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/gophupload/internal/resultlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintEntries(t *testing.T) {
	server, err := url.Parse("http://127.0.0.1:8090")
	require.NoError(t, err)

	entries := []resultlog.Entry{
		{
			Kind: resultlog.KindSuccess,
			Text: "Successfully added file(s). Quota left: 5GB",
			Links: []resultlog.Link{
				{Href: "/bin/mytestapp/1003452/a1", Label: "x.txt"},
				{Href: "/bin/mytestapp/1003452/a2", Label: "y.txt"},
			},
		},
		{Kind: resultlog.KindError, Text: "error: Not Found"},
	}

	var buf bytes.Buffer
	require.NoError(t, printEntries(&buf, entries, server))

	want := "[success] Successfully added file(s). Quota left: 5GB\n" +
		"    x.txt  http://127.0.0.1:8090/bin/mytestapp/1003452/a1\n" +
		"    y.txt  http://127.0.0.1:8090/bin/mytestapp/1003452/a2\n" +
		"[error] error: Not Found\n"
	assert.Equal(t, want, buf.String())
}

func TestResolve_NilServerKeepsHref(t *testing.T) {
	assert.Equal(t, "/bin/a/1/g", resolve(nil, "/bin/a/1/g"))
}
