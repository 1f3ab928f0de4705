package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/dmitrijs2005/gophupload/internal/resultlog"
)

// printEntries writes the log as text, one line per entry followed by its
// file links resolved against the server URL:
//
//	[success] Successfully added file(s). Quota left: 5GB
//	    x.txt  http://127.0.0.1:8090/bin/mytestapp/1003452/a1
//	[error] error: Not Found
func printEntries(w io.Writer, entries []resultlog.Entry, server *url.URL) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", e.Kind, e.Text); err != nil {
			return err
		}
		for _, l := range e.Links {
			if _, err := fmt.Fprintf(w, "    %s  %s\n", l.Label, resolve(server, l.Href)); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolve(server *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || server == nil {
		return href
	}
	return server.ResolveReference(ref).String()
}
