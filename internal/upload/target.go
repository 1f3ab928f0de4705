package upload

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBasePath is the path segment bins are served under.
const DefaultBasePath = "/bin"

// Target identifies where uploads go: an application and one of its
// workspaces. Both ids are opaque tokens.
type Target struct {
	ApplicationID string
	WorkspaceID   string
	// BasePath defaults to DefaultBasePath when empty.
	BasePath string
}

func (t Target) Validate() error {
	if t.ApplicationID == "" {
		return fmt.Errorf("%w: empty application id", ErrInvalidTarget)
	}
	if t.WorkspaceID == "" {
		return fmt.Errorf("%w: empty workspace id", ErrInvalidTarget)
	}
	return nil
}

func (t Target) base() string {
	b := strings.TrimRight(t.BasePath, "/")
	if t.BasePath == "" {
		b = DefaultBasePath
	}
	return b
}

// Path is the upload endpoint path, e.g. /bin/mytestapp/1003452.
func (t Target) Path() string {
	return t.base() + "/" + url.PathEscape(t.ApplicationID) + "/" + url.PathEscape(t.WorkspaceID)
}

// FileLink is the href of a stored file, e.g. /bin/mytestapp/1003452/a1.
func (t Target) FileLink(guid string) string {
	return t.Path() + "/" + url.PathEscape(guid)
}
