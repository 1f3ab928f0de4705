package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophupload/internal/upload"
)

// userIDField is the text field the bin server expects before any file.
const userIDField = "userId"

// errStdinUnavailable is returned for "-" when standard input carries the
// REPL's commands.
var errStdinUnavailable = errors.New("stdin is the command stream; use a file path")

// buildForm turns command arguments into a form, in argument order:
//
//	path          file under fileField
//	@path         same, for paths containing '='
//	-             standard input under fileField (size unknown)
//	name=@path    file under name (name=@- for standard input)
//	name=value    text field
//
// A non-empty userID is prepended as the userId field. A nil stdin makes "-"
// an error. The form is not validated; an empty one is submitted as is.
func buildForm(args []string, fileField, userID string, stdin io.Reader) (*upload.Form, error) {
	form := upload.NewForm()
	if userID != "" {
		form.AddField(userIDField, userID)
	}

	for _, arg := range args {
		if path, ok := strings.CutPrefix(arg, "@"); ok {
			if err := addFile(form, fileField, path, stdin); err != nil {
				return nil, err
			}
			continue
		}

		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			if err := addFile(form, fileField, arg, stdin); err != nil {
				return nil, err
			}
			continue
		}

		if path, isFile := strings.CutPrefix(value, "@"); isFile {
			if err := addFile(form, name, path, stdin); err != nil {
				return nil, err
			}
			continue
		}
		form.AddField(name, value)
	}

	return form, nil
}

func addFile(form *upload.Form, field, path string, stdin io.Reader) error {
	if path == "-" {
		if stdin == nil {
			return errStdinUnavailable
		}
		form.AddReader(field, "stdin", stdin, upload.SizeUnknown)
		return nil
	}
	return form.AddFile(field, path)
}
