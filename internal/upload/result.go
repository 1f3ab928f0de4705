package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status values carried by Failure.
const (
	StatusError      = "error"
	StatusParseError = "parsererror"
)

// StoredFile is one file the server stored.
type StoredFile struct {
	GUID     string `json:"guid"`
	FileName string `json:"fileName"`
}

// Outcome is the result of one completed request: Success or Failure.
type Outcome interface {
	outcome()
}

// Success holds the remaining quota, as the server reported it, and the
// stored files in server order.
type Success struct {
	Quota string
	Files []StoredFile
}

// Failure is any non-successful end of a request. Err wraps one of
// ErrTransport, ErrRejected or ErrMalformedResponse.
type Failure struct {
	Status string
	Detail string
	Err    error
}

func (Success) outcome() {}
func (Failure) outcome() {}

func (f Failure) String() string {
	return f.Status + ": " + f.Detail
}

type response struct {
	DiskQuota json.RawMessage `json:"diskQuota"`
	Result    json.RawMessage `json:"result"`
}

// Decode converts a 2xx response body into a Success. Any shape mismatch is
// reported as an error wrapping ErrMalformedResponse.
func Decode(body []byte) (Success, error) {
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return Success{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	quota, err := quotaText(r.DiskQuota)
	if err != nil {
		return Success{}, err
	}

	if isAbsent(r.Result) {
		return Success{}, fmt.Errorf("%w: missing result", ErrMalformedResponse)
	}
	var files []StoredFile
	if err := json.Unmarshal(r.Result, &files); err != nil {
		return Success{}, fmt.Errorf("%w: result: %v", ErrMalformedResponse, err)
	}
	for i, f := range files {
		if f.GUID == "" {
			return Success{}, fmt.Errorf("%w: result[%d]: missing guid", ErrMalformedResponse, i)
		}
	}
	if files == nil {
		files = []StoredFile{}
	}

	return Success{Quota: quota, Files: files}, nil
}

// quotaText renders diskQuota literally: strings unquoted, numbers as
// written by the server. Any other JSON type is malformed.
func quotaText(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", fmt.Errorf("%w: missing diskQuota", ErrMalformedResponse)
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: diskQuota: %v", ErrMalformedResponse, err)
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw), nil
	default:
		return "", fmt.Errorf("%w: diskQuota must be a string or a number", ErrMalformedResponse)
	}
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
