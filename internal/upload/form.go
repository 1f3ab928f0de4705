package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"
)

// SizeUnknown marks a file source whose length cannot be known up front,
// such as standard input. A form holding one cannot report progress.
const SizeUnknown int64 = -1

// Field is one form field. Text fields carry Value; file fields carry File.
type Field struct {
	Name  string
	Value string
	File  *FileSource
}

// FileSource describes file content to be streamed into a part.
type FileSource struct {
	// FileName is the filename parameter of the part.
	FileName string
	// Size in bytes, or SizeUnknown.
	Size int64
	open func() (io.ReadCloser, error)
}

// Form is an ordered set of fields, the equivalent of an HTML form. It is
// read at submit time only; later edits do not affect submitted uploads.
type Form struct {
	mu     sync.Mutex
	fields []Field
}

func NewForm() *Form {
	return &Form{}
}

// AddField appends a text field.
func (f *Form) AddField(name, value string) {
	f.add(Field{Name: name, Value: value})
}

// AddFile appends a file field backed by the file at path. The file is
// stat'ed now and opened only while the request body is streamed.
func (f *Form) AddFile(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("add file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("add file %s: is a directory", path)
	}

	f.add(Field{Name: name, File: &FileSource{
		FileName: filepath.Base(path),
		Size:     info.Size(),
		open:     func() (io.ReadCloser, error) { return os.Open(path) },
	}})
	return nil
}

// AddReader appends a file field streamed from r. Pass SizeUnknown when the
// length is not known. r is consumed by the first submit that includes it.
func (f *Form) AddReader(name, fileName string, r io.Reader, size int64) {
	if size < 0 {
		size = SizeUnknown
	}
	f.add(Field{Name: name, File: &FileSource{
		FileName: fileName,
		Size:     size,
		open:     func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}})
}

func (f *Form) add(fl Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = append(f.fields, fl)
}

// Fields returns a copy of the current fields in order.
func (f *Form) Fields() []Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// FileCount is the number of file fields.
func (f *Form) FileCount() int {
	n := 0
	for _, fl := range f.Fields() {
		if fl.File != nil {
			n++
		}
	}
	return n
}

// ContentSize is the sum of file sizes, or SizeUnknown if any is unknown.
func (f *Form) ContentSize() int64 {
	var total int64
	for _, fl := range f.Fields() {
		if fl.File == nil {
			continue
		}
		if fl.File.Size == SizeUnknown {
			return SizeUnknown
		}
		total += fl.File.Size
	}
	return total
}

// payload is a snapshot of a form encoded as multipart/form-data.
type payload struct {
	contentType string
	// length of the encoded body, or SizeUnknown.
	length int64
	body   io.ReadCloser
}

// newPayload encodes fields lazily: the body is produced by a goroutine
// writing into a pipe while the transport reads it. The length is computed
// up front by encoding the same parts, with the same boundary, into a
// counter and adding the declared file sizes.
func newPayload(fields []Field) *payload {
	boundary := multipart.NewWriter(io.Discard).Boundary()

	mw := multipart.NewWriter(io.Discard)
	_ = mw.SetBoundary(boundary)

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(writeParts(pw, fields, boundary))
	}()

	return &payload{
		contentType: mw.FormDataContentType(),
		length:      measure(fields, boundary),
		body:        pr,
	}
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

func measure(fields []Field, boundary string) int64 {
	cw := &countingWriter{}
	mw := multipart.NewWriter(cw)
	_ = mw.SetBoundary(boundary)

	for _, fl := range fields {
		if fl.File == nil {
			_ = mw.WriteField(fl.Name, fl.Value)
			continue
		}
		if fl.File.Size == SizeUnknown {
			return SizeUnknown
		}
		_, _ = mw.CreateFormFile(fl.Name, fl.File.FileName)
		cw.n += fl.File.Size
	}
	_ = mw.Close()

	return cw.n
}

func writeParts(w io.Writer, fields []Field, boundary string) error {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(boundary); err != nil {
		return err
	}

	for _, fl := range fields {
		if fl.File == nil {
			if err := mw.WriteField(fl.Name, fl.Value); err != nil {
				return err
			}
			continue
		}

		part, err := mw.CreateFormFile(fl.Name, fl.File.FileName)
		if err != nil {
			return err
		}
		if err := copyFile(part, fl.File); err != nil {
			return err
		}
	}

	return mw.Close()
}

func copyFile(dst io.Writer, src *FileSource) error {
	rc, err := src.open()
	if err != nil {
		return fmt.Errorf("open %s: %w", src.FileName, err)
	}
	defer rc.Close()

	if _, err := io.Copy(dst, rc); err != nil {
		return fmt.Errorf("read %s: %w", src.FileName, err)
	}
	return nil
}
