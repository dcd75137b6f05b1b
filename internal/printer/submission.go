package printer

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"strings"
)

// ErrMissingField is returned when a document lacks a field the server requires.
var ErrMissingField = errors.New("missing required field")

// Submission is one POST body addressed to a printer endpoint. It exists only
// for the duration of a single request.
type Submission struct {
	Kind        string
	Path        string
	ContentType string
	Body        []byte
}

// Size returns the encoded body length in bytes.
func (s Submission) Size() int {
	return len(s.Body)
}

// Document is anything that can be turned into a Submission.
type Document interface {
	Submission() (Submission, error)
}

// FormSubmission encodes values as application/x-www-form-urlencoded.
func FormSubmission(kind, path string, values url.Values) Submission {
	return Submission{
		Kind:        kind,
		Path:        path,
		ContentType: "application/x-www-form-urlencoded",
		Body:        []byte(values.Encode()),
	}
}

// Part is one field of a multipart body. Parts with a Filename are written as
// file parts.
type Part struct {
	Name     string
	Value    string
	Filename string
	Data     []byte
}

// MultipartSubmission encodes parts as multipart/form-data in order.
func MultipartSubmission(kind, path string, parts []Part) (Submission, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, part := range parts {
		if part.Filename != "" {
			fw, err := w.CreateFormFile(part.Name, part.Filename)
			if err != nil {
				return Submission{}, fmt.Errorf("create file part %q: %w", part.Name, err)
			}
			if _, err := fw.Write(part.Data); err != nil {
				return Submission{}, fmt.Errorf("write file part %q: %w", part.Name, err)
			}
			continue
		}
		if err := w.WriteField(part.Name, part.Value); err != nil {
			return Submission{}, fmt.Errorf("write field %q: %w", part.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return Submission{}, fmt.Errorf("close multipart: %w", err)
	}
	return Submission{
		Kind:        kind,
		Path:        path,
		ContentType: w.FormDataContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// checkbox encodes a boolean the way an HTML checkbox inside a multipart form
// would: the server treats any non-empty value as true.
func checkbox(v bool) string {
	if v {
		return "on"
	}
	return ""
}
