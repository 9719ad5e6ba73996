package form

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const requestTimeout = 15 * time.Second

// Field is one submitted form value. Order is preserved in the encoded body.
type Field struct {
	Name  string
	Value string
}

// Submitter posts form submissions to a fixed endpoint. Each submission is
// exactly one attempt: no retry, no backoff, no cancellation of an in-flight
// request.
//
// The generation counter orders submissions so that a delayed feedback reset
// from an earlier submission cannot clobber the state of a later one.
type Submitter struct {
	endpoint string
	client   *http.Client
	gen      int
}

// NewSubmitter creates a submitter for the given endpoint URL.
func NewSubmitter(endpoint string) *Submitter {
	return &Submitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Endpoint returns the destination URL.
func (s *Submitter) Endpoint() string {
	return s.endpoint
}

// Begin starts a new submission and returns its generation token. Feedback
// resets scheduled for an older generation must be discarded.
func (s *Submitter) Begin() int {
	s.gen++
	return s.gen
}

// Current reports whether gen is the most recent submission.
func (s *Submitter) Current(gen int) bool {
	return gen == s.gen
}

// Submit encodes the fields as multipart form data and posts them with an
// Accept: application/json header so the endpoint answers with a structured
// response instead of a redirect. The response body is not parsed; any non-2xx
// status and any transport failure are reported uniformly as an error.
func (s *Submitter) Submit(ctx context.Context, fields []Field) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range fields {
		if err := writer.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("form: encode field %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("form: finalize body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return fmt.Errorf("form: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("form: submit: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("form: endpoint answered %s", resp.Status)
	}
	return nil
}
