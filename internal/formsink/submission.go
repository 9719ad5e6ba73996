package formsink

import "time"

// Submission is one received contact-form post.
type Submission struct {
	ID         string            `json:"id"`
	ReceivedAt time.Time         `json:"received_at"`
	Fields     map[string]string `json:"fields"`
}

// Processor consumes accepted submissions.
type Processor interface {
	HandleSubmission(Submission) error
}

// ProcessorFunc adapts a function into a Processor.
type ProcessorFunc func(Submission) error

// HandleSubmission executes f(s).
func (f ProcessorFunc) HandleSubmission(s Submission) error {
	if f == nil {
		return nil
	}
	return f(s)
}

// Logger records sink status information. The logbook satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type healthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type submitResponse struct {
	Status     string    `json:"status"`
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}
