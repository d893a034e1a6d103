package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultProgressStatus is shown when the server reports no status text
const DefaultProgressStatus = "Processing..."

// ProgressMax is the progress value that marks the end of generation
const ProgressMax = 100

// ProgressSnapshot is one answer of the progress endpoint
type ProgressSnapshot struct {
	Progress float64 `json:"progress"`
	Status   string  `json:"status,omitempty"`
}

// Label returns the status line, e.g. "Encoding (45%)"
func (p ProgressSnapshot) Label() string {
	status := p.Status
	if status == "" {
		status = DefaultProgressStatus
	}
	return fmt.Sprintf("%s (%d%%)", status, int(math.Round(p.Progress)))
}

// Done reports whether the server considers generation complete
func (p ProgressSnapshot) Done() bool {
	return p.Progress >= ProgressMax
}

// Submission represents a single generate request and its outcome
type Submission struct {
	ID         string
	Topic      string
	Status     SubmissionStatus
	Progress   float64 // 0 to 100
	LastError  string  // last error message if any
	OutputPath string  // path of the saved video
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewSubmission creates a submission in the Submitting state
func NewSubmission(topic string) *Submission {
	return &Submission{
		ID:        "sub-" + uuid.NewString(),
		Topic:     topic,
		Status:    SubmissionSubmitting,
		StartedAt: time.Now(),
	}
}

// Succeed marks the submission as succeeded with the saved file path
func (s *Submission) Succeed(outputPath string) {
	s.Status = SubmissionSucceeded
	s.OutputPath = outputPath
	s.FinishedAt = time.Now()
}

// Fail marks the submission as failed with the given message
func (s *Submission) Fail(message string) {
	s.Status = SubmissionFailed
	s.LastError = message
	s.FinishedAt = time.Now()
}

// Elapsed returns how long the submission ran, or has been running
func (s *Submission) Elapsed() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
