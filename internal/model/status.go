package model

// SubmissionStatus represents the life cycle state of one generate request
type SubmissionStatus string

const (
	// SubmissionIdle means no request has been sent yet
	SubmissionIdle SubmissionStatus = "Idle"

	// SubmissionSubmitting means the generate request is in flight
	SubmissionSubmitting SubmissionStatus = "Submitting"

	// SubmissionSucceeded means the video was received and saved
	SubmissionSucceeded SubmissionStatus = "Succeeded"

	// SubmissionFailed means the request ended with an error
	SubmissionFailed SubmissionStatus = "Failed"
)

// String returns the string representation of SubmissionStatus
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsActive returns true while the generate request is in flight
func (s SubmissionStatus) IsActive() bool {
	return s == SubmissionSubmitting
}

// IsFinished returns true if the submission settled (succeeded or failed)
func (s SubmissionStatus) IsFinished() bool {
	return s == SubmissionSucceeded || s == SubmissionFailed
}

// Severity is the visual kind of a notification banner
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}
