package config

import "time"

const (
	// MaxCourseNameLength is the maximum length for course names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxCourseNameLength = 255

	// MaxAssignmentTitleLength is the maximum length for assignment titles.
	// Same as course names for consistency.
	MaxAssignmentTitleLength = 255

	// MaxSubmissionContentLength caps submission bodies. Submissions are
	// plain text answers, not file uploads.
	MaxSubmissionContentLength = 100000

	// RequestTimeout bounds the whole handling of one inbound request,
	// outbound retries included.
	RequestTimeout = 30 * time.Second
)
