package ingestion

import (
	"errors"
	"fmt"
)

// UploadRejectedError is returned when an upload fails a guard before extraction
type UploadRejectedError struct {
	FileName string
	Message  string
}

func (e *UploadRejectedError) Error() string {
	return e.Message
}

// InsufficientTextError is returned when extraction succeeds but yields too little text
type InsufficientTextError struct {
	FileName string
	Length   int
	Minimum  int
}

func (e *InsufficientTextError) Error() string {
	return fmt.Sprintf("Could not extract text from file or text too short (%d < %d characters)", e.Length, e.Minimum)
}

// IsRejected reports whether err is or wraps an UploadRejectedError
func IsRejected(err error) bool {
	var target *UploadRejectedError
	return errors.As(err, &target)
}

// IsInsufficientText reports whether err is or wraps an InsufficientTextError
func IsInsufficientText(err error) bool {
	var target *InsufficientTextError
	return errors.As(err, &target)
}
