package audit

import (
	"errors"
	"fmt"
)

var (
	ErrAuditNotFound     = errors.New("audit result not found")
	ErrConfiguration     = errors.New("engine configuration error")
	ErrBatchTooLarge     = errors.New("batch exceeds the maximum number of submissions")
	ErrEmptyBatch        = errors.New("batch must contain at least one submission")
	ErrInvalidComparison = errors.New("comparison requires two different audit results")
	ErrExportFailed      = errors.New("failed to export audit result")
)

// ConfigurationError reports a calibration defect: a missing breakpoint, target or
// pillar table entry. It is an internal error, never the submitter's fault.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("engine configuration %s: %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
