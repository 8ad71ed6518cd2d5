package submit

import (
	"errors"
	"fmt"
)

// ErrNoEndpoint is returned when no webhook URL is configured.
// Callers treat it as "submission disabled", not a failure.
var ErrNoEndpoint = errors.New("no webhook endpoint configured")

// ErrStatus is returned when the webhook answers with a non-2xx status.
type ErrStatus struct {
	Code int
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.Code)
}
