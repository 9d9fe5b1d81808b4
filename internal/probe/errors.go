package probe

import "errors"

// Probe failure categories. Probe errors wrap one of these so callers can
// classify a failure with errors.Is.
var (
	ErrToolUnavailable = errors.New("tool unavailable")
	ErrTimeout         = errors.New("timeout")
	ErrParse           = errors.New("unexpected output")
	ErrTransfer        = errors.New("transfer failed")
)

// Kind returns a short label for the failure category of err
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrToolUnavailable):
		return "tool_unavailable"
	case errors.Is(err, ErrParse):
		return "parse_failure"
	case errors.Is(err, ErrTransfer):
		return "transfer_failure"
	default:
		return "error"
	}
}
