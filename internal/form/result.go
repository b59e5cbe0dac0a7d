package form

import (
	"fmt"

	apperrors "github.com/youruser/soulcard/internal/errors"
)

// Action names the user action a Result belongs to.
type Action string

const (
	ActionExport  Action = "export"
	ActionPublish Action = "publish"
)

// Status is the terminal state of an action.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped" // nothing to capture
	StatusBusy    Status = "busy"    // another action was in flight
	StatusFailed  Status = "failed"
)

// Result is what an action reports back to the presentation layer.
type Result struct {
	Action Action         `json:"action"`
	Status Status         `json:"status"`
	Kind   apperrors.Code `json:"kind,omitempty"`
	Notice string         `json:"notice,omitempty"`
	Err    error          `json:"-"`

	Filename  string `json:"filename,omitempty"`
	RecordID  string `json:"record_id,omitempty"`
	PublicURL string `json:"public_url,omitempty"`
}

// OK reports whether the action completed.
func (r Result) OK() bool {
	return r.Status == StatusDone
}

// Visible reports whether the result deserves a modal notice. Skipped and
// busy results are silent, as is a successful export.
func (r Result) Visible() bool {
	switch r.Status {
	case StatusFailed:
		return true
	case StatusDone:
		return r.Action == ActionPublish
	}
	return false
}

func failed(a Action, err error) Result {
	return Result{
		Action: a,
		Status: StatusFailed,
		Kind:   apperrors.GetCode(err),
		Notice: failureNotice(a, err),
		Err:    err,
	}
}

func failureNotice(a Action, err error) string {
	switch a {
	case ActionExport:
		return "An error occurred while generating the image. Please try again."
	default:
		return fmt.Sprintf("An error occurred while publishing.\n\n%s", apperrors.UserMessage(err))
	}
}

func publishedNotice(id, url string) string {
	return fmt.Sprintf("Card published successfully!\n\nAgent ID: %s\nImage URL: %s", id, url)
}
