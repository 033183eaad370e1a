package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is reports whether err matches reference directly, through wrapping or through a Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

// WithReason attaches a user-facing reason that survives further wrapping.
func WithReason(err error, reason string) error {
	if err == nil || reason == "" {
		return err
	}
	return cr.WithHint(err, reason)
}

// Reason returns the most recently attached user-facing reason, or fallback.
func Reason(err error, fallback string) string {
	hints := cr.GetAllHints(err)
	if len(hints) == 0 {
		return fallback
	}
	return hints[len(hints)-1]
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
