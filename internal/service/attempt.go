package service

import (
	"log/slog"
)

// attempt runs a non-critical side effect and logs its failure. Side effects
// wrapped here (folder routing, document records, notifications) never abort
// the submission pipeline; only the submission record itself is required to
// succeed.
func attempt(op string, fn func() error, attrs ...any) {
	err := fn()
	if err != nil {
		slog.Error(op+" failed", append([]any{"error", err}, attrs...)...)
	}
}
