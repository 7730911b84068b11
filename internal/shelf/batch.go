package shelf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codeshelf/codeshelf/internal/models"
)

// BatchMode selects how batch edits combine with existing names.
type BatchMode string

const (
	// BatchAppend unions the new names with the existing set.
	BatchAppend BatchMode = "append"
	// BatchReplace discards the existing set in favor of the new names.
	BatchReplace BatchMode = "replace"
)

// IsValid checks if the batch mode is valid
func (m BatchMode) IsValid() bool {
	switch m {
	case BatchAppend, BatchReplace:
		return true
	default:
		return false
	}
}

// ParseBatchMode parses a string into a BatchMode
func ParseBatchMode(s string) (BatchMode, error) {
	m := BatchMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: invalid batch mode %q (must be append or replace)", models.ErrValidation, s)
	}
	return m, nil
}

// BatchResult reports the outcome of a batch edit. Each project update
// is persisted independently, so some may succeed while others fail;
// Failed maps every failed project id to its error.
type BatchResult struct {
	Updated []*models.Project
	Failed  map[string]error
}

// Ok reports whether every project in the batch was updated.
func (r *BatchResult) Ok() bool {
	return len(r.Failed) == 0
}

// Err summarizes the failed ids as a single error, or nil when the
// whole batch succeeded.
func (r *BatchResult) Err() error {
	if r.Ok() {
		return nil
	}

	ids := make([]string, 0, len(r.Failed))
	for id := range r.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return fmt.Errorf("batch update failed for %d of %d project(s): %s",
		len(r.Failed), len(r.Failed)+len(r.Updated), strings.Join(ids, ", "))
}
