package schema

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownBlockType is returned when a block type has no schema.
// It indicates a broken document definition rather than invalid user input.
var ErrUnknownBlockType = errors.New("unknown block type")

// Issue describes a single failed constraint of block data.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError is a structured validation failure of block data.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "invalid data: " + strings.Join(parts, "; ")
}

// BlockError is a validation failure attached to a block.
type BlockError struct {
	Type string
	Err  error
}

func (e BlockError) Error() string {
	return e.Type + ": " + e.Err.Error()
}

func (e BlockError) Unwrap() error { return e.Err }

// Issues returns the structured issues of the failure, if any.
func (e BlockError) Issues() []Issue {
	var verr *ValidationError
	if errors.As(e.Err, &verr) {
		return verr.Issues
	}
	return []Issue{{Message: e.Err.Error()}}
}

func (e BlockError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string  `json:"type"`
		Error  string  `json:"error"`
		Issues []Issue `json:"issues"`
	}{
		Type:   e.Type,
		Error:  e.Err.Error(),
		Issues: e.Issues(),
	})
}

// Errors maps block ids to their validation failures.
type Errors map[string]BlockError

// Clone returns a copy of the map.
func (e Errors) Clone() Errors {
	result := make(Errors, len(e))
	for k, v := range e {
		result[k] = v
	}
	return result
}
