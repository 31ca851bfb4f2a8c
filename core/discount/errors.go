package discount

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"bundle-manager/core/graphql"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrNotFound is returned by lookups when no remote discount carries the code.
var ErrNotFound = errors.New("discount not found")

// TransportError means the platform could not be reached or answered with a non-2xx status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// GraphError carries the first top-level GraphQL error message.
type GraphError struct {
	Message string
}

func (e *GraphError) Error() string { return e.Message }

// FieldError is one platform userErrors entry.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError is returned when a mutation answers with a non-empty userErrors list.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := lo.Map(e.Fields, func(f FieldError, _ int) string {
		if f.Field == "" {
			return f.Message
		}
		return f.Field + ": " + f.Message
	})
	return strings.Join(parts, ", ")
}

// IncompatibleKindError is returned when a code exists remotely under a non-Basic variant.
// Such records are never mutated.
type IncompatibleKindError struct {
	Code string
	ID   string
	Kind Kind
}

func (e *IncompatibleKindError) Error() string {
	return fmt.Sprintf("discount code %s exists as an incompatible %s discount", e.Code, e.Kind)
}

// fieldPath decodes userErrors.field, which the platform sends as a path array,
// a bare string or null.
type fieldPath []string

func (f *fieldPath) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = fieldPath{s}
		return nil
	}
	var parts []string
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	*f = parts
	return nil
}

type userError struct {
	Field   fieldPath `json:"field"`
	Message string    `json:"message"`
}

// checkResponse maps a client call result onto the error taxonomy.
func checkResponse(resp *graphql.Response, err error) error {
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp == nil {
		return &TransportError{Err: errors.New("empty response")}
	}
	if len(resp.Errors) > 0 {
		return &GraphError{Message: resp.Errors[0].Message}
	}
	return nil
}

func validationError(errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: lo.Map(errs, func(u userError, _ int) FieldError {
		return FieldError{Field: strings.Join(u.Field, "."), Message: u.Message}
	})}
}
