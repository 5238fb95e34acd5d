package kernel

import (
	"strings"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

const maxReferenceLength = 255

var ErrReferenceIsNotConstructed = errs.NewValueIsRequiredError(
	"reference must be created via NewReference or ReferenceFromString",
)

// Reference identifies a financial transaction outside of this system,
// e.g. a gateway charge id. Internally generated references are UUIDs.
type Reference struct {
	value string
}

func NewReference() Reference {
	return Reference{value: uuid.NewString()}
}

func ReferenceFromString(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, errs.NewValueIsRequiredError("reference")
	}
	if len(s) > maxReferenceLength {
		return Reference{}, errs.NewValueIsOutOfRangeError("reference length", len(s), 1, maxReferenceLength)
	}
	return Reference{value: s}, nil
}

func (r Reference) String() string {
	return r.value
}

func (r Reference) Validate() error {
	if r.value == "" {
		return ErrReferenceIsNotConstructed
	}
	return nil
}
