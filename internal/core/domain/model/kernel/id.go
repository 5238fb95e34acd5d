package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"ordering/internal/pkg/errs"
)

// ErrIDIsNotConstructed is returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or IDFromString")

// ID is a positive serial identifier assigned by the store.
type ID struct {
	value int64
}

// NewID wraps a store identifier. Zero and negative values are rejected.
func NewID(value int64) (ID, error) {
	if value <= 0 {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", value))
	}
	return ID{value: value}, nil
}

// IDFromString parses a decimal identifier, as found in URLs and free-text search.
func IDFromString(s string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(v)
}

// MustNewID is intended for tests and constants.
func MustNewID(value int64) ID {
	id, err := NewID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) Int64() int64 {
	return id.value
}

func (id ID) String() string {
	return strconv.FormatInt(id.value, 10)
}

func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

func (id ID) Validate() error {
	if id.value <= 0 {
		return ErrIDIsNotConstructed
	}
	return nil
}
