package kernel_test

import (
	"strings"
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("should wrap positive values", func(t *testing.T) {
		id, err := kernel.NewID(42)

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, int64(42), id.Int64())
		assert.Equal(t, "42", id.String())
	})

	t.Run("should reject zero and negatives", func(t *testing.T) {
		for _, v := range []int64{0, -1} {
			_, err := kernel.NewID(v)
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var id kernel.ID

		assert.Equal(t, kernel.ErrIDIsNotConstructed, id.Validate())
	})

	t.Run("equality is by value", func(t *testing.T) {
		assert.True(t, kernel.MustNewID(7).IsEqual(kernel.MustNewID(7)))
		assert.False(t, kernel.MustNewID(7).IsEqual(kernel.MustNewID(8)))
	})
}

func TestIDFromString(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain number", input: "15", want: 15},
		{name: "padded with spaces", input: " 15 ", want: 15},
		{name: "zero", input: "0", wantErr: true},
		{name: "text", input: "user-15", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "fraction", input: "1.5", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := kernel.IDFromString(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id.Int64())
		})
	}
}

func TestReference(t *testing.T) {
	t.Run("generated reference is a uuid", func(t *testing.T) {
		ref := kernel.NewReference()

		require.NoError(t, ref.Validate())
		_, err := uuid.Parse(ref.String())
		require.NoError(t, err)
	})

	t.Run("external reference is trimmed", func(t *testing.T) {
		ref, err := kernel.ReferenceFromString("  ch_123  ")

		require.NoError(t, err)
		assert.Equal(t, "ch_123", ref.String())
	})

	t.Run("blank reference is rejected", func(t *testing.T) {
		_, err := kernel.ReferenceFromString("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("overlong reference is rejected", func(t *testing.T) {
		_, err := kernel.ReferenceFromString(strings.Repeat("x", 256))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var ref kernel.Reference

		assert.Equal(t, kernel.ErrReferenceIsNotConstructed, ref.Validate())
	})
}

func TestParseDay(t *testing.T) {
	t.Run("iso date", func(t *testing.T) {
		d, err := kernel.ParseDay("2024-03-01")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d.Start())
		assert.Equal(t, "2024-03-01", d.String())
	})

	t.Run("timestamp drops time of day", func(t *testing.T) {
		d, err := kernel.ParseDay("2024-03-01T17:45:00Z")

		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", d.String())
	})

	t.Run("garbage is a validation error", func(t *testing.T) {
		_, err := kernel.ParseDay("yesterday")

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("contains ignores time of day", func(t *testing.T) {
		d, _ := kernel.ParseDay("2024-03-01")

		assert.True(t, d.Contains(time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)))
		assert.True(t, d.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, d.Contains(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	})
}
