package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRating(t *testing.T) {
	val := func(v int32) *int32 { return &v }

	// Absent ratings are allowed.
	assert.NoError(t, ValidateRating(nil))

	// Range boundaries are inclusive.
	assert.NoError(t, ValidateRating(val(1)))
	assert.NoError(t, ValidateRating(val(3)))
	assert.NoError(t, ValidateRating(val(5)))

	// Out-of-range values fail with the exact client-facing message.
	for _, v := range []int32{0, 6, -1, 7, 100} {
		err := ValidateRating(val(v))
		assert.Error(t, err)
		assert.EqualError(t, err, "Rating must be between 1 and 5")
	}
}

func TestGuestPatchEmpty(t *testing.T) {
	name := "Ada"
	occ := "Scientist"

	assert.True(t, GuestPatch{}.Empty())
	assert.False(t, GuestPatch{Name: &name}.Empty())
	assert.False(t, GuestPatch{Occupation: &occ}.Empty())
	assert.False(t, GuestPatch{Name: &name, Occupation: &occ}.Empty())
}
