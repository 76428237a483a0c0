package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3e0f326b-8b55-42a8-9f51-6d2f2e9b1f30"))
	assert.True(t, IsValidUUID("3E0F326B-8B55-42A8-9F51-6D2F2E9B1F30"))

	for _, s := range []string{
		"",
		"abc",
		"5f0a1b2c3d4e5f60718293a4", // object-id style, not a UUID
		"3e0f326b-8b55-42a8-9f51-6d2f2e9b1f3",  // too short
		"3e0f326b-8b55-42a8-9f51-6d2f2e9b1f301", // too long
	} {
		assert.False(t, IsValidUUID(s), "input %q", s)
	}
}

func TestExtractValidationErrorCustom(t *testing.T) {
	err := CustomValidationErrors{
		{Field: "description", Message: "is required"},
		{Field: "duration", Message: "is required"},
	}

	msg, fieldErrors := extractValidationError(err)

	assert.Equal(t, "description is required", msg)
	assert.Len(t, fieldErrors, 2)
	assert.Equal(t, "description", fieldErrors[0].Field)
	assert.Equal(t, "is required", fieldErrors[0].Error)
}
