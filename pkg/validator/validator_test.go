package validator

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockInput struct {
	BloodGroup string `binding:"required,bloodgroup"`
	Units      *int   `binding:"required,min=0"`
	City       string `binding:"omitempty,min=2"`
}

func intPtr(v int) *int { return &v }

func TestBloodGroupValidation(t *testing.T) {
	require.NoError(t, RegisterCustomValidations())
	require.NoError(t, RegisterCustomValidations())

	assert.NoError(t, binding.Validator.ValidateStruct(&stockInput{BloodGroup: "AB-", Units: intPtr(0)}))

	err := binding.Validator.ValidateStruct(&stockInput{BloodGroup: "C+", Units: intPtr(1)})
	require.Error(t, err)
	assert.Contains(t, FormatValidationError(err), "Blood group must be one of A+, A-")
}

func TestFormatValidationErrorMessages(t *testing.T) {
	require.NoError(t, RegisterCustomValidations())

	err := binding.Validator.ValidateStruct(&stockInput{BloodGroup: "O+", Units: intPtr(-3), City: "X"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Units must be at least 0")
	assert.Contains(t, msg, "City must be at least 2 characters")
}

func TestFormatValidationErrorPassthrough(t *testing.T) {
	assert.Equal(t, "EOF", FormatValidationError(errors.New("EOF")))
}

func TestIsBloodGroup(t *testing.T) {
	for _, bg := range BloodGroups {
		assert.True(t, IsBloodGroup(bg))
	}
	assert.False(t, IsBloodGroup("o+"))
	assert.False(t, IsBloodGroup(""))
}
