package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarer-ai/wayfarer/internal/errors"
)

func TestValidationBuilderEmpty(t *testing.T) {
	vb := errors.NewValidationBuilder()
	assert.NoError(t, vb.Build())
}

func TestValidationBuilderRequiredFields(t *testing.T) {
	err := errors.NewValidationBuilder().
		RequiredField("Store").
		RequiredField("Clock").
		Build()

	assert.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Store")
	assert.Contains(t, err.Error(), "Clock")
}

func TestValidationBuilderInvalidField(t *testing.T) {
	err := errors.NewValidationBuilder().
		InvalidField("FlushThreshold", "must be positive").
		Build()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "FlushThreshold")
	assert.Contains(t, err.Error(), "must be positive")
}

func TestValidationErrorMeta(t *testing.T) {
	ve := errors.NewValidationError()
	ve.AddFieldError("Radius", "must be positive")
	ve.AddFieldErrorf("NodeBudget", "must be at least %d", 1)

	err := ve.ToError()
	assert.NotNil(t, err)

	fields, ok := err.Meta["validation_errors"].(map[string][]string)
	assert.True(t, ok)
	assert.Len(t, fields["Radius"], 1)
	assert.Len(t, fields["NodeBudget"], 1)
}
