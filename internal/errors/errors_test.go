package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarer-ai/wayfarer/internal/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.CodeNotFound, "cell not found")
	assert.Equal(t, errors.CodeNotFound, err.Code)
	assert.Equal(t, "cell not found", err.Message)
	assert.Equal(t, "NOT_FOUND: cell not found", err.Error())
}

func TestWrapPreservesCode(t *testing.T) {
	inner := errors.NotFound("landmark not found")
	wrapped := errors.Wrap(inner, "nearest landmark lookup failed")

	assert.Equal(t, errors.CodeNotFound, wrapped.Code)
	assert.True(t, errors.IsNotFound(wrapped))
	assert.ErrorIs(t, wrapped, inner)
}

func TestWrapPlainError(t *testing.T) {
	inner := stderrors.New("connection refused")
	wrapped := errors.Wrap(inner, "flush failed")

	assert.Equal(t, errors.CodeInternal, wrapped.Code)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "ignored"))
}

func TestWrapWithCode(t *testing.T) {
	inner := stderrors.New("redis down")
	wrapped := errors.WrapWithCode(inner, errors.CodeUnavailable, "store unavailable")

	assert.Equal(t, errors.CodeUnavailable, wrapped.Code)
	assert.True(t, errors.IsUnavailable(wrapped))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodeDataLoss, errors.GetCode(errors.DataLoss("batch dropped")))
}

func TestWithMeta(t *testing.T) {
	err := errors.Internal("flush failed").
		WithMeta("floor", 3).
		WithMeta("pending", 42)

	assert.Equal(t, 3, err.Meta["floor"])
	assert.Equal(t, 42, err.Meta["pending"])
}

func TestIsMatchesByCode(t *testing.T) {
	a := errors.NotFound("cell (1,2,3)")
	b := errors.NotFound("cell (4,5,6)")
	assert.True(t, errors.Is(a, b))

	c := errors.Internal("boom")
	assert.False(t, errors.Is(a, c))
}
