package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchErrorUnwrap(t *testing.T) {
	err := NewFetchError("https://example.edu/faculty/1", io.ErrUnexpectedEOF)

	assert.Equal(t, "fetch https://example.edu/faculty/1: unexpected EOF", err.Error())
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))

	var fe *FetchError
	wrapped := stderrors.Join(stderrors.New("batch"), err)
	assert.True(t, stderrors.As(wrapped, &fe))
	assert.Equal(t, "https://example.edu/faculty/1", fe.URL)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("catalog", `unknown catalog "Sem 9"`)
	assert.Equal(t, `validation error for catalog: unknown catalog "Sem 9"`, err.Error())
}

func TestConfigErrorUnwrap(t *testing.T) {
	err := NewConfigError("config.yaml", io.EOF)
	assert.Equal(t, "config config.yaml: EOF", err.Error())
	assert.ErrorIs(t, err, io.EOF)
}
