package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := InvalidInput("written_min must be a number")
	wrapped := Wrap(base, "parse query")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Equal(t, "parse query: written_min must be a number", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	cause := stderrors.New("disk on fire")
	wrapped := Wrapf(cause, "read %s", "results.xlsx")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, cause))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeLoadError, stderrors.New("no sheets"))
	assert.Equal(t, CodeLoadError, GetCode(err))
	assert.Equal(t, "no sheets", err.Error())

	recoded := WithCode(CodeSchemaError, Wrap(err, "load results"))
	assert.Equal(t, CodeSchemaError, GetCode(recoded))
	assert.Equal(t, "load results: no sheets", recoded.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{InvalidInput("bad"), http.StatusBadRequest},
		{NotFound("field"), http.StatusNotFound},
		{InternalError("oops"), http.StatusInternalServerError},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, HTTPStatus(test.err), "error %v", test.err)
	}
}
