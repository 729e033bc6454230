package apierror_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"polishstash/internal/apierror"
)

func TestError(t *testing.T) {
	err := apierror.New("some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, http.StatusInternalServerError, apierror.StatusCode(err))
}

func TestErrorWithTagCode(t *testing.T) {
	err := apierror.NewWithTagCode(http.StatusNotFound, "not-found", "nope")

	assert.Equal(t, "nope", err.Error())
	assert.Equal(t, http.StatusNotFound, apierror.StatusCode(err))
}
