package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {

	cause := errors.New("connection refused")

	err := WrapError(cause, "models.Query")
	assert.Equal(t, "models.Query: connection refused", err.Error())
	assert.Equal(t, cause, err.Err)
}

func TestFuncName(t *testing.T) {

	name := FuncName()
	assert.Contains(t, name, "TestFuncName")
}
