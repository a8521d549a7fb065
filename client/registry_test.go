package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinueDetectsRefresh(t *testing.T) {

	var r Registry
	r.Initialize()

	// first request counts as a visit
	assert.True(t, r.Continue("10.0.0.1", "question-1"))

	// reloading the same question does not
	assert.False(t, r.Continue("10.0.0.1", "question-1"))

	// another question counts again
	assert.True(t, r.Continue("10.0.0.1", "question-2"))

	// and so does going back
	assert.True(t, r.Continue("10.0.0.1", "question-1"))
}

func TestContinueSeparatesClients(t *testing.T) {

	var r Registry
	r.Initialize()

	assert.True(t, r.Continue("10.0.0.1", "question-1"))
	assert.True(t, r.Continue("10.0.0.2", "question-1"))

	assert.Equal(t, 2, r.Count())
}
