package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnswerValidate(t *testing.T) {

	m := AnswerModel{}

	valid := Answer{Text: "try a mutex", AnsBy: "alice", AnsDateTime: time.Now()}
	assert.NoError(t, m.Validate(valid))
}

func TestAnswerValidateRejectsIncomplete(t *testing.T) {

	m := AnswerModel{}

	cases := []Answer{
		{AnsBy: "alice", AnsDateTime: time.Now()},             // no text
		{Text: "  ", AnsBy: "alice", AnsDateTime: time.Now()}, // blank text
		{Text: "try a mutex", AnsDateTime: time.Now()},        // no author
		{Text: "try a mutex", AnsBy: "alice"},                 // no timestamp
	}

	for _, answer := range cases {
		err := m.Validate(answer)
		assert.Equal(t, ErrInvalidAnswer, err)
		assert.EqualError(t, err, "Invalid answer")
	}
}

func TestCommentValidate(t *testing.T) {

	m := CommentModel{}

	valid := Comment{Text: "nice catch", CommentBy: "bob", CommentDateTime: time.Now()}
	assert.NoError(t, m.Validate(valid))

	err := m.Validate(Comment{CommentBy: "bob", CommentDateTime: time.Now()})
	assert.Equal(t, ErrInvalidComment, err)
	assert.EqualError(t, err, "Invalid comment")

	assert.Equal(t, ErrInvalidComment, m.Validate(Comment{Text: "nice catch", CommentBy: "bob"}))
}
