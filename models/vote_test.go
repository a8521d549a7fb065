package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplyUpvote(t *testing.T) {

	up, down, msg := Apply([]string{}, []string{}, "alice", VoteUp)
	assert.Equal(t, []string{"alice"}, up)
	assert.Empty(t, down)
	assert.Equal(t, MsgUpvoted, msg)
}

func TestApplyUpvoteTwiceCancels(t *testing.T) {

	up, down, msg := Apply([]string{"alice"}, []string{}, "alice", VoteUp)
	assert.Empty(t, up)
	assert.Empty(t, down)
	assert.Equal(t, MsgUpvoteCancelled, msg)
}

func TestApplyDownvote(t *testing.T) {

	up, down, msg := Apply([]string{}, []string{}, "alice", VoteDown)
	assert.Empty(t, up)
	assert.Equal(t, []string{"alice"}, down)
	assert.Equal(t, MsgDownvoted, msg)
}

func TestApplyDownvoteTwiceCancels(t *testing.T) {

	up, down, msg := Apply([]string{}, []string{"alice"}, "alice", VoteDown)
	assert.Empty(t, up)
	assert.Empty(t, down)
	assert.Equal(t, MsgDownvoteRemoved, msg)
}

func TestApplySwitchesSides(t *testing.T) {

	// an upvoter voting down moves to the other list
	up, down, msg := Apply([]string{"alice", "bob"}, []string{}, "alice", VoteDown)
	assert.Equal(t, []string{"bob"}, up)
	assert.Equal(t, []string{"alice"}, down)
	assert.Equal(t, MsgDownvoted, msg)

	// and back again
	up, down, msg = Apply(up, down, "alice", VoteUp)
	assert.Equal(t, []string{"bob", "alice"}, up)
	assert.Empty(t, down)
	assert.Equal(t, MsgUpvoted, msg)
}

func TestApplyKeepsOtherVoters(t *testing.T) {

	up, down, _ := Apply([]string{"bob"}, []string{"carol"}, "alice", VoteUp)
	assert.Equal(t, []string{"bob", "alice"}, up)
	assert.Equal(t, []string{"carol"}, down)
}

func TestApplyDoesNotModifyInput(t *testing.T) {

	upVotes := []string{"alice", "bob"}
	downVotes := []string{"carol"}

	Apply(upVotes, downVotes, "dave", VoteUp)

	assert.Equal(t, []string{"alice", "bob"}, upVotes)
	assert.Equal(t, []string{"carol"}, downVotes)
}

func TestCastUnknownDirection(t *testing.T) {

	// rejected before the database is touched, and not as a lookup failure
	m := VoteModel{}

	result, err := m.Cast(primitive.NewObjectID().Hex(), "alice", "sideways")
	assert.Nil(t, result)
	assert.Equal(t, ErrInvalidVote, err)
	assert.EqualError(t, err, "Invalid vote")
}
