package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stackmates/helpers"
)

// vote directions
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// messages reported back to the client after a vote
const (
	MsgUpvoted         = "Question upvoted successfully"
	MsgDownvoted       = "Question downvoted successfully"
	MsgUpvoteCancelled = "Upvote cancelled successfully"
	MsgDownvoteRemoved = "Downvote cancelled successfully"
)

// VoteModel provides the logic to the interface and access to the database
// (votes live on the questions collection)
type VoteModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// VoteResult carries the new state of both voter lists plus a message
// describing what the vote did
type VoteResult struct {
	QuestionID string   `json:"questionId"`
	Message    string   `json:"message"`
	UpVotes    []string `json:"upVotes"`
	DownVotes  []string `json:"downVotes"`
}

// Apply toggles a user's vote on the given voter lists. Voting the same
// direction twice cancels the vote, voting the opposite direction moves it.
// The input slices are not modified.
func Apply(upVotes []string, downVotes []string, username string, direction string) (up []string, down []string, message string) {

	switch direction {
	case VoteUp:
		if contains(upVotes, username) {
			return remove(upVotes, username), downVotes, MsgUpvoteCancelled
		}
		return append(remove(upVotes, username), username),
			remove(downVotes, username), MsgUpvoted
	case VoteDown:
		if contains(downVotes, username) {
			return upVotes, remove(downVotes, username), MsgDownvoteRemoved
		}
		return remove(upVotes, username),
			append(remove(downVotes, username), username), MsgDownvoted
	}

	return upVotes, downVotes, ""
}

// Cast applies a user's vote to a question and persists the outcome.
// Both voter lists are written back as a whole, so a vote switching sides
// cannot leave the user on both lists.
func (m VoteModel) Cast(questionID string, username string, direction string) (*VoteResult, error) {

	if direction != VoteUp && direction != VoteDown {
		return nil, ErrInvalidVote
	}

	id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, ErrQuestionNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var state struct {
		UpVotes   []string `bson:"upVotes"`
		DownVotes []string `bson:"downVotes"`
	}

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuestionNotFound
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	up, down, message := Apply(state.UpVotes, state.DownVotes, username, direction)

	_, err = m.Collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"upVotes": up, "downVotes": down}})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return &VoteResult{
		QuestionID: questionID,
		Message:    message,
		UpVotes:    up,
		DownVotes:  down,
	}, nil
}
