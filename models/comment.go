package models

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stackmates/helpers"
)

// targets a comment can be attached to
const (
	CommentOnQuestion = "question"
	CommentOnAnswer   = "answer"
)

// CommentModel provides the logic to the interface and access to the database
type CommentModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	Questions  *mongo.Collection
	Answers    *mongo.Collection
}

// Comment on a question or an answer
type Comment struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Text            string             `json:"text" bson:"text"`
	CommentBy       string             `json:"commentBy" bson:"commentBy"`
	CommentDateTime time.Time          `json:"commentDateTime" bson:"commentDateTime"`
}

// Validate checks the fields a client must supply
func (m CommentModel) Validate(comment Comment) error {
	if strings.TrimSpace(comment.Text) == "" ||
		strings.TrimSpace(comment.CommentBy) == "" ||
		comment.CommentDateTime.IsZero() {
		return ErrInvalidComment
	}
	return nil
}

// Attach stores a comment and links it to its target, either a question
// or an answer
func (m CommentModel) Attach(targetID string, targetType string, comment *Comment) (string, error) {

	var target *mongo.Collection
	switch targetType {
	case CommentOnQuestion:
		target = m.Questions
	case CommentOnAnswer:
		target = m.Answers
	default:
		return "", ErrInvalidComment
	}

	targetOID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return "", ErrTargetNotFound
	}

	comment.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = m.Collection.InsertOne(ctx, comment)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	res, err := target.UpdateOne(ctx,
		bson.M{"_id": targetOID},
		bson.M{"$push": bson.M{"comments": comment.ID}})
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}
	if res.MatchedCount == 0 {
		return "", ErrTargetNotFound
	}

	return comment.ID.Hex(), nil
}

// FindByIDs reads a set of comments
func (m CommentModel) FindByIDs(IDs []primitive.ObjectID) ([]Comment, error) {

	if len(IDs) == 0 {
		return []Comment{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": IDs}})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	defer cursor.Close(ctx)

	var comments []Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	if comments == nil {
		comments = []Comment{}
	}

	return comments, nil
}
