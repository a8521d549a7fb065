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

// AnswerModel provides the logic to the interface and access to the database
type AnswerModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	Questions  *mongo.Collection
	// assigned by the domain layer factory
	GetComments func(IDs []primitive.ObjectID) ([]Comment, error)
}

// Answer given to a question
type Answer struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Text        string             `json:"text" bson:"text"`
	AnsBy       string             `json:"ansBy" bson:"ansBy"`
	AnsDateTime time.Time          `json:"ansDateTime" bson:"ansDateTime"`
	Comments    []Comment          `json:"comments" bson:"-"`
}

// answerDoc is the persisted shape, comments are stored as references
type answerDoc struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Text        string               `bson:"text"`
	AnsBy       string               `bson:"ansBy"`
	AnsDateTime time.Time            `bson:"ansDateTime"`
	Comments    []primitive.ObjectID `bson:"comments"`
}

// Validate checks the fields a client must supply
func (m AnswerModel) Validate(answer Answer) error {
	if strings.TrimSpace(answer.Text) == "" ||
		strings.TrimSpace(answer.AnsBy) == "" ||
		answer.AnsDateTime.IsZero() {
		return ErrInvalidAnswer
	}
	return nil
}

// Create stores an answer and links it to its question
func (m AnswerModel) Create(questionID string, answer *Answer) (string, error) {

	questionOID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return "", ErrQuestionNotFound
	}

	doc := answerDoc{
		ID:          primitive.NewObjectID(),
		Text:        answer.Text,
		AnsBy:       answer.AnsBy,
		AnsDateTime: answer.AnsDateTime,
		Comments:    []primitive.ObjectID{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = m.Collection.InsertOne(ctx, doc)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	res, err := m.Questions.UpdateOne(ctx,
		bson.M{"_id": questionOID},
		bson.M{"$push": bson.M{"answers": doc.ID}})
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}
	if res.MatchedCount == 0 {
		// the answer stays orphaned, nothing references it
		return "", ErrQuestionNotFound
	}

	answer.ID = doc.ID
	answer.Comments = []Comment{}

	return doc.ID.Hex(), nil
}

// FindByIDs reads a set of answers, optionally with their comments resolved
func (m AnswerModel) FindByIDs(IDs []primitive.ObjectID, withComments bool) ([]Answer, error) {

	if len(IDs) == 0 {
		return []Answer{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": IDs}})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	defer cursor.Close(ctx)

	var docs []answerDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	commentMap := make(map[primitive.ObjectID]Comment)
	if withComments {
		var commentIDs []primitive.ObjectID
		for _, doc := range docs {
			commentIDs = append(commentIDs, doc.Comments...)
		}
		comments, err := m.GetComments(commentIDs)
		if err != nil {
			return nil, err
		}
		for _, comment := range comments {
			commentMap[comment.ID] = comment
		}
	}

	answers := make([]Answer, 0, len(docs))
	for _, doc := range docs {
		answer := Answer{
			ID:          doc.ID,
			Text:        doc.Text,
			AnsBy:       doc.AnsBy,
			AnsDateTime: doc.AnsDateTime,
			Comments:    []Comment{},
		}
		if withComments {
			for _, id := range doc.Comments {
				if comment, ok := commentMap[id]; ok {
					answer.Comments = append(answer.Comments, comment)
				}
			}
		}
		answers = append(answers, answer)
	}

	return answers, nil
}

// Exists reports whether an answer ID resolves to a stored answer
func (m AnswerModel) Exists(answerID string) bool {

	id, err := primitive.ObjectIDFromHex(answerID)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := m.Collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false
	}

	return count > 0
}
