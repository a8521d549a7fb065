package models

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stackmates/apperror"
	"stackmates/helpers"
)

// TagModel provides the logic to the interface and access to the database
type TagModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	Questions  *mongo.Collection
}

// Tag labels questions, every name exists exactly once
type Tag struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}

// GetOrCreate returns the stored tag with the given name, registering it
// first if it's new. Names are stored in lower case.
func (m TagModel) GetOrCreate(name string) (*Tag, error) {

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrInvalidQuestion
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var tag Tag
	err := m.Collection.FindOne(ctx, bson.M{"name": name}).Decode(&tag)
	if err == nil {
		return &tag, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	tag = Tag{ID: primitive.NewObjectID(), Name: name}
	_, err = m.Collection.InsertOne(ctx, tag)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return &tag, nil
}

// Process resolves a list of client-supplied tags to stored ones,
// registering the unknown names. Duplicates collapse to one entry.
func (m TagModel) Process(tags []Tag) ([]Tag, error) {

	res := make([]Tag, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, tag := range tags {
		name := strings.ToLower(strings.TrimSpace(tag.Name))
		if seen[name] {
			continue
		}
		stored, err := m.GetOrCreate(name)
		if err != nil {
			return nil, err
		}
		seen[name] = true
		res = append(res, *stored)
	}

	return res, nil
}

// GetByName reads one tag
func (m TagModel) GetByName(name string) (*Tag, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var tag Tag
	err := m.Collection.FindOne(ctx,
		bson.M{"name": strings.ToLower(strings.TrimSpace(name))}).Decode(&tag)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return &tag, nil
}

// FindByIDs reads a set of tags
func (m TagModel) FindByIDs(IDs []primitive.ObjectID) ([]Tag, error) {

	if len(IDs) == 0 {
		return []Tag{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": IDs}})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	defer cursor.Close(ctx)

	var tags []Tag
	if err = cursor.All(ctx, &tags); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	if tags == nil {
		tags = []Tag{}
	}

	return tags, nil
}

// TagCount pairs a tag with the number of questions using it
type TagCount struct {
	Tag   Tag `json:"tag"`
	Count int `json:"count"`
}

// CountAll returns every tag with its usage count, unused tags included
// with a count of zero
func (m TagModel) CountAll() ([]TagCount, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var tags []Tag
	if err = cursor.All(ctx, &tags); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// one pass over the questions' tag references
	counts := make(map[primitive.ObjectID]int, len(tags))

	qcursor, err := m.Questions.Find(ctx, bson.D{},
		options.Find().SetProjection(bson.M{"tags": 1}))
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var refs []struct {
		Tags []primitive.ObjectID `bson:"tags"`
	}
	if err = qcursor.All(ctx, &refs); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	for _, ref := range refs {
		for _, id := range ref.Tags {
			counts[id]++
		}
	}

	res := make([]TagCount, 0, len(tags))
	for _, tag := range tags {
		res = append(res, TagCount{Tag: tag, Count: counts[tag.ID]})
	}

	return res, nil
}
