package models

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stackmates/helpers"
)

// orders accepted by GetQuestionsByOrder
const (
	OrderNewest     = "newest"
	OrderUnanswered = "unanswered"
	OrderActive     = "active"
	OrderMostViewed = "mostViewed"
	OrderFriends    = "friends"
)

// QuestionModel provides the logic to the interface and access to the database
type QuestionModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	// some operations need data of other entities
	// (assigned by the domain layer factory so models don't import each other)
	GetAnswers  func(IDs []primitive.ObjectID, withComments bool) ([]Answer, error)
	GetComments func(IDs []primitive.ObjectID) ([]Comment, error)
	GetTags     func(IDs []primitive.ObjectID) ([]Tag, error)
	ProcessTags func(tags []Tag) ([]Tag, error)
}

// Question is the client-facing shape with all references resolved
type Question struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Text        string             `json:"text" bson:"text"`
	Tags        []Tag              `json:"tags" bson:"-"`
	AskedBy     string             `json:"askedBy" bson:"askedBy"`
	AskDateTime time.Time          `json:"askDateTime" bson:"askDateTime"`
	Answers     []Answer           `json:"answers" bson:"-"`
	Views       []string           `json:"views" bson:"views"`
	UpVotes     []string           `json:"upVotes" bson:"upVotes"`
	DownVotes   []string           `json:"downVotes" bson:"downVotes"`
	Comments    []Comment          `json:"comments" bson:"-"`
	Public      bool               `json:"public" bson:"public"`
}

// questionDoc is the persisted shape, holding references instead of embedded documents
type questionDoc struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Title       string               `bson:"title"`
	Text        string               `bson:"text"`
	Tags        []primitive.ObjectID `bson:"tags"`
	AskedBy     string               `bson:"askedBy"`
	AskDateTime time.Time            `bson:"askDateTime"`
	Answers     []primitive.ObjectID `bson:"answers"`
	Views       []string             `bson:"views"`
	UpVotes     []string             `bson:"upVotes"`
	DownVotes   []string             `bson:"downVotes"`
	Comments    []primitive.ObjectID `bson:"comments"`
	Public      bool                 `bson:"public"`
}

// Validate checks the fields a client must supply before a question is stored
func (m QuestionModel) Validate(question Question) error {
	if strings.TrimSpace(question.Title) == "" ||
		strings.TrimSpace(question.Text) == "" ||
		strings.TrimSpace(question.AskedBy) == "" ||
		question.AskDateTime.IsZero() {
		return ErrInvalidQuestion
	}
	return nil
}

// Create stores a new question, registering unknown tags on the fly.
// The generated ID is returned to the caller.
func (m QuestionModel) Create(question *Question) (string, error) {

	tags, err := m.ProcessTags(question.Tags)
	if err != nil {
		return "", err
	}

	tagIDs := make([]primitive.ObjectID, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	doc := questionDoc{
		ID:          primitive.NewObjectID(),
		Title:       question.Title,
		Text:        question.Text,
		Tags:        tagIDs,
		AskedBy:     question.AskedBy,
		AskDateTime: question.AskDateTime,
		Answers:     []primitive.ObjectID{},
		Views:       []string{},
		UpVotes:     []string{},
		DownVotes:   []string{},
		Comments:    []primitive.ObjectID{},
		Public:      question.Public,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.InsertOne(ctx, doc)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	question.ID = res.InsertedID.(primitive.ObjectID)
	question.Tags = tags

	return question.ID.Hex(), nil
}

// GetQuestionsByOrder returns all questions, resolved and sorted.
// Listing never fails towards the client; any problem yields an empty result.
func (m QuestionModel) GetQuestionsByOrder(order string) []Question {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, bson.D{})
	if err != nil {
		return []Question{}
	}
	defer cursor.Close(ctx)

	var docs []questionDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return []Question{}
	}

	questions, err := m.populate(docs)
	if err != nil {
		return []Question{}
	}

	return SortByOrder(questions, order)
}

// GetQuestion reads one question with everything resolved (answers carry
// their comments here). Reading does not count as a view, callers record
// permitted viewers through AddView.
func (m QuestionModel) GetQuestion(questionID string) (*Question, error) {

	id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, ErrQuestionNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc questionDoc
	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuestionNotFound
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	questions, err := m.populateFull([]questionDoc{doc})
	if err != nil {
		return nil, err
	}

	return &questions[0], nil
}

// AddView records a user as a viewer of a question and returns the updated
// viewer list
func (m QuestionModel) AddView(questionID string, username string) ([]string, error) {

	id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, ErrQuestionNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	after := options.After
	opts := options.FindOneAndUpdateOptions{ReturnDocument: &after}

	var doc struct {
		Views []string `bson:"views"`
	}
	err = m.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"views": username}},
		&opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuestionNotFound
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return doc.Views, nil
}

// Exists reports whether a question ID resolves to a stored question
func (m QuestionModel) Exists(questionID string) bool {

	id, err := primitive.ObjectIDFromHex(questionID)
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

// populate resolves tag and answer references for a list of questions.
// Answers are resolved without their comments, which the list views don't show.
func (m QuestionModel) populate(docs []questionDoc) ([]Question, error) {
	return m.assemble(docs, false)
}

// populateFull additionally resolves question comments and the comments of
// every answer (used by the single-question view)
func (m QuestionModel) populateFull(docs []questionDoc) ([]Question, error) {
	return m.assemble(docs, true)
}

func (m QuestionModel) assemble(docs []questionDoc, full bool) ([]Question, error) {

	var tagIDs, answerIDs, commentIDs []primitive.ObjectID
	for _, doc := range docs {
		tagIDs = append(tagIDs, doc.Tags...)
		answerIDs = append(answerIDs, doc.Answers...)
		if full {
			commentIDs = append(commentIDs, doc.Comments...)
		}
	}

	tags, err := m.GetTags(tagIDs)
	if err != nil {
		return nil, err
	}
	tagMap := make(map[primitive.ObjectID]Tag, len(tags))
	for _, tag := range tags {
		tagMap[tag.ID] = tag
	}

	answers, err := m.GetAnswers(answerIDs, full)
	if err != nil {
		return nil, err
	}
	answerMap := make(map[primitive.ObjectID]Answer, len(answers))
	for _, answer := range answers {
		answerMap[answer.ID] = answer
	}

	commentMap := make(map[primitive.ObjectID]Comment)
	if full {
		comments, err := m.GetComments(commentIDs)
		if err != nil {
			return nil, err
		}
		for _, comment := range comments {
			commentMap[comment.ID] = comment
		}
	}

	questions := make([]Question, 0, len(docs))
	for _, doc := range docs {
		question := Question{
			ID:          doc.ID,
			Title:       doc.Title,
			Text:        doc.Text,
			Tags:        make([]Tag, 0, len(doc.Tags)),
			AskedBy:     doc.AskedBy,
			AskDateTime: doc.AskDateTime,
			Answers:     make([]Answer, 0, len(doc.Answers)),
			Views:       doc.Views,
			UpVotes:     doc.UpVotes,
			DownVotes:   doc.DownVotes,
			Comments:    []Comment{},
			Public:      doc.Public,
		}
		// dangling references are skipped, the stored order is kept
		for _, id := range doc.Tags {
			if tag, ok := tagMap[id]; ok {
				question.Tags = append(question.Tags, tag)
			}
		}
		for _, id := range doc.Answers {
			if answer, ok := answerMap[id]; ok {
				question.Answers = append(question.Answers, answer)
			}
		}
		if full {
			for _, id := range doc.Comments {
				if comment, ok := commentMap[id]; ok {
					question.Comments = append(question.Comments, comment)
				}
			}
		}
		questions = append(questions, question)
	}

	return questions, nil
}

// matches "[tag]" fragments in a search string
var tagPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// ParseSearch splits a raw search string into tag names and plain keywords
func ParseSearch(search string) (tags []string, keywords []string) {

	for _, match := range tagPattern.FindAllStringSubmatch(search, -1) {
		tags = append(tags, strings.ToLower(strings.TrimSpace(match[1])))
	}

	rest := tagPattern.ReplaceAllString(search, " ")
	keywords = strings.Fields(rest)

	return tags, keywords
}

// FilterBySearch keeps the questions matching a search string. Tags are
// compared case-insensitively, keywords are looked up in title and text.
// An empty search keeps everything.
func FilterBySearch(questions []Question, search string) []Question {

	tags, keywords := ParseSearch(search)
	if len(tags) == 0 && len(keywords) == 0 {
		return questions
	}

	res := make([]Question, 0, len(questions))
	for _, question := range questions {
		if matchesTags(question, tags) || matchesKeywords(question, keywords) {
			res = append(res, question)
		}
	}

	return res
}

func matchesTags(question Question, tags []string) bool {
	for _, tag := range tags {
		for _, qt := range question.Tags {
			if strings.EqualFold(qt.Name, tag) {
				return true
			}
		}
	}
	return false
}

func matchesKeywords(question Question, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(question.Title, keyword) ||
			strings.Contains(question.Text, keyword) {
			return true
		}
	}
	return false
}

// FilterByAskedBy keeps the questions asked by one user
func FilterByAskedBy(questions []Question, username string) []Question {
	res := make([]Question, 0, len(questions))
	for _, question := range questions {
		if question.AskedBy == username {
			res = append(res, question)
		}
	}
	return res
}

// FilterVisible keeps public questions plus the private ones the viewer may
// see, which are their own and those asked by one of their friends.
// friendsOf maps an asker to the asker's friend list.
func FilterVisible(questions []Question, viewer string, friendsOf map[string][]string) []Question {
	res := make([]Question, 0, len(questions))
	for _, question := range questions {
		if question.Public ||
			question.AskedBy == viewer ||
			contains(friendsOf[question.AskedBy], viewer) {
			res = append(res, question)
		}
	}
	return res
}

// CanView reports whether a single question is visible to the viewer
func CanView(question Question, viewer string, friendsOf map[string][]string) bool {
	return len(FilterVisible([]Question{question}, viewer, friendsOf)) == 1
}

// activityTime is the moment of the latest answer, or the ask time for
// questions still waiting for one
func activityTime(question Question) time.Time {
	res := question.AskDateTime
	for _, answer := range question.Answers {
		if answer.AnsDateTime.After(res) {
			res = answer.AnsDateTime
		}
	}
	return res
}

// SortByOrder arranges questions by one of the supported orders.
// Sorting is stable, equal keys keep their relative input order.
// The input slice is not modified.
func SortByOrder(questions []Question, order string) []Question {

	res := make([]Question, len(questions))
	copy(res, questions)

	switch order {
	case OrderUnanswered:
		unanswered := make([]Question, 0, len(res))
		for _, question := range res {
			if len(question.Answers) == 0 {
				unanswered = append(unanswered, question)
			}
		}
		res = unanswered
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].AskDateTime.After(res[j].AskDateTime)
		})
	case OrderActive:
		sort.SliceStable(res, func(i, j int) bool {
			return activityTime(res[i]).After(activityTime(res[j]))
		})
	case OrderMostViewed:
		sort.SliceStable(res, func(i, j int) bool {
			return len(res[i].Views) > len(res[j].Views)
		})
	case OrderFriends:
		// the friends feed keeps the stored order, the caller filters it
	default:
		// newest, also the fallback for unknown orders
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].AskDateTime.After(res[j].AskDateTime)
		})
	}

	return res
}
