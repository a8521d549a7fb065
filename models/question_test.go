package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ts(day int, hour int) time.Time {
	return time.Date(2023, 11, day, hour, 0, 0, 0, time.UTC)
}

func testQuestion(title string, text string, askedBy string, askDT time.Time, tags []string, answerTimes []time.Time) Question {
	q := Question{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Text:        text,
		AskedBy:     askedBy,
		AskDateTime: askDT,
		Public:      true,
	}
	for _, name := range tags {
		q.Tags = append(q.Tags, Tag{ID: primitive.NewObjectID(), Name: name})
	}
	for _, at := range answerTimes {
		q.Answers = append(q.Answers, Answer{ID: primitive.NewObjectID(), Text: "a", AnsBy: "someone", AnsDateTime: at})
	}
	return q
}

func titles(questions []Question) []string {
	res := make([]string, 0, len(questions))
	for _, q := range questions {
		res = append(res, q.Title)
	}
	return res
}

func TestParseSearch(t *testing.T) {

	tags, keywords := ParseSearch("website [android] [React]")
	assert.Equal(t, []string{"android", "react"}, tags)
	assert.Equal(t, []string{"website"}, keywords)

	tags, keywords = ParseSearch("   ")
	assert.Empty(t, tags)
	assert.Empty(t, keywords)

	tags, keywords = ParseSearch("[shared state]")
	assert.Equal(t, []string{"shared state"}, tags)
	assert.Empty(t, keywords)
}

func TestFilterBySearch(t *testing.T) {

	questions := []Question{
		testQuestion("Programmatic navigation", "working on a website", "alice", ts(16, 9), []string{"android"}, nil),
		testQuestion("Query errors", "compile time errors", "bob", ts(17, 9), []string{"react", "javascript"}, nil),
		testQuestion("Object storage", "large amount of data", "carol", ts(18, 9), []string{"storage"}, nil),
	}

	// empty search keeps everything
	assert.Len(t, FilterBySearch(questions, ""), 3)

	// tag match is case-insensitive
	res := FilterBySearch(questions, "[Android]")
	assert.Equal(t, []string{"Programmatic navigation"}, titles(res))

	// keyword matches title or text
	res = FilterBySearch(questions, "website")
	assert.Equal(t, []string{"Programmatic navigation"}, titles(res))

	// tags and keywords combine as OR
	res = FilterBySearch(questions, "data [react]")
	assert.Equal(t, []string{"Query errors", "Object storage"}, titles(res))

	// no match
	assert.Empty(t, FilterBySearch(questions, "[golang]"))
}

func TestFilterByAskedBy(t *testing.T) {

	questions := []Question{
		testQuestion("q1", "t", "alice", ts(16, 9), nil, nil),
		testQuestion("q2", "t", "bob", ts(17, 9), nil, nil),
		testQuestion("q3", "t", "alice", ts(18, 9), nil, nil),
	}

	res := FilterByAskedBy(questions, "alice")
	assert.Equal(t, []string{"q1", "q3"}, titles(res))

	assert.Empty(t, FilterByAskedBy(questions, "nobody"))
}

func TestFilterVisible(t *testing.T) {

	public := testQuestion("public", "t", "alice", ts(16, 9), nil, nil)
	private := testQuestion("private", "t", "alice", ts(17, 9), nil, nil)
	private.Public = false

	questions := []Question{public, private}
	friendsOf := map[string][]string{"alice": {"bob"}}

	// guests only see public questions
	assert.Equal(t, []string{"public"}, titles(FilterVisible(questions, "", friendsOf)))

	// the asker sees their own private questions
	assert.Equal(t, []string{"public", "private"}, titles(FilterVisible(questions, "alice", friendsOf)))

	// friends of the asker see them too
	assert.Equal(t, []string{"public", "private"}, titles(FilterVisible(questions, "bob", friendsOf)))

	// strangers don't
	assert.Equal(t, []string{"public"}, titles(FilterVisible(questions, "mallory", friendsOf)))
}

func TestCanView(t *testing.T) {

	private := testQuestion("private", "t", "alice", ts(17, 9), nil, nil)
	private.Public = false
	friendsOf := map[string][]string{"alice": {"bob"}}

	assert.True(t, CanView(private, "alice", friendsOf))
	assert.True(t, CanView(private, "bob", friendsOf))
	assert.False(t, CanView(private, "mallory", friendsOf))
	assert.False(t, CanView(private, "", friendsOf))

	public := testQuestion("public", "t", "alice", ts(16, 9), nil, nil)
	assert.True(t, CanView(public, "mallory", friendsOf))
}

func TestSortByOrderNewest(t *testing.T) {

	questions := []Question{
		testQuestion("old", "t", "alice", ts(16, 9), nil, nil),
		testQuestion("newest", "t", "bob", ts(18, 9), nil, nil),
		testQuestion("mid", "t", "carol", ts(17, 9), nil, nil),
	}

	res := SortByOrder(questions, OrderNewest)
	assert.Equal(t, []string{"newest", "mid", "old"}, titles(res))

	// the input slice stays untouched
	assert.Equal(t, []string{"old", "newest", "mid"}, titles(questions))
}

func TestSortByOrderUnanswered(t *testing.T) {

	questions := []Question{
		testQuestion("answered", "t", "alice", ts(16, 9), nil, []time.Time{ts(17, 9)}),
		testQuestion("open-old", "t", "bob", ts(15, 9), nil, nil),
		testQuestion("open-new", "t", "carol", ts(18, 9), nil, nil),
	}

	res := SortByOrder(questions, OrderUnanswered)
	assert.Equal(t, []string{"open-new", "open-old"}, titles(res))
}

func TestSortByOrderActive(t *testing.T) {

	questions := []Question{
		testQuestion("two-answers", "t", "alice", ts(15, 9), nil, []time.Time{ts(18, 9), ts(20, 9)}),
		testQuestion("one-answer", "t", "bob", ts(16, 9), nil, []time.Time{ts(18, 9)}),
		testQuestion("no-answers", "t", "carol", ts(17, 9), nil, nil),
	}

	// activity is the latest answer, or the ask time without answers
	res := SortByOrder(questions, OrderActive)
	assert.Equal(t, []string{"two-answers", "one-answer", "no-answers"}, titles(res))
}

func TestSortByOrderActiveTies(t *testing.T) {

	questions := []Question{
		testQuestion("first", "t", "alice", ts(14, 9), nil, []time.Time{ts(20, 9)}),
		testQuestion("second", "t", "bob", ts(15, 9), nil, []time.Time{ts(20, 9)}),
	}

	// equal activity keeps the input order
	res := SortByOrder(questions, OrderActive)
	assert.Equal(t, []string{"first", "second"}, titles(res))
}

func TestSortByOrderMostViewed(t *testing.T) {

	q1 := testQuestion("one-view", "t", "alice", ts(16, 9), nil, nil)
	q1.Views = []string{"a"}
	q2 := testQuestion("three-views", "t", "bob", ts(17, 9), nil, nil)
	q2.Views = []string{"a", "b", "c"}
	q3 := testQuestion("two-views", "t", "carol", ts(18, 9), nil, nil)
	q3.Views = []string{"a", "b"}

	res := SortByOrder([]Question{q1, q2, q3}, OrderMostViewed)
	assert.Equal(t, []string{"three-views", "two-views", "one-view"}, titles(res))
}

func TestSortByOrderUnknownFallsBackToNewest(t *testing.T) {

	questions := []Question{
		testQuestion("old", "t", "alice", ts(16, 9), nil, nil),
		testQuestion("new", "t", "bob", ts(17, 9), nil, nil),
	}

	res := SortByOrder(questions, "whatever")
	assert.Equal(t, []string{"new", "old"}, titles(res))
}
