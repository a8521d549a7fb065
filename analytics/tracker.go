package analytics

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go"

	"stackmates/client"
	"stackmates/database"
	"stackmates/helpers"
)

// Tracker logs question visits to the analytics cache (influxDB) and
// answers live questions about them. The cache keeps a limited period
// (bucket TTL), which is all the interface needs.
type Tracker struct {
	VisitorAPI database.InfluxAPI
	Requests   *client.Registry
}

// Visit of a user on a question
type Visit struct {
	VisitTS    time.Time `json:"visitTS"`
	QuestionID string    `json:"questionId"`
	UserName   string    `json:"userName"`
}

// SaveVisit stores a view event. Best effort, a failing analytics store
// must never affect the interface.
func (t *Tracker) SaveVisit(questionID string, username string) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return
	}

	// the risk of high series cardinality is accepted,
	// questions are exactly what we want to aggregate on
	p := influxdb2.NewPoint(
		"visit",
		map[string]string{"questionId": questionID},
		map[string]interface{}{"userName": username},
		time.Now())

	// ToDo: log error
	t.VisitorAPI.WriteAPI.WritePoint(context.Background(), p)
}

// GetVisits counts the visits of a question since the given time
func (t *Tracker) GetVisits(questionID string, startDT time.Time) (int64, error) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return -1, nil
	}

	flux := `from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "visit" and r["questionId"] == "%s")
		|> count()
		|> yield(name: "count")`

	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		startDT.Format(time.RFC3339),
		questionID)

	result, err := t.VisitorAPI.QueryAPI.Query(context.Background(), flux)
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}

	// single record
	var res interface{}
	for result.Next() {
		res = result.Record().Value()
	}

	var cnt int64 = 0
	if res != nil {
		cnt = res.(int64)
	}

	return cnt, nil
}

// ListVisitors returns the last visit of the 10 most recent visitors
// of a question
func (t *Tracker) ListVisitors(questionID string, startDT time.Time) ([]Visit, error) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return nil, nil
	}

	flux := `from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "visit" and r["questionId"] == "%s")
		|> group(columns: ["_value"], mode:"by")
		|> max(column: "_time")
		|> sort(columns: ["_time"], desc: true)
		|> limit(n:10, offset: 0)`

	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		startDT.Format(time.RFC3339),
		questionID)

	result, err := t.VisitorAPI.QueryAPI.Query(context.Background(), flux)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var visit Visit
	var visits []Visit
	for result.Next() {
		visit.VisitTS = result.Record().Time()
		visit.QuestionID = questionID
		if result.Record().Value() == nil {
			visit.UserName = ""
		} else {
			visit.UserName = result.Record().Value().(string)
		}

		visits = append(visits, visit)
	}

	// the flux query sorts correctly, the slice may still come in any order
	sort.Slice(visits, func(i, j int) bool {
		return visits[j].VisitTS.Before(visits[i].VisitTS)
	})

	return visits, nil
}
