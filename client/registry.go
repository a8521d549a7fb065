package client

import (
	"sync"
	"time"
)

type request struct {
	QuestionID string
	Accessed   time.Time
}

// mediate access to the requests-map using a mutex,
// the map is read by handlers and flushed by a GO-routine
var registry = struct {
	sync.RWMutex
	requests map[string]request // key is the client's IP
}{}

// Registry remembers the last question each client opened, so a page
// refresh is not counted as another visit
type Registry struct {
}

func (r Registry) Initialize() {
	registry.requests = make(map[string]request)
}

// Continue reports whether a request counts as a new visit.
// The combination of client and question seen twice in a row is a refresh.
func (r Registry) Continue(client string, questionID string) bool {

	registry.RLock()
	found := !(registry.requests[client].QuestionID == questionID)
	registry.RUnlock()

	// add or update the last (relevant) request
	req := request{
		QuestionID: questionID,
		Accessed:   time.Now(),
	}

	registry.Lock()
	registry.requests[client] = req
	registry.Unlock()

	return found
}

// Flush removes requests from the registry which are older than 15 minutes
// usually called by a GO-routine that runs in a ticker
func (r Registry) Flush() {

	registry.Lock()
	now := time.Now()
	if len(registry.requests) > 5000 {
		// it's safe to just delete expired keys, since iterations over maps are not ordered
		for key, value := range registry.requests {
			if now.Sub(value.Accessed).Minutes() > 15 {
				delete(registry.requests, key)
			}
		}
	}
	registry.Unlock()
}

// Count returns how many different clients are currently active
func (r Registry) Count() int {
	registry.RLock()
	cnt := len(registry.requests)
	registry.RUnlock()
	return cnt
}
