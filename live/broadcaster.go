package live

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
)

// events pushed to connected clients
const (
	EventQuestionUpdate     = "questionUpdate"
	EventAnswerUpdate       = "answerUpdate"
	EventViewsUpdate        = "viewsUpdate"
	EventVoteUpdate         = "voteUpdate"
	EventCommentUpdate      = "commentUpdate"
	EventUserUpdate         = "userUpdate"
	EventNotificationUpdate = "notificationUpdate"
	EventAddFriend          = "addFriend"
	EventRemoveFriend       = "removeFriend"
	EventClearNotification  = "clearNotification"
)

// all events travel over one channel, clients filter by name
const channel = "stackmates:events"

// Event is the envelope published to the clients
type Event struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Broadcaster fans events out to every connected client. Redis pub/sub is
// the backbone, so events reach clients connected to any instance.
type Broadcaster struct {
	rdb *redis.Client
}

func NewBroadcaster(rdb *redis.Client) *Broadcaster {
	return &Broadcaster{rdb: rdb}
}

// Publish sends an event to all connected clients. Best effort, a lost
// event never fails the request that caused it.
func (b *Broadcaster) Publish(name string, payload interface{}) {

	if b == nil || b.rdb == nil {
		return
	}

	body, err := json.Marshal(Event{Name: name, Payload: payload})
	if err != nil {
		log.Printf("live: could not marshal event %v: %v", name, err)
		return
	}

	if err := b.rdb.Publish(context.Background(), channel, body).Err(); err != nil {
		log.Printf("live: could not publish event %v: %v", name, err)
	}
}
