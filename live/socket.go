package live

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin checks happen in the CORS middleware
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades a client connection and forwards every published event
// to it until the client goes away
func Handler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("live: could not upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		pubsub := rdb.Subscribe(c.Request.Context(), channel)
		defer pubsub.Close()

		// wait for the subscription to be confirmed
		if _, err = pubsub.Receive(c.Request.Context()); err != nil {
			log.Printf("live: could not subscribe: %v", err)
			return
		}

		ch := pubsub.Channel()

		// the reader only serves to notice a disconnect
		clientClosed := make(chan struct{})
		go func() {
			defer close(clientClosed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg := <-ch:
				// payload is already JSON, forward as-is
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					return
				}
			case <-clientClosed:
				return
			case <-c.Request.Context().Done():
				return
			}
		}
	}
}
