package controller

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"estatecrm/models"
)

// feedSubscriber is one connected feed client. Deliveries follow the same
// visibility rule as the REST endpoints: managers see everything, agents only
// activities on leads assigned to them.
type feedSubscriber struct {
	user *models.User
	ch   chan *models.Activity
}

// feedHub fans committed activities out to websocket subscribers. A slow
// subscriber is dropped rather than blocking the writers.
type feedHub struct {
	mu          sync.Mutex
	subscribers map[*feedSubscriber]struct{}
}

var activityFeed = &feedHub{
	subscribers: make(map[*feedSubscriber]struct{}),
}

func (h *feedHub) subscribe(user *models.User) *feedSubscriber {
	sub := &feedSubscriber{
		user: user,
		ch:   make(chan *models.Activity, 16),
	}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *feedHub) unsubscribe(sub *feedSubscriber) {
	h.mu.Lock()
	delete(h.subscribers, sub)
	h.mu.Unlock()
}

func (h *feedHub) broadcast(activity *models.Activity, assignedTo *uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		if !sub.user.IsManager() {
			if assignedTo == nil || *assignedTo != sub.user.ID {
				continue
			}
		}
		select {
		case sub.ch <- activity:
		default:
			delete(h.subscribers, sub)
			close(sub.ch)
		}
	}
}

// BroadcastActivity publishes a committed activity to the live feed.
// assignedTo is the owning lead's assignment and scopes delivery per
// subscriber. Call it only after the surrounding transaction has committed.
func BroadcastActivity(activity *models.Activity, assignedTo *uint) {
	activityFeed.broadcast(activity, assignedTo)
}

// HandleActivityFeedWS streams committed activities to the client until the
// connection closes.
func HandleActivityFeedWS(c *websocket.Conn) {
	defer c.Close()

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return
	}

	sub := activityFeed.subscribe(user)
	defer activityFeed.unsubscribe(sub)

	// The client never sends data, but reading is what surfaces the close
	// frame. Without a read pump an idle disconnected client lingers until
	// its buffer overflows.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	streamActivities(c, sub.ch, done)
}

type feedWriter interface {
	WriteJSON(v interface{}) error
}

func streamActivities(w feedWriter, ch <-chan *models.Activity, done <-chan struct{}) {
	for {
		select {
		case activity, open := <-ch:
			if !open {
				return
			}
			if err := w.WriteJSON(activity); err != nil {
				log.Printf("activity feed write failed: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
