package controller

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"estatecrm/models"
	"estatecrm/utils"
)

func newHub() *feedHub {
	return &feedHub{subscribers: make(map[*feedSubscriber]struct{})}
}

func TestFeedHubDeliversToEveryManager(t *testing.T) {
	hub := newHub()

	first := hub.subscribe(&models.User{Model: gorm.Model{ID: 1}, Role: models.RoleSuperAdmin})
	second := hub.subscribe(&models.User{Model: gorm.Model{ID: 2}, Role: models.RoleSalesSupervisor})

	activity := &models.Activity{Type: models.ActivityComment, Description: "hello"}
	hub.broadcast(activity, utils.Pointer(uint(4)))

	for _, sub := range []*feedSubscriber{first, second} {
		select {
		case got := <-sub.ch:
			assert.Equal(t, "hello", got.Description)
		default:
			t.Fatal("manager subscriber did not receive the broadcast")
		}
	}
}

func TestFeedHubScopesAgentsByLeadAssignment(t *testing.T) {
	hub := newHub()

	agent := hub.subscribe(&models.User{Model: gorm.Model{ID: 3}, Role: models.RoleSalesAgent})
	otherAgent := hub.subscribe(&models.User{Model: gorm.Model{ID: 4}, Role: models.RoleSalesAgent})
	supervisor := hub.subscribe(&models.User{Model: gorm.Model{ID: 2}, Role: models.RoleSalesSupervisor})

	// Activity on a lead assigned to agent 3: agent 4 must not see it.
	hub.broadcast(&models.Activity{LeadID: 1, Description: "mine"}, utils.Pointer(uint(3)))

	select {
	case got := <-agent.ch:
		assert.Equal(t, "mine", got.Description)
	default:
		t.Fatal("assigned agent did not receive the broadcast")
	}
	select {
	case <-otherAgent.ch:
		t.Fatal("agent received an activity for a lead assigned to someone else")
	default:
	}
	select {
	case got := <-supervisor.ch:
		assert.Equal(t, "mine", got.Description)
	default:
		t.Fatal("supervisor did not receive the broadcast")
	}

	// Unassigned lead: managers only.
	hub.broadcast(&models.Activity{LeadID: 2, Description: "unassigned"}, nil)

	select {
	case <-agent.ch:
		t.Fatal("agent received an activity for an unassigned lead")
	default:
	}
	select {
	case got := <-supervisor.ch:
		assert.Equal(t, "unassigned", got.Description)
	default:
		t.Fatal("supervisor did not receive the unassigned-lead broadcast")
	}
}

func TestFeedHubDropsSlowSubscriber(t *testing.T) {
	hub := newHub()

	slow := hub.subscribe(&models.User{Model: gorm.Model{ID: 1}, Role: models.RoleSuperAdmin})

	// Fill the buffer without draining
	for i := 0; i < cap(slow.ch); i++ {
		hub.broadcast(&models.Activity{Type: models.ActivityComment}, nil)
	}
	hub.mu.Lock()
	_, present := hub.subscribers[slow]
	hub.mu.Unlock()
	require.True(t, present, "a full buffer alone is not a drop")

	// One more broadcast overflows and evicts the subscriber
	hub.broadcast(&models.Activity{Type: models.ActivityComment}, nil)

	hub.mu.Lock()
	_, present = hub.subscribers[slow]
	hub.mu.Unlock()
	assert.False(t, present, "overflowing subscriber must be dropped")

	// The channel is closed once the buffered entries are drained
	for i := 0; i < cap(slow.ch); i++ {
		<-slow.ch
	}
	_, open := <-slow.ch
	assert.False(t, open)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := newHub()

	sub := hub.subscribe(&models.User{Model: gorm.Model{ID: 1}, Role: models.RoleSuperAdmin})
	hub.unsubscribe(sub)
	hub.broadcast(&models.Activity{Type: models.ActivityCall}, nil)

	select {
	case got := <-sub.ch:
		require.Nil(t, got, "unsubscribed channel must not receive")
	default:
	}
}

type captureWriter struct {
	wrote []interface{}
}

func (w *captureWriter) WriteJSON(v interface{}) error {
	w.wrote = append(w.wrote, v)
	return nil
}

func TestStreamStopsWhenConnectionCloses(t *testing.T) {
	writer := &captureWriter{}
	ch := make(chan *models.Activity, 1)
	done := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		streamActivities(writer, ch, done)
	}()

	ch <- &models.Activity{Description: "first"}

	// Closing done stands in for the read pump detecting a closed
	// connection; the stream must exit even though nothing else is
	// broadcast.
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop after the connection closed")
	}
	require.Len(t, writer.wrote, 1)
	assert.Equal(t, "first", writer.wrote[0].(*models.Activity).Description)
}

func TestRolledBackActivityIsNeverBroadcast(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Activity{}))

	sub := activityFeed.subscribe(&models.User{Model: gorm.Model{ID: 1}, Role: models.RoleSuperAdmin})
	defer activityFeed.unsubscribe(sub)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := logActivity(tx, &models.Activity{
			LeadID:      1,
			UserID:      1,
			Type:        models.ActivityComment,
			Description: "never committed",
			Date:        time.Now(),
		}); err != nil {
			return err
		}
		return errors.New("later step failed")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Activity{}).Count(&count).Error)
	assert.Zero(t, count, "rollback must discard the activity row")

	select {
	case got := <-sub.ch:
		t.Fatalf("subscriber received an uncommitted activity: %q", got.Description)
	default:
	}
}
