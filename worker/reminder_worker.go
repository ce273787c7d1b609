package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"estatecrm/models"
)

// ReminderSender delivers a meeting reminder to an agent.
type ReminderSender interface {
	SendMeetingReminder(agent *models.User, meeting *models.Meeting) error
}

// ReminderWorker notifies agents about upcoming meetings. Each meeting is
// reminded at most once; a follow_up activity marks the notification on the
// lead's timeline.
type ReminderWorker struct {
	DB       *gorm.DB
	Mailer   ReminderSender
	Logger   *log.Logger
	LeadTime time.Duration
	Interval time.Duration
}

func NewReminderWorker(db *gorm.DB, mailer ReminderSender, logger *log.Logger, leadTime time.Duration) *ReminderWorker {
	return &ReminderWorker{
		DB:       db,
		Mailer:   mailer,
		Logger:   logger,
		LeadTime: leadTime,
		Interval: time.Minute,
	}
}

func (rw *ReminderWorker) Start(ctx context.Context) {
	rw.Logger.Println("Reminder worker started")

	ticker := time.NewTicker(rw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rw.Logger.Println("Reminder worker shutting down...")
			return
		case <-ticker.C:
			if err := rw.RunOnce(time.Now()); err != nil {
				rw.Logger.Printf("reminder pass failed: %v", err)
			}
		}
	}
}

// RunOnce performs a single reminder pass relative to now.
func (rw *ReminderWorker) RunOnce(now time.Time) error {
	var meetings []models.Meeting
	if err := rw.DB.
		Where("status = ? AND reminder_sent_at IS NULL", models.MeetingScheduled).
		Find(&meetings).Error; err != nil {
		return err
	}

	for i := range meetings {
		meeting := &meetings[i]

		startsAt, err := time.ParseInLocation("2006-01-02 15:04", meeting.Date+" "+meeting.Time, now.Location())
		if err != nil {
			rw.Logger.Printf("meeting %d has unparseable slot %q %q", meeting.ID, meeting.Date, meeting.Time)
			continue
		}

		until := startsAt.Sub(now)
		if until < 0 || until > rw.LeadTime {
			continue
		}

		if err := rw.remind(meeting, now); err != nil {
			rw.Logger.Printf("reminding meeting %d failed: %v", meeting.ID, err)
		}
	}

	return nil
}

func (rw *ReminderWorker) remind(meeting *models.Meeting, now time.Time) error {
	var agent models.User
	if err := rw.DB.First(&agent, meeting.AgentID).Error; err != nil {
		return fmt.Errorf("loading agent %d: %w", meeting.AgentID, err)
	}

	if err := rw.Mailer.SendMeetingReminder(&agent, meeting); err != nil {
		return fmt.Errorf("sending reminder: %w", err)
	}

	return rw.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(meeting).Update("reminder_sent_at", now).Error; err != nil {
			return err
		}
		activity := models.Activity{
			LeadID:      meeting.LeadID,
			UserID:      meeting.AgentID,
			Type:        models.ActivityFollowUp,
			Description: fmt.Sprintf("Reminder sent for %s meeting: %s", meeting.Type, meeting.Title),
			Date:        now,
			MeetingID:   &meeting.ID,
		}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		rw.Logger.Printf("reminded agent %d about meeting %d", meeting.AgentID, meeting.ID)
		return nil
	})
}
