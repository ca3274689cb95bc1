package helper

import (
	"time"

	"event_manager/database"
	"event_manager/logger"
	"event_manager/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var expiryScheduler *cron.Cron
var eventStatusScheduler gocron.Scheduler

// StartTicketExpiryScheduler sweeps booked tickets of past events every five
// minutes. SkipIfStillRunning keeps a slow sweep from stacking up.
func StartTicketExpiryScheduler() {
	expiryScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := expiryScheduler.AddFunc("*/5 * * * *", func() {
		ExpireTickets()
	})
	if err != nil {
		logger.Errorf("failed to start ticket expiry scheduler: %v", err)
		return
	}

	expiryScheduler.Start()
	logger.Infof("ticket expiry scheduler started (every 5 minutes)")
}

func StopTicketExpiryScheduler() {
	if expiryScheduler != nil {
		expiryScheduler.Stop()
	}
}

// CompleteFinishedEvents moves published events whose date has passed to
// COMPLETED. Events are never deleted; status is their whole lifecycle.
func CompleteFinishedEvents() {
	res := database.DB.Model(&model.Event{}).
		Where("status = ? AND date < ?", model.EventPublished, time.Now()).
		Update("status", model.EventCompleted)

	if res.Error != nil {
		logger.Errorf("event completion sweep failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		logger.Infof("marked %d events as completed", res.RowsAffected)
	}
}

// StartEventStatusScheduler runs the completion sweep daily, shortly after
// midnight.
func StartEventStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Errorf("failed to create event status scheduler: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(CompleteFinishedEvents),
	)
	if err != nil {
		logger.Errorf("failed to schedule event completion job: %v", err)
		return
	}

	s.Start()
	eventStatusScheduler = s
	logger.Infof("event status scheduler started (daily at 00:05)")
}

func StopEventStatusScheduler() {
	if eventStatusScheduler != nil {
		eventStatusScheduler.Shutdown()
	}
}
