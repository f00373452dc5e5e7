// Package reminder nudges the user when cards are due for review.
package reminder

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/radbot/internal/progress"
	"github.com/go-co-op/gocron"
)

// Default notification window, overridable via NOTIFICATION_START_HOUR
// and NOTIFICATION_END_HOUR
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// Notifier delivers a due-cards reminder
type Notifier interface {
	SendDueReminder(count int) error
}

// Reminder runs an hourly check for due cards and notifies when any exist
type Reminder struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	store     *progress.Store
}

// New creates a reminder over the given progress store
func New(store *progress.Store, notifier Notifier) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		notifier:  notifier,
		store:     store,
	}
}

// Start begins the hourly check without blocking
func (r *Reminder) Start() {
	r.scheduler.Every(1).Hour().Do(r.check)
	r.scheduler.StartAsync()
}

// Stop terminates the scheduled check
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) check() {
	currentHour := time.Now().Hour()
	startHour := hourFromEnv("NOTIFICATION_START_HOUR", DefaultStartHour)
	endHour := hourFromEnv("NOTIFICATION_END_HOUR", DefaultEndHour)

	if currentHour < startHour || currentHour > endHour {
		return
	}

	count := r.store.DueCount()
	if count == 0 {
		return
	}
	if err := r.notifier.SendDueReminder(count); err != nil {
		log.Printf("Error sending due reminder: %v", err)
	}
}

// RunManualCheck forces a due check right away, ignoring the hour window
func (r *Reminder) RunManualCheck() error {
	count := r.store.DueCount()
	if count == 0 {
		return nil
	}
	return r.notifier.SendDueReminder(count)
}

func hourFromEnv(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
