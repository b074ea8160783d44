// Package reminder scans checklist tasks for due reminders and fires
// one-shot notifications.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/checklist"
)

// DefaultInterval is the cadence of the recurring scan.
const DefaultInterval = 30 * time.Second

// maxMessageLen caps the notification message length in runes.
const maxMessageLen = 100

// Notifier is the external notification capability. The engine treats
// any error or panic from Notify as a no-op and proceeds regardless.
type Notifier interface {
	Notify(title, message string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, message string) error

// Notify calls f.
func (f NotifierFunc) Notify(title, message string) error {
	return f(title, message)
}

// ScanReport summarizes a single scan pass.
type ScanReport struct {
	// Fired is the number of reminders that triggered a notification attempt.
	Fired int
	// Corrupted is the number of unparsable reminders that were cleared.
	Corrupted int
}

// Changed reports whether the scan mutated any task, meaning the caller
// should persist the checklist and refresh its view.
func (r ScanReport) Changed() bool {
	return r.Fired > 0 || r.Corrupted > 0
}

// Scheduler runs the recurring reminder scan. It is single-threaded and
// cooperative: each scan runs to completion before the next is armed,
// so scan duration extends the effective interval.
type Scheduler struct {
	notifier Notifier
	logger   *log.Logger
	interval time.Duration
	now      func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval overrides the scan interval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock overrides the time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a scheduler delivering through the given notifier.
func New(notifier Notifier, logger *log.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		notifier: notifier,
		logger:   logger,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// triggered captures a due reminder for delivery: the category name for
// the title, and the task so its reminder can be cleared after the
// notification attempt.
type triggered struct {
	categoryName string
	task         *checklist.Task
}

// Scan visits every task in every category. Due reminders fire exactly
// one notification attempt each and are cleared no matter how delivery
// goes; unparsable reminders are cleared immediately without a
// notification. A task never carries a stale or malformed reminder out
// of a scan.
func (s *Scheduler) Scan(c *checklist.Checklist) ScanReport {
	var report ScanReport
	var due []triggered
	now := s.now()

	for _, cat := range c.Categories {
		for _, task := range cat.Tasks {
			if task.Reminder == "" {
				continue
			}
			at, ok := checklist.ParseTimestamp(task.Reminder)
			if !ok {
				s.logger.Warn("clearing corrupted reminder", "category", cat.Name, "task", task.Text)
				task.ClearReminder()
				report.Corrupted++
				continue
			}
			if !at.After(now) {
				due = append(due, triggered{categoryName: cat.Name, task: task})
			}
		}
	}

	for _, tr := range due {
		title := fmt.Sprintf("Reminder: %s", tr.categoryName)
		if err := s.notify(title, truncate(tr.task.Text, maxMessageLen)); err != nil {
			s.logger.Warn("notification failed", "task", tr.task.Text, "err", err)
		}
		// Cleared regardless of delivery so a failing notifier can
		// never leave a reminder in a re-fire loop.
		tr.task.ClearReminder()
		report.Fired++
	}

	if report.Changed() {
		s.logger.Debug("reminder scan", "fired", report.Fired, "corrupted", report.Corrupted)
	}
	return report
}

// notify calls the notifier, converting a panic into an error.
func (s *Scheduler) notify(title, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()
	return s.notifier.Notify(title, message)
}

// Run scans on the configured interval until ctx is canceled. The timer
// is re-armed after each scan completes, not on a fixed rate. When a
// scan changed any task, onChange is invoked so the caller can persist
// the checklist and refresh its view.
func (s *Scheduler) Run(ctx context.Context, c *checklist.Checklist, onChange func(ScanReport)) {
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if report := s.Scan(c); report.Changed() && onChange != nil {
				onChange(report)
			}
			timer.Reset(s.interval)
		}
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
