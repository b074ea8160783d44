package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/checklist-go/internal/checklist"
	"github.com/nibzard/checklist-go/internal/logging"
)

// recordingNotifier captures every notification attempt.
type recordingNotifier struct {
	calls []struct{ title, message string }
	err   error
	panic bool
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.calls = append(n.calls, struct{ title, message string }{title, message})
	if n.panic {
		panic("notifier exploded")
	}
	return n.err
}

// fixedNow pins the scheduler clock.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

func newTestScheduler(n Notifier) *Scheduler {
	return New(n, logging.Discard(), WithClock(func() time.Time { return fixedNow }))
}

func taskWithReminder(text, reminder string) *checklist.Task {
	t := checklist.NewTask(text)
	t.Reminder = reminder
	return t
}

func TestScanFiresDueReminderOnce(t *testing.T) {
	c := checklist.New()
	cat := c.AddCategory("Work")
	cat.AddTask(taskWithReminder("call the vendor", "2025-06-01T11:59:00"))

	notifier := &recordingNotifier{}
	s := newTestScheduler(notifier)

	report := s.Scan(c)
	if report.Fired != 1 || report.Corrupted != 0 {
		t.Fatalf("report: got %+v, want Fired=1 Corrupted=0", report)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notification count: got %d, want 1", len(notifier.calls))
	}
	if got := notifier.calls[0].title; got != "Reminder: Work" {
		t.Errorf("title: got %q, want Reminder: Work", got)
	}
	if got := notifier.calls[0].message; got != "call the vendor" {
		t.Errorf("message: got %q, want the task text", got)
	}
	if got := cat.Tasks[0].Reminder; got != "" {
		t.Errorf("reminder should be cleared after firing, got %q", got)
	}

	// A second scan sees no reminder and fires nothing.
	notifier.calls = nil
	if report := s.Scan(c); report.Changed() {
		t.Errorf("second scan should be a no-op, got %+v", report)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("second scan should not notify, got %d calls", len(notifier.calls))
	}
}

func TestScanReminderAtExactNowFires(t *testing.T) {
	c := checklist.New()
	c.AddCategory("Work").AddTask(taskWithReminder("on the dot", fixedNow.Format(checklist.TimestampLayout)))

	notifier := &recordingNotifier{}
	if report := newTestScheduler(notifier).Scan(c); report.Fired != 1 {
		t.Errorf("reminder equal to now should fire, got %+v", report)
	}
}

func TestScanLeavesFutureReminder(t *testing.T) {
	c := checklist.New()
	cat := c.AddCategory("Work")
	cat.AddTask(taskWithReminder("later", "2025-06-01T12:00:01"))

	notifier := &recordingNotifier{}
	report := newTestScheduler(notifier).Scan(c)
	if report.Changed() {
		t.Errorf("future reminder should not change anything, got %+v", report)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("future reminder should not notify")
	}
	if cat.Tasks[0].Reminder == "" {
		t.Errorf("future reminder should be left in place")
	}
}

func TestScanClearsCorruptedReminderWithoutNotifying(t *testing.T) {
	c := checklist.New()
	cat := c.AddCategory("Work")
	cat.AddTask(taskWithReminder("broken", "not-a-timestamp"))

	notifier := &recordingNotifier{}
	report := newTestScheduler(notifier).Scan(c)
	if report.Corrupted != 1 || report.Fired != 0 {
		t.Fatalf("report: got %+v, want Corrupted=1 Fired=0", report)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("corrupted reminder must not notify")
	}
	if cat.Tasks[0].Reminder != "" {
		t.Errorf("corrupted reminder should be cleared")
	}
}

func TestScanClearsReminderDespiteNotifierError(t *testing.T) {
	c := checklist.New()
	cat := c.AddCategory("Work")
	cat.AddTask(taskWithReminder("flaky", "2025-06-01T11:00:00"))

	notifier := &recordingNotifier{err: errors.New("dbus unavailable")}
	report := newTestScheduler(notifier).Scan(c)
	if report.Fired != 1 {
		t.Errorf("report: got %+v, want Fired=1", report)
	}
	if cat.Tasks[0].Reminder != "" {
		t.Errorf("reminder must be cleared even when delivery fails")
	}
}

func TestScanClearsReminderDespiteNotifierPanic(t *testing.T) {
	c := checklist.New()
	cat := c.AddCategory("Work")
	cat.AddTask(taskWithReminder("dangerous", "2025-06-01T11:00:00"))
	cat.AddTask(taskWithReminder("second", "2025-06-01T11:30:00"))

	notifier := &recordingNotifier{panic: true}
	report := newTestScheduler(notifier).Scan(c)
	if report.Fired != 2 {
		t.Errorf("panic must not abort the scan, got %+v", report)
	}
	for i, task := range cat.Tasks {
		if task.Reminder != "" {
			t.Errorf("task %d reminder should be cleared despite panic", i)
		}
	}
}

func TestScanTruncatesLongMessages(t *testing.T) {
	c := checklist.New()
	longText := strings.Repeat("x", 150)
	c.AddCategory("Work").AddTask(taskWithReminder(longText, "2025-06-01T11:00:00"))

	notifier := &recordingNotifier{}
	newTestScheduler(notifier).Scan(c)
	if len(notifier.calls) != 1 {
		t.Fatalf("notification count: got %d, want 1", len(notifier.calls))
	}
	if got := len([]rune(notifier.calls[0].message)); got != maxMessageLen {
		t.Errorf("message length: got %d runes, want %d", got, maxMessageLen)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	c := checklist.New()
	s := New(&recordingNotifier{}, logging.Discard(), WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, c, nil)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop on context cancellation")
	}
}

func TestRunInvokesOnChange(t *testing.T) {
	c := checklist.New()
	c.AddCategory("Work").AddTask(taskWithReminder("due", "2025-06-01T11:00:00"))

	s := New(&recordingNotifier{}, logging.Discard(),
		WithInterval(10*time.Millisecond),
		WithClock(func() time.Time { return fixedNow }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan ScanReport, 1)
	go s.Run(ctx, c, func(r ScanReport) {
		select {
		case changed <- r:
		default:
		}
	})

	select {
	case r := <-changed:
		if r.Fired != 1 {
			t.Errorf("report: got %+v, want Fired=1", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("onChange was not invoked")
	}
}
