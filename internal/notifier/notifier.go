// Package notifier re-derives the overdue/upcoming-deadline picture
// from the store on a fixed interval and queues user-facing alerts.
// It never mutates the store and never calls UI code: the only outputs
// are the in-app queue and an optional secondary channel.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/inpredservice11-beep/instruments/config"
	"github.com/inpredservice11-beep/instruments/internal/metrics"
	"github.com/inpredservice11-beep/instruments/internal/models"
)

// IssueSource is the read-only slice of the repository the poller needs.
type IssueSource interface {
	ActiveIssuesForReturn(ctx context.Context) ([]models.ReturnCandidate, error)
}

// Sender mirrors a notification to a secondary channel (e.g. a
// messaging bot). Failures are logged and never block the queue entry.
type Sender interface {
	Send(title, body string) error
}

// Notifier polls the store and feeds the queue. Lifecycle is
// Stopped -> Running (Start) -> Stopped (Stop); stop is observed within
// one interval and a cycle always composes messages fully before
// enqueueing, so the queue never sees a half-built message.
type Notifier struct {
	log     *slog.Logger
	source  IssueSource
	queue   *Queue
	sender  Sender
	metrics *metrics.Metrics
	cfg     config.NotifierConfig
	now     func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates a notifier. The sender may be nil when no secondary
// channel is configured.
func New(
	log *slog.Logger,
	source IssueSource,
	queue *Queue,
	sender Sender,
	appMetrics *metrics.Metrics,
	cfg config.NotifierConfig,
) *Notifier {
	return &Notifier{
		log:     log,
		source:  source,
		queue:   queue,
		sender:  sender,
		metrics: appMetrics,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Queue returns the queue the notifier feeds.
func (n *Notifier) Queue() *Queue {
	return n.queue
}

// Start launches the poll loop. Calling Start on a running notifier is
// a no-op.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running {
		return
	}
	n.running = true
	n.stop = make(chan struct{})
	n.done = make(chan struct{})

	go n.loop(ctx, n.stop, n.done)
	n.log.Info("Deadline notifier started", "interval", n.cfg.Interval)
}

// Stop signals the loop and waits for it to finish the current cycle,
// bounded by one poll interval.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return
	}
	n.running = false
	stop, done := n.stop, n.done
	n.mu.Unlock()

	close(stop)
	select {
	case <-done:
	case <-time.After(n.cfg.Interval):
		n.log.Warn("Deadline notifier did not stop within one interval")
	}
	n.log.Info("Deadline notifier stopped")
}

func (n *Notifier) loop(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(n.cfg.Interval)
	defer ticker.Stop()

	n.runCycle(ctx)
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.runCycle(ctx)
		}
	}
}

// runCycle derives the overdue and upcoming pictures once and emits at
// most one message per notification class.
func (n *Notifier) runCycle(ctx context.Context) {
	candidates, err := n.source.ActiveIssuesForReturn(ctx)
	if err != nil {
		n.log.Error("Notifier failed to read active issues", "error", err)
		return
	}

	now := n.now()
	var critical, overdue, upcoming []models.ReturnCandidate
	for _, candidate := range candidates {
		switch {
		case candidate.Overdue && models.OverdueDays(candidate.ExpectedReturn, now) >= n.cfg.CriticalDays:
			critical = append(critical, candidate)
		case candidate.Overdue:
			overdue = append(overdue, candidate)
		case models.DaysLeft(candidate.ExpectedReturn, now) <= n.cfg.UpcomingDays:
			upcoming = append(upcoming, candidate)
		}
	}

	n.emit("critical", "Critical overdue tools", critical, now, describeOverdue)
	n.emit("overdue", "Overdue tools", overdue, now, describeOverdue)
	n.emit("upcoming", "Return deadlines approaching", upcoming, now, describeUpcoming)

	n.metrics.NotifierCycles.Inc()
}

// emit composes one batched message for a class and delivers it to the
// queue and, when configured, the secondary channel. Items beyond the
// verbatim cap collapse into an "and N more" suffix so notification
// volume stays bounded under load.
func (n *Notifier) emit(
	class, title string,
	items []models.ReturnCandidate,
	now time.Time,
	describe func(models.ReturnCandidate, time.Time) string,
) {
	if len(items) == 0 {
		return
	}

	var builder strings.Builder
	listed := len(items)
	if listed > n.cfg.MaxListed {
		listed = n.cfg.MaxListed
	}
	for _, item := range items[:listed] {
		builder.WriteString(describe(item, now))
		builder.WriteString("\n")
	}
	if rest := len(items) - listed; rest > 0 {
		builder.WriteString(fmt.Sprintf("… and %d more\n", rest))
	}
	body := strings.TrimRight(builder.String(), "\n")

	n.queue.Push(Notification{Title: title, Body: body})
	n.metrics.NotificationsQueued.WithLabelValues(class).Inc()

	if n.sender != nil {
		if err := n.sender.Send(title, body); err != nil {
			n.log.Warn("Secondary notification channel failed", "title", title, "error", err)
		}
	}
}

func describeOverdue(item models.ReturnCandidate, now time.Time) string {
	days := models.OverdueDays(item.ExpectedReturn, now)
	return fmt.Sprintf("• %s (%s) — %s, %d day(s) overdue",
		item.ToolName, item.InventoryNumber, item.EmployeeName, days)
}

func describeUpcoming(item models.ReturnCandidate, now time.Time) string {
	left := models.DaysLeft(item.ExpectedReturn, now)
	if left == 0 {
		return fmt.Sprintf("• %s (%s) — %s, due today",
			item.ToolName, item.InventoryNumber, item.EmployeeName)
	}
	return fmt.Sprintf("• %s (%s) — %s, due in %d day(s)",
		item.ToolName, item.InventoryNumber, item.EmployeeName, left)
}
