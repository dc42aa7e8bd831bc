package notifier

import "sync"

// Notification is one user-facing message: a short title and a
// composed body. Delivery collaborators render it as-is.
type Notification struct {
	Title string
	Body  string
}

// Queue is the thread-safe buffer between the background poller and
// the foreground drain step. The poller only appends, the UI-side
// consumer periodically takes everything at once.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends one notification.
func (q *Queue) Push(item Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, item)
}

// Drain removes and returns every queued notification in FIFO order.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
