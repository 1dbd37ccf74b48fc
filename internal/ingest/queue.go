package ingest

import "sync"

// ActionAdd is the only action readers produce.
const ActionAdd = "add"

// Item is one unit of work handed from a reader to the drain loop.
type Item struct {
	Action  string
	Message string
}

// Queue is an unbounded FIFO shared by reader goroutines and the drain loop.
// Push never blocks; Drain takes everything currently queued.
type Queue struct {
	mu    sync.Mutex
	items []Item
}

// Push appends an item.
func (q *Queue) Push(it Item) {
	q.mu.Lock()
	q.items = append(q.items, it)
	q.mu.Unlock()
}

// Drain removes and returns all queued items in arrival order.
func (q *Queue) Drain() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
