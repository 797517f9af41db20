// Package toast queues transient user-visible notices for one view.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Channel is the fire-and-forget side of the queue handed to producers.
type Channel interface {
	NotifySuccess(msg string)
	NotifyFailure(msg string)
}

// Queue holds toasts until they are dismissed or older than the ttl.
// A zero ttl keeps toasts until dismissed.
type Queue struct {
	mu    sync.Mutex
	items []Toast
	ttl   time.Duration
	log   logrus.FieldLogger

	now   func() time.Time
	newID func() string
}

func NewQueue(ttl time.Duration, log logrus.FieldLogger) *Queue {
	return &Queue{
		ttl:   ttl,
		log:   log.WithField("component", "toast"),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (q *Queue) NotifySuccess(msg string) {
	q.push(KindSuccess, msg)
}

func (q *Queue) NotifyFailure(msg string) {
	q.push(KindError, msg)
}

func (q *Queue) push(kind Kind, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := Toast{ID: q.newID(), Kind: kind, Message: msg, CreatedAt: q.now()}
	q.items = append(q.items, t)
	q.log.WithField("kind", kind).Debugf("queued toast %s: %s", t.ID, msg)
}

// Active returns queued toasts oldest first, dropping expired ones.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prune()
	out := make([]Toast, len(q.items))
	copy(out, q.items)
	return out
}

// Dismiss removes a toast, it reports false for unknown or expired ids.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prune()
	for i, t := range q.items {
		if t.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) prune() {
	if q.ttl <= 0 {
		return
	}
	now := q.now()
	kept := q.items[:0]
	for _, t := range q.items {
		if now.Sub(t.CreatedAt) < q.ttl {
			kept = append(kept, t)
		}
	}
	q.items = kept
}
