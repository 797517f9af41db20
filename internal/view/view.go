// Package view holds the per-session user list view: the one-shot loader,
// the list state and the pure table rendering.
package view

import (
	"context"
	"errors"
	"sync"

	"github.com/BorisRostovskiy/usertable/internal/clients/usersapi"
	"github.com/BorisRostovskiy/usertable/internal/service"
	"github.com/BorisRostovskiy/usertable/internal/toast"
	"github.com/sirupsen/logrus"
)

const (
	MsgLoaded     = "Data Fetched"
	MsgLoadFailed = "Error Fetching Data"
)

// Status of the loader. Loaded and Failed are terminal.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UsersLister is the read side of the users endpoint
type UsersLister interface {
	ListUsers(ctx context.Context) ([]service.User, error)
}

// Snapshot is a consistent copy of the view state
type Snapshot struct {
	Status Status         `json:"status"`
	Users  []service.User `json:"users"`
}

type UserListView struct {
	id      string
	users   UsersLister
	notify  toast.Channel
	log     logrus.FieldLogger
	metrics *Metrics

	mu       sync.Mutex
	state    ListState
	status   Status
	notified bool
	mounted  bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(id string, users UsersLister, notify toast.Channel, log logrus.FieldLogger, m *Metrics) *UserListView {
	return &UserListView{
		id:      id,
		users:   users,
		notify:  notify,
		log:     log.WithFields(logrus.Fields{"component": "user_list_view", "view": id}),
		metrics: m,
		done:    make(chan struct{}),
	}
}

func (v *UserListView) ID() string {
	return v.id
}

// Mount starts the one-time load in the background. Only the first call
// on a fresh view does anything, ctx bounds the load.
func (v *UserListView) Mount(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status != StatusIdle {
		return
	}
	ctx, v.cancel = context.WithCancel(ctx)
	v.mounted = true
	v.status = StatusLoading
	v.metrics.viewMounted()
	go v.load(ctx)
}

// Unmount cancels an in-flight load; its result is then dropped.
func (v *UserListView) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.mounted = false
	v.cancel()
	v.metrics.viewUnmounted()
	v.log.Debug("view unmounted")
}

func (v *UserListView) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

func (v *UserListView) load(ctx context.Context) {
	defer close(v.done)
	users, err := v.users.ListUsers(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		v.log.Debug("view gone before users arrived, result dropped")
		return
	}

	if err == nil {
		v.state.Replace(users)
		v.status = StatusLoaded
		v.metrics.loadFinished(v.status)
		v.log.Debugf("loaded %d users", len(users))
		v.notifyOnce(v.notify.NotifySuccess, MsgLoaded)
		return
	}

	v.state.Replace(nil)
	v.status = StatusFailed
	v.metrics.loadFinished(v.status)
	var shapeErr *usersapi.ShapeError
	if errors.As(err, &shapeErr) {
		v.log.WithError(err).Error("users api response is not an array")
	} else {
		v.log.WithError(err).Error("error fetching users")
	}
	v.notifyOnce(v.notify.NotifyFailure, MsgLoadFailed)
}

// notifyOnce must be called with mu held
func (v *UserListView) notifyOnce(notify func(string), msg string) {
	if v.notified {
		return
	}
	v.notified = true
	notify(msg)
	v.metrics.notified(msg)
}

// Await blocks until the load settled or ctx is done. It returns at once
// for a view that was never mounted.
func (v *UserListView) Await(ctx context.Context) error {
	v.mu.Lock()
	idle := v.status == StatusIdle
	v.mu.Unlock()
	if idle {
		return nil
	}
	select {
	case <-v.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AppendRecord is the onUserCreated callback: no validation, no request.
func (v *UserListView) AppendRecord(u service.User) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Append(u)
	v.metrics.appended()
}

func (v *UserListView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{Status: v.status, Users: v.state.Snapshot()}
}
