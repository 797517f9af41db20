package view

import (
	"context"
	"sync"
	"time"

	"github.com/BorisRostovskiy/usertable/internal/service"
	"github.com/BorisRostovskiy/usertable/internal/toast"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

type Config struct {
	SessionTTL time.Duration `yaml:"session_ttl"`
	RenderWait time.Duration `yaml:"render_wait"`
	ToastTTL   time.Duration `yaml:"toast_ttl"`
}

func (c Config) WithDefaults() Config {
	if c.SessionTTL <= 0 {
		c.SessionTTL = 30 * time.Minute
	}
	if c.RenderWait <= 0 {
		c.RenderWait = 2 * time.Second
	}
	if c.ToastTTL < 0 {
		c.ToastTTL = 0
	}
	return c
}

// Session is one mounted view plus its notification queue
type Session struct {
	View   *UserListView
	Toasts *toast.Queue
}

// OnUserCreated is the callback handed to the create modal
func (s *Session) OnUserCreated() func(service.User) {
	return s.View.AppendRecord
}

// Registry owns the views of all browser sessions. A session idle for
// longer than SessionTTL is evicted and its view unmounted.
type Registry struct {
	mu      sync.Mutex
	ctx     context.Context
	users   UsersLister
	cfg     Config
	log     logrus.FieldLogger
	metrics *Metrics
	cache   *cache.Cache
}

// NewRegistry creates a registry, ctx is the parent of every load.
func NewRegistry(ctx context.Context, users UsersLister, cfg Config, log logrus.FieldLogger, m *Metrics) *Registry {
	cfg = cfg.WithDefaults()
	r := &Registry{
		ctx:     ctx,
		users:   users,
		cfg:     cfg,
		log:     log,
		metrics: m,
		cache:   cache.New(cfg.SessionTTL, cfg.SessionTTL/2),
	}
	r.cache.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.View.Unmount()
			r.log.WithField("component", "registry").Debugf("session %s evicted", id)
		}
	})
	return r
}

func (r *Registry) Config() Config {
	return r.cfg
}

// Lookup returns a live session and extends its lifetime.
func (r *Registry) Lookup(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(id)
}

func (r *Registry) lookup(id string) (*Session, bool) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	if !s.View.Mounted() {
		return nil, false
	}
	r.cache.SetDefault(id, s)
	return s, true
}

// Open returns the session for id, mounting a fresh view when there is none.
func (r *Registry) Open(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.lookup(id); ok {
		return s
	}
	toasts := toast.NewQueue(r.cfg.ToastTTL, r.log)
	s := &Session{
		View:   New(id, r.users, toasts, r.log, r.metrics),
		Toasts: toasts,
	}
	r.cache.SetDefault(id, s)
	s.View.Mount(r.ctx)
	return s
}

// Close unmounts and forgets the session
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(id)
}

// Shutdown unmounts every view
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.cache.Items() {
		r.cache.Delete(id)
	}
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}
