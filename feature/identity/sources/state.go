package sources

import (
	"context"
	"regexp"
	"sync"
	"time"

	"ingress-identity/feature/identity/models"

	"go.uber.org/zap"
)

// HasPlayers is implemented by every node of the tree.
type HasPlayers interface {
	HasPlayer(oid string) bool
	GetPlayer(oid string) (*models.Player, bool)
	// FindOids returns the sorted oids whose field ("name" or "nickname") matches re.
	FindOids(field string, re *regexp.Regexp) []string
}

// State is the lifecycle state of a node. StateFailed marks a node whose loads
// have never succeeded; a node that loaded once stays ready after a failed reload.
type State string

const (
	StateNew       State = "new"
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateReloading State = "reloading"
	StateFailed    State = "failed"
)

// Searchable player fields.
const (
	FieldName     = "name"
	FieldNickname = "nickname"
)

// Option configures a node.
type Option func(*options)

type options struct {
	logger         *zap.Logger
	defaultRefresh time.Duration
	now            func() time.Time
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDefaultRefresh sets the refresh interval for manifest rows without one.
func WithDefaultRefresh(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.defaultRefresh = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), defaultRefresh: time.Hour, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// readiness tracks in-flight loads. wait returns once none are running.
type readiness struct {
	mu       sync.Mutex
	inflight int
	done     chan struct{}
}

func newReadiness() *readiness {
	done := make(chan struct{})
	close(done)
	return &readiness{done: done}
}

func (r *readiness) begin() {
	r.mu.Lock()
	if r.inflight == 0 {
		r.done = make(chan struct{})
	}
	r.inflight++
	r.mu.Unlock()
}

func (r *readiness) finish() {
	r.mu.Lock()
	r.inflight--
	if r.inflight == 0 {
		close(r.done)
	}
	r.mu.Unlock()
}

func (r *readiness) wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func fieldValue(p *models.Player, field string) (string, bool) {
	switch field {
	case FieldName:
		return p.Name, true
	case FieldNickname:
		return p.Nickname, true
	default:
		return "", false
	}
}
