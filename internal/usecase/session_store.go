package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lookalike/web/internal/infrastructure/metrics"
	"github.com/sirupsen/logrus"
)

const sessionKeyPrefix = "session:"

// DefaultFilterLoadTimeout bounds the background filter load of a new session
const DefaultFilterLoadTimeout = 5 * time.Second

// SessionCache stores live session controllers
type SessionCache interface {
	GetOrCreate(ctx context.Context, key string, ttl time.Duration, create func() interface{}) (interface{}, bool)
}

// SessionStore keeps one SearchController per browser session
type SessionStore struct {
	cache             SessionCache
	ttl               time.Duration
	filterLoadTimeout time.Duration
	newController     func() *SearchController
	logger            logrus.FieldLogger
}

// NewSessionStore creates a store whose sessions expire after ttl of inactivity
func NewSessionStore(cache SessionCache, ttl time.Duration, newController func() *SearchController, logger logrus.FieldLogger) *SessionStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SessionStore{
		cache:             cache,
		ttl:               ttl,
		filterLoadTimeout: DefaultFilterLoadTimeout,
		newController:     newController,
		logger:            logger.WithField("component", "sessions"),
	}
}

// SetFilterLoadTimeout bounds how long a new session waits for its filter
// options. A timeout <= 0 leaves only the client's own timeout.
func (s *SessionStore) SetFilterLoadTimeout(timeout time.Duration) {
	s.filterLoadTimeout = timeout
}

// Acquire returns the controller of session id, starting a new session when
// id is unknown, expired or malformed. New sessions start loading their
// filter options in the background. The (possibly new) session id is returned.
func (s *SessionStore) Acquire(ctx context.Context, id string) (*SearchController, string) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	value, created := s.cache.GetOrCreate(ctx, sessionKeyPrefix+id, s.ttl, func() interface{} {
		return s.newController()
	})
	ctrl := value.(*SearchController)

	if created {
		metrics.SessionsCreatedTotal.Inc()
		s.logger.WithField("session", id).Debug("session started")
		// failure is already logged and leaves empty options
		ctrl.StartLoadFilterOptions(ctx, s.filterLoadTimeout)
	}
	return ctrl, id
}
