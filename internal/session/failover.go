package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverStore serves sessions from the primary store and degrades to the
// fallback when the primary errors. After a minute it probes the primary
// again. Sessions created while degraded live only in the fallback, which is
// accepted: a Redis outage costs at worst a re-login.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

const recoveryProbeInterval = time.Minute

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("primary session store failed, falling back to memory")
	s.isDown.Store(true)
	s.lastCheck.Store(time.Now().UnixNano())
}

func (s *FailoverStore) shouldProbe() bool {
	return time.Since(time.Unix(0, s.lastCheck.Load())) > recoveryProbeInterval
}

func (s *FailoverStore) Create(ctx context.Context, token string, sess *Session) error {
	if !s.isDown.Load() || s.shouldProbe() {
		err := s.primary.Create(ctx, token, sess)
		if err == nil {
			s.isDown.Store(false)
			return nil
		}
		s.markDown(err)
	}
	return s.fallback.Create(ctx, token, sess)
}

func (s *FailoverStore) Get(ctx context.Context, token string) (*Session, error) {
	if !s.isDown.Load() || s.shouldProbe() {
		sess, err := s.primary.Get(ctx, token)
		if err == nil {
			s.isDown.Store(false)
			return sess, nil
		}
		s.markDown(err)
	}
	return s.fallback.Get(ctx, token)
}

func (s *FailoverStore) Delete(ctx context.Context, token string) error {
	var primaryErr error
	if !s.isDown.Load() || s.shouldProbe() {
		primaryErr = s.primary.Delete(ctx, token)
		if primaryErr != nil {
			s.markDown(primaryErr)
		} else {
			s.isDown.Store(false)
		}
	}
	// Delete from both so a recovered primary cannot resurrect the session.
	if err := s.fallback.Delete(ctx, token); err != nil {
		return err
	}
	return primaryErr
}
