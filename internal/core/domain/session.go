package domain

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Ticket identifies one in-flight transform. A ticket issued before a reset no longer matches
// the session and its outcome is dropped.
type Ticket uint64

// Session is the per-chat state of the upload, configure, submit and display workflow.
type Session struct {
	mu         sync.Mutex
	settings   TransformSettings
	source     *SourceImage
	result     *ImagePayload
	lastErr    string
	busy       bool
	generation Ticket
	touched    time.Time
	evicted    bool
}

func NewSession() *Session {
	return &Session{
		settings: DefaultSettings(),
		touched:  time.Now(),
	}
}

func (s *Session) Settings() TransformSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings
}

// UpdateSettings applies fn to a copy of the settings and stores it if the result is valid.
func (s *Session) UpdateSettings(fn func(*TransformSettings) error) (TransformSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.settings
	if err := fn(&updated); err != nil {
		return s.settings, err
	}
	if err := updated.Validate(); err != nil {
		return s.settings, err
	}

	s.settings = updated
	s.touched = time.Now()

	return s.settings, nil
}

// Upload replaces the source image and discards any previous result or error.
func (s *Session) Upload(src SourceImage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = &src
	s.result = nil
	s.lastErr = ""
	s.touched = time.Now()
}

func (s *Session) Source() (SourceImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == nil {
		return SourceImage{}, false
	}

	return *s.source, true
}

// Begin marks a transform as in flight. It fails with ErrNoImage before an upload and with
// ErrBusy while another transform is pending. Any previous result and error are cleared.
func (s *Session) Begin() (Ticket, SourceImage, TransformSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == nil {
		s.lastErr = UserMessage(ErrNoImage)
		return 0, SourceImage{}, s.settings, ErrNoImage
	}
	if s.busy {
		return 0, SourceImage{}, s.settings, ErrBusy
	}

	s.busy = true
	s.result = nil
	s.lastErr = ""
	s.generation++
	s.touched = time.Now()

	return s.generation, *s.source, s.settings, nil
}

// Complete stores a successful result. It reports false if the session was reset meanwhile.
func (s *Session) Complete(t Ticket, result ImagePayload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t != s.generation {
		return false
	}

	s.busy = false
	s.result = &result
	s.lastErr = ""
	s.touched = time.Now()

	return true
}

// Fail records a failed transform and clears any result so no stale image is shown next to
// the error. It reports false if the session was reset meanwhile.
func (s *Session) Fail(t Ticket, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t != s.generation {
		return false
	}

	s.busy = false
	s.result = nil
	s.lastErr = UserMessage(err)
	s.touched = time.Now()

	return true
}

// Reset re-initialises the session. A transform still in flight is not aborted, but its
// outcome will no longer be recorded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = DefaultSettings()
	s.source = nil
	s.result = nil
	s.lastErr = ""
	s.busy = false
	s.generation++
	s.touched = time.Now()
}

func (s *Session) Result() (ImagePayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return ImagePayload{}, false
	}

	return *s.result, true
}

func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.busy
}

// claim marks the session as used. It reports false once the session has been evicted.
func (s *Session) claim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.evicted {
		return false
	}
	s.touched = time.Now()

	return true
}

// evictIfIdle marks a session that is not busy and was last used more than ttl before now as
// evicted. An evicted session can no longer be claimed.
func (s *Session) evictIfIdle(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy || now.Sub(s.touched) <= ttl {
		return false
	}
	s.evicted = true

	return true
}

// SessionStore keeps one in-memory session per chat.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Get returns the session of the chat, creating it on first use.
func (st *SessionStore) Get(chatID int64) *Session {
	for {
		v, _ := st.sessions.LoadOrStore(chatID, NewSession())
		s := v.(*Session)
		if s.claim() {
			return s
		}
		// lost the race against Prune, drop the evicted entry and retry
		st.sessions.CompareAndDelete(chatID, s)
	}
}

func (st *SessionStore) Len() int {
	n := 0
	st.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// Busy returns how many sessions have a transform in flight.
func (st *SessionStore) Busy() int {
	n := 0
	st.sessions.Range(func(_, value any) bool {
		if value.(*Session).Busy() {
			n++
		}
		return true
	})

	return n
}

// Prune drops sessions idle for longer than ttl and returns how many were removed.
func (st *SessionStore) Prune(now time.Time, ttl time.Duration) int {
	removed := 0
	st.sessions.Range(func(key, value any) bool {
		s := value.(*Session)
		if s.evictIfIdle(now, ttl) && st.sessions.CompareAndDelete(key, s) {
			removed++
		}
		return true
	})

	return removed
}

// Expire prunes idle sessions every ttl until ctx is done.
func (st *SessionStore) Expire(ctx context.Context, ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			if n := st.Prune(now, ttl); n > 0 {
				log.Debug().Int("sessions", n).Msg("expired idle sessions")
			}
		case <-ctx.Done():
			log.Debug().Msg("stopping session expiry")
			return
		}
	}
}
