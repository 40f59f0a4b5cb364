package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/retina.care/internal/services/web/storage"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string]storage.SessionRecord
	puts    int
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]storage.SessionRecord{}}
}

func (s *memoryStore) GetSession(_ context.Context, id string) (storage.SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return storage.SessionRecord{}, false, s.err
	}
	record, ok := s.records[id]
	if !ok || !record.ExpiresAt.After(time.Now()) {
		return storage.SessionRecord{}, false, nil
	}
	return record, true, nil
}

func (s *memoryStore) PutSession(_ context.Context, record storage.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.puts++
	s.records[record.ID] = record
	return nil
}

func (s *memoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *memoryStore) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, record := range s.records {
		if !record.ExpiresAt.After(now) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

var errStoreDown = errors.New("store down")

func recordExpiringAt(id string, expiresAt time.Time) storage.SessionRecord {
	return storage.SessionRecord{ID: id, Token: "token-" + id, ExpiresAt: expiresAt}
}

// sessionRequest returns a request carrying the cookie set on rr, if any.
func sessionRequest(method, target string, rr *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if rr == nil {
		return req
	}
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == sessioncookie.Name && cookie.MaxAge >= 0 {
			req.AddCookie(cookie)
		}
	}
	return req
}
