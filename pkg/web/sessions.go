package web

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"igdebugger/pkg/panel"
	"igdebugger/pkg/proxyapi"
)

const sessionCookie = "igdebugger_session"

// session is one browser's panel. mu guards state; it is released while a
// fetch is in flight so the page stays readable.
type session struct {
	mu    sync.Mutex
	state *panel.State
}

// sessionStore keeps the most recently used panels; the least recently used
// one is dropped once limit is reached
type sessionStore struct {
	cache           *lru.Cache[string, *session]
	defaultEndpoint proxyapi.Endpoint
}

func newSessionStore(limit int, defaultEndpoint proxyapi.Endpoint) (*sessionStore, error) {
	cache, err := lru.New[string, *session](limit)
	if err != nil {
		return nil, err
	}
	return &sessionStore{cache: cache, defaultEndpoint: defaultEndpoint}, nil
}

// load returns the caller's session, creating one and setting the cookie
// when the request carries no known session id
func (s *sessionStore) load(w http.ResponseWriter, r *http.Request) *session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.cache.Get(c.Value); ok {
			return sess
		}
	}

	id := uuid.NewString()
	sess := &session{state: panel.New(s.defaultEndpoint)}
	s.cache.Add(id, sess)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *sessionStore) len() int {
	return s.cache.Len()
}
