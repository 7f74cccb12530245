package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"igdebugger/pkg/errors"
	"igdebugger/pkg/logger"
	"igdebugger/pkg/panel"
	"igdebugger/pkg/proxyapi"
	"igdebugger/pkg/render"
)

// Options configures a Handler
type Options struct {
	DefaultEndpoint proxyapi.Endpoint
	SessionLimit    int
	Logger          logger.Logger
}

// Handler serves the panel page and the JSON passthrough
type Handler struct {
	fetcher  panel.Fetcher
	sessions *sessionStore
	log      logger.Logger
}

// NewHandler creates a handler that fetches through f
func NewHandler(f panel.Fetcher, opts Options) (*Handler, error) {
	if opts.Logger == nil {
		opts.Logger = logger.GetLogger()
	}
	if opts.SessionLimit <= 0 {
		opts.SessionLimit = 256
	}

	sessions, err := newSessionStore(opts.SessionLimit, opts.DefaultEndpoint)
	if err != nil {
		return nil, err
	}
	return &Handler{fetcher: f, sessions: sessions, log: opts.Logger}, nil
}

type errorResponse struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Status  int    `json:"status,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// index renders the caller's panel. username and endpoint query parameters
// pre-fill the form without fetching.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.load(w, r)
	q := r.URL.Query()

	sess.mu.Lock()
	if q.Has("username") {
		sess.state.EditInput(q.Get("username"))
	}
	if name := q.Get("endpoint"); name != "" {
		if ep, err := proxyapi.ParseEndpoint(name); err == nil {
			sess.state.SelectEndpoint(ep)
		}
	}
	view := render.Build(sess.state)
	sess.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := writePage(w, view); err != nil {
		h.log.WithError(err).Error("failed to render page")
	}
}

// selectEndpoint switches tabs, keeping whatever was typed and any response
func (h *Handler) selectEndpoint(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.load(w, r)

	sess.mu.Lock()
	sess.state.EditInput(r.PostFormValue("username"))
	if ep, err := proxyapi.ParseEndpoint(r.PostFormValue("select")); err == nil {
		sess.state.SelectEndpoint(ep)
	}
	sess.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// fetch runs one fetch sequence for the caller's panel. The session lock is
// not held while the upstream calls are in flight, so a later POST from the
// same browser starts a new attempt and the earlier completion is dropped.
func (h *Handler) fetch(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.load(w, r)
	log := h.log.WithField("request_id", requestIDFromContext(r.Context()))

	sess.mu.Lock()
	sess.state.EditInput(r.PostFormValue("username"))
	if ep, err := proxyapi.ParseEndpoint(r.PostFormValue("endpoint")); err == nil {
		sess.state.SelectEndpoint(ep)
	}
	attempt, ok := sess.state.StartFetch()
	sess.mu.Unlock()
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data, err := panel.Run(r.Context(), h.fetcher, attempt, log)

	sess.mu.Lock()
	if !sess.state.Complete(attempt, data, err) {
		log.DebugWithFields("discarded stale fetch result", map[string]interface{}{
			"attempt": attempt.ID,
			"seq":     attempt.Seq,
		})
	}
	sess.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// apiFetch is the stateless JSON form of a fetch: the upstream document on
// success, 502 with the panel's error message on failure
func (h *Handler) apiFetch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := q.Get("username")
	if strings.TrimSpace(input) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "username is required",
			Type:    string(errors.ErrorTypeInput),
		})
		return
	}

	ep := proxyapi.EndpointProfile
	if name := q.Get("endpoint"); name != "" {
		parsed, err := proxyapi.ParseEndpoint(name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Message: err.Error(),
				Type:    string(errors.ErrorTypeInput),
			})
			return
		}
		ep = parsed
	}

	state := panel.New(ep)
	state.EditInput(input)
	attempt, _ := state.StartFetch()
	log := h.log.WithField("request_id", requestIDFromContext(r.Context()))

	data, err := panel.Run(r.Context(), h.fetcher, attempt, log)
	state.Complete(attempt, data, err)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Message: state.ErrorMessage,
			Type:    string(errors.TypeOf(err)),
			Status:  errors.StatusCode(err),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
