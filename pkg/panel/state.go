// Package panel holds the query panel's state and the transitions that are
// the only way to change it.
package panel

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"igdebugger/pkg/proxyapi"
)

// FailurePrefix is prepended to every error shown after a failed fetch
const FailurePrefix = "Failed to fetch data: "

const (
	LabelIdle    = "Test API"
	LabelLoading = "Loading..."
)

// Attempt identifies one fetch sequence started by StartFetch
type Attempt struct {
	Seq      uint64
	ID       string
	Endpoint proxyapi.Endpoint
	Input    string
}

// State is the query panel's state. It is not safe for concurrent use;
// callers serialize access (the TUI event loop, or a per-session mutex).
type State struct {
	Input        string
	Endpoint     proxyapi.Endpoint
	Response     json.RawMessage
	ErrorMessage string
	Loading      bool

	seq     uint64
	current uint64
}

// New creates an idle panel with the given endpoint selected
func New(endpoint proxyapi.Endpoint) *State {
	return &State{Endpoint: endpoint}
}

// EditInput replaces the query input
func (s *State) EditInput(input string) {
	s.Input = input
}

// SelectEndpoint changes the selected endpoint. A stored response is kept
// and rendered through the new endpoint's preview until the next fetch.
func (s *State) SelectEndpoint(ep proxyapi.Endpoint) {
	s.Endpoint = ep
}

// CanSubmit reports whether the trigger is enabled
func (s *State) CanSubmit() bool {
	return !s.Loading && strings.TrimSpace(s.Input) != ""
}

// ButtonLabel is the trigger's label for the current loading state
func (s *State) ButtonLabel() string {
	if s.Loading {
		return LabelLoading
	}
	return LabelIdle
}

// StartFetch begins a new attempt: it clears the response and the error and
// sets the loading flag. It returns false, changing nothing, when the trimmed
// input is empty. A fetch already in flight does not block a new one; its
// completion is discarded once this attempt exists.
func (s *State) StartFetch() (Attempt, bool) {
	if strings.TrimSpace(s.Input) == "" {
		return Attempt{}, false
	}

	s.seq++
	s.current = s.seq
	s.Response = nil
	s.ErrorMessage = ""
	s.Loading = true

	return Attempt{
		Seq:      s.seq,
		ID:       uuid.NewString(),
		Endpoint: s.Endpoint,
		Input:    s.Input,
	}, true
}

// IsCurrent reports whether a is the latest attempt
func (s *State) IsCurrent(a Attempt) bool {
	return a.Seq != 0 && a.Seq == s.current
}

// FetchSucceeded stores data as the response if a is still current
func (s *State) FetchSucceeded(a Attempt, data json.RawMessage) bool {
	if !s.IsCurrent(a) {
		return false
	}
	s.Response = data
	s.Loading = false
	return true
}

// FetchFailed stores the failure message if a is still current
func (s *State) FetchFailed(a Attempt, err error) bool {
	if !s.IsCurrent(a) {
		return false
	}
	s.ErrorMessage = FailurePrefix + err.Error()
	s.Loading = false
	return true
}

// Complete applies the outcome of a, reporting whether it was applied
func (s *State) Complete(a Attempt, data json.RawMessage, err error) bool {
	if err != nil {
		return s.FetchFailed(a, err)
	}
	return s.FetchSucceeded(a, data)
}
