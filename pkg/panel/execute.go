package panel

import (
	"context"
	"encoding/json"

	"igdebugger/pkg/errors"
	"igdebugger/pkg/logger"
	"igdebugger/pkg/proxyapi"
)

// Fetcher runs one fetch sequence for an endpoint and raw input
type Fetcher interface {
	Fetch(ctx context.Context, ep proxyapi.Endpoint, raw string) (json.RawMessage, error)
}

// Run performs the fetch for attempt a and logs its outcome. It does not
// touch any State, so it can run off the goroutine that owns the panel.
func Run(ctx context.Context, f Fetcher, a Attempt, log logger.Logger) (json.RawMessage, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	log = log.WithFields(map[string]interface{}{
		"attempt":  a.ID,
		"seq":      a.Seq,
		"endpoint": a.Endpoint.String(),
	})

	log.Debug("fetch started")
	data, err := f.Fetch(ctx, a.Endpoint, a.Input)
	if err != nil {
		log.WithError(err).WarnWithFields("fetch failed", map[string]interface{}{
			"type":   string(errors.TypeOf(err)),
			"status": errors.StatusCode(err),
		})
		return nil, err
	}

	log.InfoWithFields("fetch succeeded", map[string]interface{}{
		"bytes": len(data),
	})
	return data, nil
}

// Execute starts a fetch on s, runs it synchronously and applies the result.
// It returns false when the trigger was not enabled.
func Execute(ctx context.Context, s *State, f Fetcher, log logger.Logger) bool {
	if s.Loading {
		return false
	}
	a, ok := s.StartFetch()
	if !ok {
		return false
	}

	data, err := Run(ctx, f, a, log)
	s.Complete(a, data, err)
	return true
}
