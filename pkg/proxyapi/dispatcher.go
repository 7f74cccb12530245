package proxyapi

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"
	"igdebugger/pkg/errors"
	"igdebugger/pkg/logger"
)

// ErrMissingUserID is the message used when the profile response has no
// usable user_id and a second call cannot be made
const ErrMissingUserID = "Couldn't get user_id from profile data"

// JSONGetter is the transport a Dispatcher issues requests through
type JSONGetter interface {
	GetJSON(ctx context.Context, url string) (json.RawMessage, error)
}

// Dispatcher maps an endpoint and a raw input to one or two proxy calls
type Dispatcher struct {
	getter  JSONGetter
	baseURL string
	logger  logger.Logger
}

// NewDispatcher creates a dispatcher issuing requests to baseURL
func NewDispatcher(getter JSONGetter, baseURL string, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Dispatcher{getter: getter, baseURL: baseURL, logger: log}
}

// BaseURL returns the proxy base URL requests are built against
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Fetch normalizes raw into a username and retrieves the payload for ep.
// Profile is a single call. Stories and reels first resolve the user_id
// through the profile endpoint and then issue the second call; the returned
// payload is always the final call's body.
func (d *Dispatcher) Fetch(ctx context.Context, ep Endpoint, raw string) (json.RawMessage, error) {
	username := NormalizeUsername(raw)
	log := d.logger.WithFields(map[string]interface{}{
		"endpoint": ep.String(),
		"username": username,
	})
	log.Debug("dispatching fetch")

	switch ep {
	case EndpointStories:
		userID, err := d.lookupUserID(ctx, username)
		if err != nil {
			return nil, err
		}
		log.DebugWithFields("resolved user_id", map[string]interface{}{"user_id": userID})
		return d.getter.GetJSON(ctx, StoriesURL(d.baseURL, userID))

	case EndpointReels:
		userID, err := d.lookupUserID(ctx, username)
		if err != nil {
			return nil, err
		}
		log.DebugWithFields("resolved user_id", map[string]interface{}{"user_id": userID})
		return d.getter.GetJSON(ctx, ReelsURL(d.baseURL, userID))

	default:
		return d.getter.GetJSON(ctx, ProfileURL(d.baseURL, username))
	}
}

func (d *Dispatcher) lookupUserID(ctx context.Context, username string) (string, error) {
	profile, err := d.getter.GetJSON(ctx, ProfileURL(d.baseURL, username))
	if err != nil {
		return "", err
	}

	userID := UserID(profile)
	if userID == "" {
		return "", errors.New(errors.ErrorTypeUpstreamData, ErrMissingUserID)
	}
	return userID, nil
}

// UserID returns the profile's user_id as a query-ready string, or "" when it
// is absent or falsy. Numeric ids keep their JSON text so large values are
// not rounded.
func UserID(profile json.RawMessage) string {
	r := gjson.GetBytes(profile, "user_id")
	if !Truthy(r) {
		return ""
	}
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	default:
		return ""
	}
}
