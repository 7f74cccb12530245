package proxyapi

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// ProfilePath returns profile data, including user_id and recent_posts
	ProfilePath = "/api/instagram-profile"

	// StoriesPath returns the active stories of a user_id
	StoriesPath = "/api/instagram-stories"

	// ReelsPath returns one page of reels for a user_id
	ReelsPath = "/api/instagram-reels"

	// ReelsPageSize is the fixed page size requested from ReelsPath
	ReelsPageSize = 12
)

// Endpoint is one of the query types the panel can issue
type Endpoint int

const (
	EndpointProfile Endpoint = iota
	EndpointStories
	EndpointReels
)

var endpointNames = [...]string{
	EndpointProfile: "profile",
	EndpointStories: "stories",
	EndpointReels:   "reels",
}

var endpointLabels = [...]string{
	EndpointProfile: "Profile Endpoint",
	EndpointStories: "Stories Endpoint",
	EndpointReels:   "Reels Endpoint",
}

// Endpoints lists every endpoint in display order
func Endpoints() []Endpoint {
	return []Endpoint{EndpointProfile, EndpointStories, EndpointReels}
}

func (e Endpoint) valid() bool {
	return e >= EndpointProfile && e <= EndpointReels
}

func (e Endpoint) String() string {
	if !e.valid() {
		return fmt.Sprintf("endpoint(%d)", int(e))
	}
	return endpointNames[e]
}

// Label is the text shown on the endpoint's tab
func (e Endpoint) Label() string {
	if !e.valid() {
		return e.String()
	}
	return endpointLabels[e]
}

// Next returns the endpoint after e, wrapping around
func (e Endpoint) Next() Endpoint {
	return Endpoint((int(e) + 1) % len(endpointNames))
}

// Prev returns the endpoint before e, wrapping around
func (e Endpoint) Prev() Endpoint {
	return Endpoint((int(e) + len(endpointNames) - 1) % len(endpointNames))
}

// ParseEndpoint maps a case-insensitive name to an Endpoint
func ParseEndpoint(name string) (Endpoint, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range endpointNames {
		if n == name {
			return Endpoint(i), nil
		}
	}
	return EndpointProfile, fmt.Errorf("unknown endpoint %q (want profile, stories or reels)", name)
}

// ProfileURL builds the profile lookup URL for username
func ProfileURL(baseURL, username string) string {
	return fmt.Sprintf("%s%s?username=%s", baseURL, ProfilePath, url.QueryEscape(username))
}

// StoriesURL builds the stories URL for userID
func StoriesURL(baseURL, userID string) string {
	return fmt.Sprintf("%s%s?user_id=%s", baseURL, StoriesPath, url.QueryEscape(userID))
}

// ReelsURL builds the reels URL for userID with the fixed page size
func ReelsURL(baseURL, userID string) string {
	return fmt.Sprintf("%s%s?user_id=%s&page_size=%d", baseURL, ReelsPath, url.QueryEscape(userID), ReelsPageSize)
}

var profileSegment = regexp.MustCompile(`instagram\.com/([^/?]+)`)

// NormalizeUsername extracts the bare handle from a profile URL such as
// https://instagram.com/alice/ or https://www.instagram.com/alice?hl=en.
// Anything that is not an instagram.com URL, or has no path segment after
// the host, is returned unchanged.
func NormalizeUsername(input string) string {
	if !strings.Contains(input, "instagram.com") {
		return input
	}

	cleaned := strings.TrimSuffix(input, "/")
	match := profileSegment.FindStringSubmatch(cleaned)
	if match == nil {
		return input
	}
	return match[1]
}
