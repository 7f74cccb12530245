package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"igdebugger/pkg/panel"
	"igdebugger/pkg/proxyapi"
)

func stateWith(ep proxyapi.Endpoint, response string) *panel.State {
	s := panel.New(ep)
	if response != "" {
		s.Response = json.RawMessage(response)
	}
	return s
}

func posts(n, missing int) string {
	items := make([]string, n)
	for i := range items {
		if i == missing {
			items[i] = `{"id":"p` + fmt.Sprint(i) + `"}`
			continue
		}
		items[i] = fmt.Sprintf(`{"thumbnail_src":"https://cdn/t%d.jpg"}`, i)
	}
	return `{"user_id":"42","recent_posts":[` + strings.Join(items, ",") + `]}`
}

func TestBuildEmptyState(t *testing.T) {
	v := Build(panel.New(proxyapi.EndpointProfile))

	assert.Equal(t, Title, v.Title)
	assert.Equal(t, InputPlaceholder, v.Placeholder)
	assert.Equal(t, "Test API", v.Button.Label)
	assert.True(t, v.Button.Disabled)
	assert.Empty(t, v.Error)
	assert.Nil(t, v.Response)

	require.Len(t, v.Tabs, 3)
	assert.Equal(t, "Profile Endpoint", v.Tabs[0].Label)
	assert.True(t, v.Tabs[0].Active)
	assert.False(t, v.Tabs[1].Active)
	assert.False(t, v.Tabs[2].Active)
}

func TestBuildButtonStates(t *testing.T) {
	s := panel.New(proxyapi.EndpointProfile)
	s.EditInput("alice")
	assert.False(t, Build(s).Button.Disabled)

	s.StartFetch()
	v := Build(s)
	assert.True(t, v.Button.Disabled)
	assert.Equal(t, "Loading...", v.Button.Label)
}

func TestProfileEmptyPosts(t *testing.T) {
	v := Build(stateWith(proxyapi.EndpointProfile, `{"user_id":"42","recent_posts":[]}`))

	require.NotNil(t, v.Response)
	p := v.Response.Preview
	require.NotNil(t, p)
	assert.Equal(t, "Recent Posts:", p.Heading)
	assert.Equal(t, 0, p.Count)
	require.NotNil(t, p.Notice)
	assert.Equal(t, "No posts found in response", p.Notice.Text)
	assert.Equal(t, SeverityError, p.Notice.Severity)
	assert.Empty(t, p.Tiles)
}

func TestProfileTilesCappedWithPlaceholder(t *testing.T) {
	v := Build(stateWith(proxyapi.EndpointProfile, posts(8, 3)))

	p := v.Response.Preview
	require.NotNil(t, p)
	assert.Equal(t, 8, p.Count)
	assert.Nil(t, p.Notice)
	require.Len(t, p.Tiles, 6)

	for i, tile := range p.Tiles {
		assert.Equal(t, i, tile.Index)
		assert.Equal(t, ShapeSquare, tile.Shape)
		if i == 3 {
			assert.False(t, tile.HasImage())
			assert.Equal(t, "Missing image URL", tile.Placeholder)
			continue
		}
		assert.True(t, tile.HasImage())
		assert.Equal(t, fmt.Sprintf("https://cdn/t%d.jpg", i), tile.ImageURL)
		assert.Equal(t, "Post thumbnail", tile.Alt)
	}
}

func TestProfileFallsBackToDisplayURL(t *testing.T) {
	v := Build(stateWith(proxyapi.EndpointProfile,
		`{"recent_posts":[{"thumbnail_src":"","display_url":"https://cdn/d.jpg"}]}`))

	require.Len(t, v.Response.Preview.Tiles, 1)
	assert.Equal(t, "https://cdn/d.jpg", v.Response.Preview.Tiles[0].ImageURL)
}

func TestProfileWithoutRecentPosts(t *testing.T) {
	for _, body := range []string{`{"user_id":"42"}`, `{"recent_posts":null}`, `{"recent_posts":"x"}`} {
		v := Build(stateWith(proxyapi.EndpointProfile, body))
		require.NotNil(t, v.Response, body)
		assert.Nil(t, v.Response.Preview, body)
		assert.NotEmpty(t, v.Response.JSON, body)
	}
}

func TestStoriesAreNotCapped(t *testing.T) {
	items := make([]string, 9)
	for i := range items {
		items[i] = fmt.Sprintf(`{"video_url":"https://cdn/v%d.mp4"}`, i)
	}
	items[4] = `{}`
	v := Build(stateWith(proxyapi.EndpointStories, `{"stories":[`+strings.Join(items, ",")+`]}`))

	p := v.Response.Preview
	require.NotNil(t, p)
	assert.Equal(t, "Stories:", p.Heading)
	assert.Equal(t, 9, p.Count)
	require.Len(t, p.Tiles, 9)
	assert.Equal(t, ShapeCircle, p.Tiles[0].Shape)
	assert.Equal(t, "https://cdn/v0.mp4", p.Tiles[0].ImageURL)
	assert.Equal(t, "Missing URL", p.Tiles[4].Placeholder)
}

func TestStoriesPreferImageURL(t *testing.T) {
	v := Build(stateWith(proxyapi.EndpointStories,
		`{"stories":[{"image_url":"https://cdn/i.jpg","video_url":"https://cdn/v.mp4"}]}`))
	assert.Equal(t, "https://cdn/i.jpg", v.Response.Preview.Tiles[0].ImageURL)
}

func TestEmptyStoriesAndReels(t *testing.T) {
	tests := []struct {
		name   string
		ep     proxyapi.Endpoint
		body   string
		notice string
	}{
		{"stories absent", proxyapi.EndpointStories, `{}`, "No stories found in response"},
		{"stories empty", proxyapi.EndpointStories, `{"stories":[]}`, "No stories found in response"},
		{"reels absent", proxyapi.EndpointReels, `{"items":[1]}`, "No reels found in response"},
		{"reels empty", proxyapi.EndpointReels, `{"reels":[]}`, "No reels found in response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(stateWith(tt.ep, tt.body)).Response.Preview
			require.NotNil(t, p)
			assert.Equal(t, 0, p.Count)
			require.NotNil(t, p.Notice)
			assert.Equal(t, tt.notice, p.Notice.Text)
			assert.Equal(t, SeverityWarning, p.Notice.Severity)
			assert.Empty(t, p.Tiles)
		})
	}
}

func TestFalsyBodyHidesResponsePanel(t *testing.T) {
	for _, body := range []string{`null`, `false`, `0`, `""`} {
		t.Run(body, func(t *testing.T) {
			v := Build(stateWith(proxyapi.EndpointStories, body))
			assert.Nil(t, v.Response)
		})
	}

	for _, body := range []string{`[]`, `{}`, `1`} {
		t.Run(body, func(t *testing.T) {
			v := Build(stateWith(proxyapi.EndpointStories, body))
			require.NotNil(t, v.Response)
			assert.Equal(t, "No stories found in response", v.Response.Preview.Notice.Text)
		})
	}
}

func TestReelsCapped(t *testing.T) {
	items := make([]string, 12)
	for i := range items {
		items[i] = fmt.Sprintf(`{"thumbnail_url":"https://cdn/r%d.jpg"}`, i)
	}
	items[0] = `{"video_url":"https://cdn/only-video.mp4"}`
	v := Build(stateWith(proxyapi.EndpointReels, `{"reels":[`+strings.Join(items, ",")+`]}`))

	p := v.Response.Preview
	assert.Equal(t, "Reels:", p.Heading)
	assert.Equal(t, 12, p.Count)
	require.Len(t, p.Tiles, 6)
	assert.Equal(t, "Missing thumbnail URL", p.Tiles[0].Placeholder)
	assert.Equal(t, ShapePortrait, p.Tiles[1].Shape)
	assert.Equal(t, "Reel thumbnail", p.Tiles[1].Alt)
}

func TestStaleResponseRenderedThroughSelectedEndpoint(t *testing.T) {
	s := stateWith(proxyapi.EndpointProfile, posts(2, -1))
	s.SelectEndpoint(proxyapi.EndpointReels)

	v := Build(s)
	require.NotNil(t, v.Response)
	assert.Equal(t, "No reels found in response", v.Response.Preview.Notice.Text)
	assert.True(t, v.Tabs[2].Active)
}

func TestErrorAndResponseCoexist(t *testing.T) {
	s := stateWith(proxyapi.EndpointProfile, `{"recent_posts":[]}`)
	s.ErrorMessage = "Failed to fetch data: boom"

	v := Build(s)
	assert.Equal(t, "Failed to fetch data: boom", v.Error)
	assert.NotNil(t, v.Response)
}

func TestFormatJSON(t *testing.T) {
	out := FormatJSON(json.RawMessage(`{"a":[1,2],"b":{"c":"d"}}`))
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {\n    \"c\": \"d\"\n  }\n}", out)

	assert.Equal(t, "not json", FormatJSON(json.RawMessage("not json")))
}

func TestBuildDoesNotMutateState(t *testing.T) {
	s := stateWith(proxyapi.EndpointStories, `{"stories":[]}`)
	s.EditInput("alice")
	before := *s

	Build(s)
	assert.Equal(t, before, *s)
}
