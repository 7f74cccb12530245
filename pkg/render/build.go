package render

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
	"igdebugger/pkg/panel"
	"igdebugger/pkg/proxyapi"
)

// MaxTiles caps the profile and reels previews. Stories are not capped.
const MaxTiles = 6

type previewSpec struct {
	listField   string
	heading     string
	emptyText   string
	severity    Severity
	urlFields   []string
	placeholder string
	alt         string
	shape       Shape
	limit       int
	// requireList hides the whole preview when the list field is absent
	requireList bool
}

var previews = map[proxyapi.Endpoint]previewSpec{
	proxyapi.EndpointProfile: {
		listField:   "recent_posts",
		heading:     "Recent Posts:",
		emptyText:   "No posts found in response",
		severity:    SeverityError,
		urlFields:   []string{"thumbnail_src", "display_url"},
		placeholder: "Missing image URL",
		alt:         "Post thumbnail",
		shape:       ShapeSquare,
		limit:       MaxTiles,
		requireList: true,
	},
	proxyapi.EndpointStories: {
		listField:   "stories",
		heading:     "Stories:",
		emptyText:   "No stories found in response",
		severity:    SeverityWarning,
		urlFields:   []string{"image_url", "video_url"},
		placeholder: "Missing URL",
		alt:         "Story thumbnail",
		shape:       ShapeCircle,
	},
	proxyapi.EndpointReels: {
		listField:   "reels",
		heading:     "Reels:",
		emptyText:   "No reels found in response",
		severity:    SeverityWarning,
		urlFields:   []string{"thumbnail_url"},
		placeholder: "Missing thumbnail URL",
		alt:         "Reel thumbnail",
		shape:       ShapePortrait,
		limit:       MaxTiles,
	},
}

// Build renders s into a view tree
func Build(s *panel.State) View {
	v := View{
		Title:       Title,
		Placeholder: InputPlaceholder,
		Input:       s.Input,
		Button: Button{
			Label:    s.ButtonLabel(),
			Disabled: !s.CanSubmit(),
			Loading:  s.Loading,
		},
		Error: s.ErrorMessage,
	}

	for _, ep := range proxyapi.Endpoints() {
		v.Tabs = append(v.Tabs, Tab{
			Endpoint: ep,
			Label:    ep.Label(),
			Active:   ep == s.Endpoint,
		})
	}

	if proxyapi.Truthy(gjson.ParseBytes(s.Response)) {
		v.Response = &ResponsePanel{
			Heading:     ResponseHeading,
			Preview:     BuildPreview(s.Endpoint, s.Response),
			JSONHeading: JSONHeading,
			JSON:        FormatJSON(s.Response),
			Size:        len(s.Response),
		}
	}
	return v
}

// BuildPreview renders the endpoint-specific preview of data. Fields that
// are present but not arrays count as absent.
func BuildPreview(ep proxyapi.Endpoint, data json.RawMessage) *Preview {
	spec, ok := previews[ep]
	if !ok {
		return nil
	}

	list := gjson.GetBytes(data, spec.listField)
	isList := list.IsArray()
	if spec.requireList && !isList {
		return nil
	}

	var items []gjson.Result
	if isList {
		items = list.Array()
	}

	p := &Preview{
		Heading: spec.heading,
		Count:   len(items),
	}
	if len(items) == 0 {
		p.Notice = &Notice{Text: spec.emptyText, Severity: spec.severity}
		return p
	}

	if spec.limit > 0 && len(items) > spec.limit {
		items = items[:spec.limit]
	}
	for i, item := range items {
		tile := Tile{Index: i, Alt: spec.alt, Shape: spec.shape}
		if url := firstURL(item, spec.urlFields); url != "" {
			tile.ImageURL = url
		} else {
			tile.Placeholder = spec.placeholder
		}
		p.Tiles = append(p.Tiles, tile)
	}
	return p
}

func firstURL(item gjson.Result, fields []string) string {
	for _, f := range fields {
		if r := item.Get(f); proxyapi.Truthy(r) {
			return r.String()
		}
	}
	return ""
}

// FormatJSON pretty prints data with two-space indentation. Invalid JSON is
// returned as-is.
func FormatJSON(data json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}
