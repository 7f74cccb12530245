// Package render turns panel state into a presenter-neutral view tree.
// Build is pure: it performs no I/O and never mutates the state.
package render

import "igdebugger/pkg/proxyapi"

const (
	Title            = "Instagram API Debugger"
	InputPlaceholder = "Instagram username or link"
	ResponseHeading  = "API Response:"
	JSONHeading      = "Full Response:"
)

// Severity distinguishes an empty-state notice's styling
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Shape is the aspect a preview tile is drawn with
type Shape string

const (
	ShapeSquare   Shape = "square"
	ShapeCircle   Shape = "circle"
	ShapePortrait Shape = "portrait"
)

// View is everything a presenter needs to draw the panel
type View struct {
	Title       string
	Placeholder string
	Input       string
	Button      Button
	Tabs        []Tab
	Error       string
	Response    *ResponsePanel
}

// Button is the fetch trigger
type Button struct {
	Label    string
	Disabled bool
	Loading  bool
}

// Tab is one endpoint selector
type Tab struct {
	Endpoint proxyapi.Endpoint
	Label    string
	Active   bool
}

// ResponsePanel is shown whenever a response is stored
type ResponsePanel struct {
	Heading     string
	Preview     *Preview
	JSONHeading string
	JSON        string
	// Size is the length of the stored response in bytes
	Size int
}

// Preview is the endpoint-specific summary above the JSON dump. It is nil
// when the endpoint has nothing to show, e.g. a profile without recent_posts.
type Preview struct {
	Heading string
	Count   int
	Notice  *Notice
	Tiles   []Tile
}

// Notice replaces the tiles when the list is empty
type Notice struct {
	Text     string
	Severity Severity
}

// Tile is one thumbnail. Exactly one of ImageURL and Placeholder is set.
type Tile struct {
	Index       int
	ImageURL    string
	Placeholder string
	Alt         string
	Shape       Shape
}

// HasImage reports whether the tile references an image
func (t Tile) HasImage() bool {
	return t.ImageURL != ""
}
