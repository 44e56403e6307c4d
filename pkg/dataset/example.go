package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Prompt is the fixed user instruction stored with every example.
const Prompt = "Where to click? Answer with coordinates only (e.g., 1111.1111,2222.2222)"

// Roles and content part types used by the chat-style record layout.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	PartText  = "text"
	PartImage = "image_url"
)

// LabelPattern matches a well formed assistant label.
var LabelPattern = regexp.MustCompile(`^-?\d+\.?\d*,-?\d+\.?\d*$`)

// ErrMalformedRecord marks records that do not follow the example layout.
var ErrMalformedRecord = errors.New("malformed example record")

// Click is one left-button press as observed by the input hook.
type Click struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	At        time.Time `json:"at"`
	ImagePath string    `json:"image_path"`
	// Renamed is false when the record fell back to the transient asset path.
	Renamed    bool   `json:"renamed"`
	RecordPath string `json:"record_path,omitempty"`
}

// Example is a single supervised training sample.
type Example struct {
	Messages []Message `json:"messages"`
}

// Message is one chat turn.
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// Content is either plain text or a list of typed parts.
type Content struct {
	Text  string
	Parts []Part
}

// Part is a typed fragment of user content.
type Part struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL references the screenshot shown with the prompt.
type ImageURL struct {
	URL string `json:"url"`
}

// MarshalJSON emits a list when parts are present and a string otherwise.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts either a string or a list of parts.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		c.Text = ""
		return json.Unmarshal(trimmed, &c.Parts)
	}
	c.Parts = nil
	return json.Unmarshal(trimmed, &c.Text)
}

// FormatLabel renders coordinates as "x,y" using the shortest exact decimal form.
func FormatLabel(x, y float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + "," + strconv.FormatFloat(y, 'f', -1, 64)
}

// ParseLabel splits an "x,y" label into coordinates.
func ParseLabel(label string) (float64, float64, error) {
	if !LabelPattern.MatchString(label) {
		return 0, 0, fmt.Errorf("%w: label %q does not match x,y", ErrMalformedRecord, label)
	}
	xs, ys, _ := strings.Cut(label, ",")
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: x coordinate %q: %v", ErrMalformedRecord, xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: y coordinate %q: %v", ErrMalformedRecord, ys, err)
	}
	return x, y, nil
}

// NewExample builds the record for a click at (x, y) shown with imageRef.
func NewExample(x, y float64, imageRef string) Example {
	return Example{Messages: []Message{
		{
			Role: RoleUser,
			Content: Content{Parts: []Part{
				{Type: PartText, Text: Prompt},
				{Type: PartImage, ImageURL: &ImageURL{URL: imageRef}},
			}},
		},
		{
			Role:    RoleAssistant,
			Content: Content{Text: FormatLabel(x, y)},
		},
	}}
}

// ImageRef returns the screenshot reference of the user turn.
func (e Example) ImageRef() (string, error) {
	if len(e.Messages) == 0 || e.Messages[0].Role != RoleUser {
		return "", fmt.Errorf("%w: first message must be the user turn", ErrMalformedRecord)
	}
	for _, part := range e.Messages[0].Content.Parts {
		if part.Type == PartImage && part.ImageURL != nil {
			return part.ImageURL.URL, nil
		}
	}
	return "", fmt.Errorf("%w: user turn has no image_url part", ErrMalformedRecord)
}

// Label returns the assistant answer text.
func (e Example) Label() (string, error) {
	if len(e.Messages) < 2 || e.Messages[1].Role != RoleAssistant {
		return "", fmt.Errorf("%w: second message must be the assistant turn", ErrMalformedRecord)
	}
	if e.Messages[1].Content.Parts != nil {
		return "", fmt.Errorf("%w: assistant content must be text", ErrMalformedRecord)
	}
	return e.Messages[1].Content.Text, nil
}

// Coordinates parses the assistant label.
func (e Example) Coordinates() (float64, float64, error) {
	label, err := e.Label()
	if err != nil {
		return 0, 0, err
	}
	return ParseLabel(label)
}

// Validate checks the record layout, the prompt part and the label format.
func (e Example) Validate() error {
	if len(e.Messages) != 2 {
		return fmt.Errorf("%w: expected 2 messages, got %d", ErrMalformedRecord, len(e.Messages))
	}
	if _, err := e.ImageRef(); err != nil {
		return err
	}
	hasPrompt := false
	for _, part := range e.Messages[0].Content.Parts {
		if part.Type == PartText && part.Text != "" {
			hasPrompt = true
		}
	}
	if !hasPrompt {
		return fmt.Errorf("%w: user turn has no text prompt", ErrMalformedRecord)
	}
	_, _, err := e.Coordinates()
	return err
}
