package glifedit

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/mariocaiti/glifedit/geom"
)

// Color is a display color with components in [0, 1]. It serializes as
// a hex string, "#rrggbb" when fully opaque and "#rrggbbaa" otherwise.
type Color struct {
	R, G, B, A float32
}

// NewColor returns an opaque color.
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	alpha := float32(1)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("glifedit: parsing color %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("glifedit: parsing color %q: %w", s, err)
	}
	return Color{R: float32(cf.R), G: float32(cf.G), B: float32(cf.B), A: alpha}, nil
}

// Hex returns the serialized hex form of the color.
func (c Color) Hex() string {
	cf := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	if c.A >= 1 {
		return cf.Hex()
	}
	a := int(c.A*255 + 0.5)
	if a < 0 {
		a = 0
	} else if a > 255 {
		a = 255
	}
	return fmt.Sprintf("%s%02x", cf.Hex(), a)
}

// MarshalJSON encodes the color as its hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON decodes the color from its hex string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RandomLayerColor returns a visually distinct color for a freshly
// created layer.
func RandomLayerColor() Color {
	cf := colorful.FastHappyColor()
	return Color{R: float32(cf.R), G: float32(cf.G), B: float32(cf.B), A: 1}
}

// Image is a decorative bitmap attached to a layer. The glyph editor
// core carries images through copy and paste without decoding them.
type Image struct {
	ID       string      `json:"identifier"`
	Filename string      `json:"filename"`
	Matrix   geom.Matrix `json:"matrix"`
	Color    *Color      `json:"color,omitempty"`
}

// NewImage returns an image reference with a fresh identifier and an
// identity placement.
func NewImage(filename string) Image {
	return Image{
		ID:       uuid.NewString(),
		Filename: filename,
		Matrix:   geom.Identity(),
	}
}

// Layer is one drawing layer of a glyph: an outline plus display
// metadata. The operation slot is reserved at layer scope and stays
// empty; operations attach to individual contours.
type Layer struct {
	Name      string    `json:"name"`
	Visible   bool      `json:"visible"`
	Color     *Color    `json:"color"`
	Outline   []Contour `json:"outline"`
	Operation Operation `json:"operation"`
	Images    []Image   `json:"images"`
}

// NewLayer returns a visible layer with an empty outline and a distinct
// auto-assigned color.
func NewLayer(name string) Layer {
	color := RandomLayerColor()
	return Layer{
		Name:    name,
		Visible: true,
		Color:   &color,
		Outline: []Contour{},
	}
}

// Clone returns an independent deep copy of the layer.
func (l *Layer) Clone() Layer {
	out := Layer{
		Name:    l.Name,
		Visible: l.Visible,
	}
	if l.Operation != nil {
		out.Operation = l.Operation.Clone()
	}
	if l.Color != nil {
		c := *l.Color
		out.Color = &c
	}
	if l.Outline != nil {
		out.Outline = make([]Contour, len(l.Outline))
		for i := range l.Outline {
			out.Outline[i] = l.Outline[i].Clone()
		}
	}
	if l.Images != nil {
		out.Images = make([]Image, len(l.Images))
		copy(out.Images, l.Images)
		for i := range l.Images {
			if l.Images[i].Color != nil {
				c := *l.Images[i].Color
				out.Images[i].Color = &c
			}
		}
	}
	return out
}

// Glyph is a named character shape: an advance width and a stack of
// layers.
type Glyph struct {
	Name    string  `json:"name"`
	Unicode []rune  `json:"unicode,omitempty"`
	Width   float32 `json:"width"`
	Layers  []Layer `json:"layers"`
}

// NewGlyph returns a glyph with one default layer.
func NewGlyph(name string) Glyph {
	return Glyph{
		Name:   name,
		Layers: []Layer{NewLayer("foreground")},
	}
}

// Clone returns an independent deep copy of the glyph.
func (g *Glyph) Clone() Glyph {
	out := Glyph{
		Name:  g.Name,
		Width: g.Width,
	}
	if g.Unicode != nil {
		out.Unicode = make([]rune, len(g.Unicode))
		copy(out.Unicode, g.Unicode)
	}
	out.Layers = make([]Layer, len(g.Layers))
	for i := range g.Layers {
		out.Layers[i] = g.Layers[i].Clone()
	}
	return out
}
