// Package colorscale maps spending amounts onto continuous color
// gradients and picks legible foreground colors for any background.
package colorscale

import (
	"hash/fnv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/shopspring/decimal"
)

// Foreground tokens returned by ReadableTextColor, named for the kind
// of background they suit.
const (
	TextOnLight = "#1A1B26"
	TextOnDark  = "#FFFFFF"
)

const customBaseline = "#FAFAFA"

// Scheme is a named interpolation from a near-white baseline to a
// saturated endpoint.
type Scheme struct {
	Name     string
	Baseline string
	Endpoint string
}

// Schemes is the fixed set of named schemes, in display order.
var Schemes = []Scheme{
	{Name: "red", Baseline: "#FFEBEE", Endpoint: "#B71C1C"},
	{Name: "blue", Baseline: "#E3F2FD", Endpoint: "#0D47A1"},
	{Name: "green", Baseline: "#E8F5E9", Endpoint: "#1B5E20"},
	{Name: "purple", Baseline: "#F3E5F5", Endpoint: "#4A148C"},
	{Name: "orange", Baseline: "#FFF3E0", Endpoint: "#E65100"},
	{Name: "teal", Baseline: "#E0F2F1", Endpoint: "#004D40"},
	{Name: "colorblind", Baseline: "#F7F7F7", Endpoint: "#2166AC"},
}

// Named returns the scheme with the given name, falling back to the
// first scheme for unknown names.
func Named(name string) Scheme {
	for _, s := range Schemes {
		if s.Name == name {
			return s
		}
	}
	return Schemes[0]
}

// Custom builds a scheme ending at a user-supplied hex color. Invalid
// hex falls back to the default scheme's endpoint.
func Custom(hex string) Scheme {
	if _, err := colorful.Hex(strings.TrimSpace(hex)); err != nil {
		return Scheme{Name: "custom", Baseline: customBaseline, Endpoint: Schemes[0].Endpoint}
	}
	return Scheme{Name: "custom", Baseline: customBaseline, Endpoint: strings.TrimSpace(hex)}
}

// ForSettings picks the scheme for a settings snapshot: the named
// scheme, or the custom endpoint when the name is "custom".
func ForSettings(name, customHex string) Scheme {
	if name == "custom" {
		return Custom(customHex)
	}
	return Named(name)
}

// ColorFor interpolates linearly in RGB over [0, max(maxAmount, 1)].
// Zero yields the baseline, the maximum yields the endpoint, and any
// degenerate input clamps rather than producing an undefined color.
func (s Scheme) ColorFor(amount, maxAmount decimal.Decimal) string {
	one := decimal.NewFromInt(1)
	if maxAmount.LessThan(one) {
		maxAmount = one
	}
	t, _ := amount.Div(maxAmount).Float64()
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	from, _ := colorful.Hex(s.Baseline)
	to, _ := colorful.Hex(s.Endpoint)
	return from.BlendRgb(to, t).Hex()
}

// ReadableTextColor picks a foreground token for the given background
// using the perceived-luminance weights 0.299/0.587/0.114 on the 0–255
// channel scale. Backgrounds brighter than 160 get dark text.
func ReadableTextColor(backgroundHex string) string {
	c, err := colorful.Hex(backgroundHex)
	if err != nil {
		return TextOnDark
	}
	l := 0.299*c.R*255 + 0.587*c.G*255 + 0.114*c.B*255
	if l > 160 {
		return TextOnLight
	}
	return TextOnDark
}

// HueForLabel folds a string hash into a hue in [0, 360). The same
// label always yields the same hue, with no shared assignment table.
func HueForLabel(label string) float64 {
	h := fnv.New32a()
	h.Write([]byte(label))
	return float64(h.Sum32() % 360)
}

// HexForLabel renders the label's hue at fixed saturation and lightness.
func HexForLabel(label string) string {
	return colorful.Hsl(HueForLabel(label), 0.55, 0.55).Hex()
}
