package colorscale

import (
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/shopspring/decimal"
)

func allSchemes() []Scheme {
	return append(append([]Scheme{}, Schemes...), Custom("#8E24AA"))
}

func TestColorForEndpoints(t *testing.T) {
	maxes := []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromInt(80),
		decimal.NewFromFloat(1234.56),
	}
	for _, s := range allSchemes() {
		for _, max := range maxes {
			if got := s.ColorFor(decimal.Zero, max); !strings.EqualFold(got, s.Baseline) {
				t.Fatalf("%s: ColorFor(0, %s) = %s, want baseline %s", s.Name, max, got, s.Baseline)
			}
			if got := s.ColorFor(max, max); !strings.EqualFold(got, s.Endpoint) {
				t.Fatalf("%s: ColorFor(max, %s) = %s, want endpoint %s", s.Name, max, got, s.Endpoint)
			}
		}
	}
}

func TestColorForDegenerateMax(t *testing.T) {
	s := Named("red")

	// Zero max clamps to 1: everything renders at or beyond the baseline
	// without dividing by zero.
	if got := s.ColorFor(decimal.Zero, decimal.Zero); !strings.EqualFold(got, s.Baseline) {
		t.Fatalf("all-zero month cell = %s, want baseline", got)
	}
	// Amount above the (clamped) max clamps to the endpoint.
	if got := s.ColorFor(decimal.NewFromInt(5), decimal.Zero); !strings.EqualFold(got, s.Endpoint) {
		t.Fatalf("overflow cell = %s, want endpoint", got)
	}
}

func TestColorForMidpointBetweenEnds(t *testing.T) {
	s := Named("blue")
	max := decimal.NewFromInt(100)
	mid := s.ColorFor(decimal.NewFromInt(50), max)

	c, err := colorful.Hex(mid)
	if err != nil {
		t.Fatalf("midpoint is not a valid color: %q", mid)
	}
	lo, _ := colorful.Hex(s.Baseline)
	hi, _ := colorful.Hex(s.Endpoint)
	if c.R > lo.R || c.R < hi.R {
		t.Fatalf("midpoint red channel %f outside [%f, %f]", c.R, hi.R, lo.R)
	}
}

func TestReadableTextColorThreshold(t *testing.T) {
	for _, s := range allSchemes() {
		max := decimal.NewFromInt(100)
		for amount := 0; amount <= 100; amount += 5 {
			bg := s.ColorFor(decimal.NewFromInt(int64(amount)), max)
			c, err := colorful.Hex(bg)
			if err != nil {
				t.Fatalf("%s: bad gradient color %q", s.Name, bg)
			}
			l := 0.299*c.R*255 + 0.587*c.G*255 + 0.114*c.B*255

			got := ReadableTextColor(bg)
			if l > 160 && got != TextOnLight {
				t.Fatalf("%s at %d: luminance %.1f wants dark text, got %s", s.Name, amount, l, got)
			}
			if l <= 160 && got != TextOnDark {
				t.Fatalf("%s at %d: luminance %.1f wants light text, got %s", s.Name, amount, l, got)
			}
		}
	}
}

func TestReadableTextColorKnown(t *testing.T) {
	if got := ReadableTextColor("#FFFFFF"); got != TextOnLight {
		t.Fatalf("white background should take dark text, got %s", got)
	}
	if got := ReadableTextColor("#000000"); got != TextOnDark {
		t.Fatalf("black background should take light text, got %s", got)
	}
	if got := ReadableTextColor("not-a-color"); got != TextOnDark {
		t.Fatalf("invalid background should fall back to light text, got %s", got)
	}
}

func TestNamedFallback(t *testing.T) {
	if got := Named("no-such-scheme"); got.Name != Schemes[0].Name {
		t.Fatalf("unknown name should fall back to %s, got %s", Schemes[0].Name, got.Name)
	}
	for _, s := range Schemes {
		if got := Named(s.Name); got != s {
			t.Fatalf("Named(%q) = %+v", s.Name, got)
		}
	}
}

func TestCustomScheme(t *testing.T) {
	s := Custom("#8E24AA")
	if s.Endpoint != "#8E24AA" {
		t.Fatalf("custom endpoint = %s", s.Endpoint)
	}

	bad := Custom("purple-ish")
	if bad.Endpoint != Schemes[0].Endpoint {
		t.Fatalf("invalid hex should fall back to default endpoint, got %s", bad.Endpoint)
	}
}

func TestForSettings(t *testing.T) {
	if got := ForSettings("teal", ""); got.Name != "teal" {
		t.Fatalf("got %s", got.Name)
	}
	if got := ForSettings("custom", "#123456"); got.Endpoint != "#123456" {
		t.Fatalf("got endpoint %s", got.Endpoint)
	}
}

func TestHueForLabelDeterministic(t *testing.T) {
	labels := []string{"🍔 Food", "🚗 Transport", "❓ Unknown Category", ""}
	for _, label := range labels {
		a := HueForLabel(label)
		b := HueForLabel(label)
		if a != b {
			t.Fatalf("hue for %q not stable: %f vs %f", label, a, b)
		}
		if a < 0 || a >= 360 {
			t.Fatalf("hue for %q out of range: %f", label, a)
		}
		if HexForLabel(label) != HexForLabel(label) {
			t.Fatalf("hex for %q not stable", label)
		}
	}
}

func TestHueDiffersAcrossTypicalLabels(t *testing.T) {
	// Not guaranteed in general, but these common labels must not all
	// collide or the breakdown bars become indistinguishable.
	hues := map[float64]bool{}
	for _, label := range []string{"🍔 Food", "🚗 Transport", "🏠 Housing", "🎬 Entertainment"} {
		hues[HueForLabel(label)] = true
	}
	if len(hues) < 2 {
		t.Fatal("all sample labels hash to one hue")
	}
}
