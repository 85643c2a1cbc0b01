package siteglean

// HSL is a color in hue/saturation/lightness space. H is in degrees
// [0,360); S and L are percentages [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// ColorEvidence accumulates all occurrences of one normalized color.
// Hex is always a 6-digit lowercase "#rrggbb" value.
type ColorEvidence struct {
	Hex           string   `json:"colorHex"`
	HSL           HSL      `json:"hsl"`
	Count         int      `json:"count"`
	WeightedScore float64  `json:"weightedScore"`
	Sources       []string `json:"sources,omitempty"`
}

// FontEvidence accumulates occurrences of one font family.
type FontEvidence struct {
	Font    string   `json:"font"`
	Count   int      `json:"count"`
	Sources []string `json:"sources,omitempty"`
}

// Palette holds the selected color roles, each a "#rrggbb" hex or empty.
type Palette struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

// Typography holds the ranked font selections.
type Typography struct {
	PrimaryFonts   []string `json:"primaryFonts,omitempty"`
	SecondaryFonts []string `json:"secondaryFonts,omitempty"`
}

// StyleProfile is the style slice of the extraction output.
type StyleProfile struct {
	Palette    Palette         `json:"palette"`
	Colors     []ColorEvidence `json:"colors,omitempty"`
	Typography Typography      `json:"typography"`
	Fonts      []FontEvidence  `json:"fonts,omitempty"`
}
