package style

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/siteglean/siteglean"
)

// Occurrence weights by source kind.
const (
	weightThemeColor = 9
	weightRoleVar    = 6
	weightPlainVar   = 3
	weightPlainToken = 2
)

const maxColorEvidence = 18

const (
	maxPrimaryFonts   = 2
	maxSecondaryFonts = 4
)

var (
	cssVarRe      = regexp.MustCompile(`--([\w-]+)\s*:\s*([^;}]+)`)
	roleVarRe     = regexp.MustCompile(`(?i)\b(primary|brand|accent|secondary|text|background|bg)\b`)
	fontDeclRe    = regexp.MustCompile(`(?i)font-family\s*:\s*([^;}]+)`)
	fontVarRe     = regexp.MustCompile(`(?i)--font[\w-]*\s*:\s*([^;}]+)`)
	typekitSlugRe = regexp.MustCompile(`^[a-z]+(?:-[a-z]+)+$`)
)

// genericFonts are CSS keyword families carrying no brand identity.
var genericFonts = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-sans-serif": true,
	"ui-serif": true, "ui-monospace": true, "ui-rounded": true,
	"inherit": true, "initial": true, "unset": true, "revert": true,
	"-apple-system": true, "blinkmacsystemfont": true, "emoji": true,
}

// Inferrer reduces raw CSS material to a style profile.
type Inferrer struct{}

func NewInferrer() *Inferrer {
	return &Inferrer{}
}

// Infer builds the style profile from parsed pages and the bodies of the
// same-origin stylesheets the crawl fetched, keyed by URL.
func (inf *Inferrer) Infer(pages []*siteglean.ParsedPage, stylesheets map[string]string) siteglean.StyleProfile {
	colors := newColorTally()
	fonts := newFontTally()

	typekit := false
	for _, page := range pages {
		if page.Style.ThemeColor != "" {
			colors.add(page.Style.ThemeColor, weightThemeColor, "theme_color")
		}
		for _, css := range page.Style.InlineCSS {
			tallyCSS(colors, fonts, css, "inline_css")
		}
		for _, attr := range page.Style.InlineStyleAttr {
			tallyCSS(colors, fonts, attr, "style_attr")
		}
		for _, link := range page.Style.FontLinks {
			for _, family := range googleFontFamilies(link) {
				fonts.add(family, "google_fonts")
			}
			if strings.Contains(link, "use.typekit.net") {
				typekit = true
			}
		}
	}

	// Deterministic stylesheet order regardless of map iteration.
	urls := make([]string, 0, len(stylesheets))
	for u := range stylesheets {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	for _, u := range urls {
		tallyCSS(colors, fonts, stylesheets[u], "stylesheet")
	}

	if typekit {
		fonts.tagTypekit()
	}

	evidence := colors.ranked()
	return siteglean.StyleProfile{
		Palette:    selectPalette(evidence),
		Colors:     evidence,
		Typography: selectTypography(fonts.ranked()),
		Fonts:      fonts.ranked(),
	}
}

// tallyCSS accumulates color and font occurrences from one chunk of CSS.
// Custom properties get higher color weights; role-named ones the highest.
func tallyCSS(colors *colorTally, fonts *fontTally, css, source string) {
	varSpans := cssVarRe.FindAllStringSubmatchIndex(css, -1)
	inVar := func(pos int) (string, bool) {
		for _, span := range varSpans {
			if pos >= span[0] && pos < span[1] {
				return css[span[2]:span[3]], true
			}
		}
		return "", false
	}

	for _, span := range colorTokenRe.FindAllStringIndex(css, -1) {
		token := css[span[0]:span[1]]
		weight := weightPlainToken
		src := source
		if name, ok := inVar(span[0]); ok {
			if roleVarRe.MatchString(name) {
				weight = weightRoleVar
			} else {
				weight = weightPlainVar
			}
			src = "css_variable:--" + name
		}
		colors.add(token, float64(weight), src)
	}

	for _, m := range fontDeclRe.FindAllStringSubmatch(css, -1) {
		for _, family := range splitFamilies(m[1]) {
			fonts.add(family, source)
		}
	}
	for _, m := range fontVarRe.FindAllStringSubmatch(css, -1) {
		for _, family := range splitFamilies(m[1]) {
			fonts.add(family, source)
		}
	}
}

type colorTally struct {
	byHex map[string]*siteglean.ColorEvidence
	order []string
}

func newColorTally() *colorTally {
	return &colorTally{byHex: make(map[string]*siteglean.ColorEvidence)}
}

func (t *colorTally) add(token string, weight float64, source string) {
	hex, hsl, ok := ParseColorToken(token)
	if !ok {
		return
	}
	ev, ok := t.byHex[hex]
	if !ok {
		ev = &siteglean.ColorEvidence{Hex: hex, HSL: hsl}
		t.byHex[hex] = ev
		t.order = append(t.order, hex)
	}
	ev.Count++
	ev.WeightedScore += weight
	if !containsStr(ev.Sources, source) {
		ev.Sources = append(ev.Sources, source)
	}
}

// ranked returns evidence sorted by weighted score, first-seen order as
// the tie-break, capped to the top 18.
func (t *colorTally) ranked() []siteglean.ColorEvidence {
	out := make([]siteglean.ColorEvidence, 0, len(t.order))
	for _, hex := range t.order {
		out = append(out, *t.byHex[hex])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeightedScore > out[j].WeightedScore
	})
	if len(out) > maxColorEvidence {
		out = out[:maxColorEvidence]
	}
	return out
}

// Palette role predicates.
func isColorful(h siteglean.HSL) bool { return h.S >= 20 && h.L >= 12 && h.L <= 88 }
func isLight(h siteglean.HSL) bool    { return h.L >= 85 || (h.L >= 78 && h.S < 20) }
func isDark(h siteglean.HSL) bool     { return h.L <= 30 }

// selectPalette assigns color roles from the ranked evidence.
func selectPalette(evidence []siteglean.ColorEvidence) siteglean.Palette {
	var p siteglean.Palette
	if len(evidence) == 0 {
		return p
	}

	for _, ev := range evidence {
		if isColorful(ev.HSL) {
			p.Primary = ev.Hex
			break
		}
	}
	for _, ev := range evidence {
		if isColorful(ev.HSL) && ev.Hex != p.Primary {
			p.Secondary = ev.Hex
			break
		}
	}

	bestSat := -1.0
	for _, ev := range evidence {
		if ev.Hex != p.Primary && ev.HSL.S > bestSat {
			bestSat = ev.HSL.S
			p.Accent = ev.Hex
		}
	}
	if p.Accent == "" {
		p.Accent = p.Secondary
	}

	for _, ev := range evidence {
		if isLight(ev.HSL) {
			p.Background = ev.Hex
			break
		}
	}
	if p.Background == "" {
		p.Background = evidence[len(evidence)-1].Hex
	}

	for _, ev := range evidence {
		if isDark(ev.HSL) {
			p.Text = ev.Hex
			break
		}
	}
	if p.Text == "" {
		p.Text = p.Primary
	}

	return p
}

type fontTally struct {
	byKey map[string]*siteglean.FontEvidence
	order []string
}

func newFontTally() *fontTally {
	return &fontTally{byKey: make(map[string]*siteglean.FontEvidence)}
}

func (t *fontTally) add(family, source string) {
	family = strings.Trim(strings.TrimSpace(family), `"'`)
	if family == "" || genericFonts[strings.ToLower(family)] {
		return
	}
	key := strings.ToLower(family)
	ev, ok := t.byKey[key]
	if !ok {
		ev = &siteglean.FontEvidence{Font: family}
		t.byKey[key] = ev
		t.order = append(t.order, key)
	}
	ev.Count++
	if !containsStr(ev.Sources, source) {
		ev.Sources = append(ev.Sources, source)
	}
}

// tagTypekit marks slug-shaped families as Typekit-hosted.
func (t *fontTally) tagTypekit() {
	for _, ev := range t.byKey {
		if typekitSlugRe.MatchString(ev.Font) && !containsStr(ev.Sources, "typekit") {
			ev.Sources = append(ev.Sources, "typekit")
		}
	}
}

func (t *fontTally) ranked() []siteglean.FontEvidence {
	out := make([]siteglean.FontEvidence, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, *t.byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func selectTypography(fonts []siteglean.FontEvidence) siteglean.Typography {
	var ty siteglean.Typography
	for i, ev := range fonts {
		if i < maxPrimaryFonts {
			ty.PrimaryFonts = append(ty.PrimaryFonts, ev.Font)
		} else if len(ty.SecondaryFonts) < maxSecondaryFonts {
			ty.SecondaryFonts = append(ty.SecondaryFonts, ev.Font)
		}
	}
	return ty
}

// googleFontFamilies pulls family names from a hosted-fonts URL, handling
// both the css2 repeated-family form and the legacy pipe-joined form.
func googleFontFamilies(link string) []string {
	u, err := url.Parse(link)
	if err != nil || !strings.Contains(u.Host, "fonts.googleapis.com") && !strings.Contains(u.Host, "fonts.bunny.net") {
		return nil
	}
	// css2 URLs carry semicolons in weight axes (family=Inter:wght@400;700)
	// which url.Values treats as an invalid separator, so split the raw
	// query on "&" only.
	var out []string
	for _, pair := range strings.Split(u.RawQuery, "&") {
		key, family, ok := strings.Cut(pair, "=")
		if !ok || key != "family" {
			continue
		}
		if dec, err := url.QueryUnescape(family); err == nil {
			family = dec
		}
		for _, part := range strings.Split(family, "|") {
			name, _, _ := strings.Cut(part, ":")
			name = strings.TrimSpace(strings.ReplaceAll(name, "+", " "))
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

func splitFamilies(list string) []string {
	var out []string
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		if f != "" && !strings.Contains(f, "var(") {
			out = append(out, f)
		}
	}
	return out
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
