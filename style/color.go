// Package style infers a site's visual identity from the CSS material the
// crawl collected: a weighted color palette and ranked font families.
package style

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/siteglean/siteglean"
)

// colorTokenRe finds color token candidates in CSS text.
var colorTokenRe = regexp.MustCompile(`(?i)#(?:[0-9a-f]{8}|[0-9a-f]{6}|[0-9a-f]{3})\b|rgba?\([^)]{1,48}\)|hsla?\([^)]{1,48}\)`)

var (
	rgbRe = regexp.MustCompile(`(?i)^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*[\d.]+\s*)?\)$`)
	hslRe = regexp.MustCompile(`(?i)^hsla?\(\s*([\d.]+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*(?:,\s*[\d.]+\s*)?\)$`)
)

// ParseColorToken normalizes one CSS color token to a 6-digit lowercase
// hex value plus its HSL conversion. Alpha channels are discarded.
func ParseColorToken(token string) (string, siteglean.HSL, bool) {
	token = strings.TrimSpace(token)

	if strings.HasPrefix(token, "#") {
		hex := strings.ToLower(token[1:])
		switch len(hex) {
		case 3:
			hex = strings.Repeat(string(hex[0]), 2) +
				strings.Repeat(string(hex[1]), 2) +
				strings.Repeat(string(hex[2]), 2)
		case 8:
			hex = hex[:6]
		case 6:
		default:
			return "", siteglean.HSL{}, false
		}
		r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
		g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
		b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return "", siteglean.HSL{}, false
		}
		return "#" + hex, rgbToHSL(float64(r), float64(g), float64(b)), true
	}

	if m := rgbRe.FindStringSubmatch(token); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return "", siteglean.HSL{}, false
		}
		hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		return hex, rgbToHSL(float64(r), float64(g), float64(b)), true
	}

	if m := hslRe.FindStringSubmatch(token); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		s, _ := strconv.ParseFloat(m[2], 64)
		l, _ := strconv.ParseFloat(m[3], 64)
		if s > 100 || l > 100 {
			return "", siteglean.HSL{}, false
		}
		h = math.Mod(h, 360)
		r, g, b := hslToRGB(h, s, l)
		hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		return hex, siteglean.HSL{H: h, S: s, L: l}, true
	}

	return "", siteglean.HSL{}, false
}

func rgbToHSL(r, g, b float64) siteglean.HSL {
	r, g, b = r/255, g/255, b/255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	if max == min {
		return siteglean.HSL{H: 0, S: 0, L: round1(l * 100)}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return siteglean.HSL{H: round1(h), S: round1(s * 100), L: round1(l * 100)}
}

func hslToRGB(h, s, l float64) (int, int, int) {
	s /= 100
	l /= 100
	if s == 0 {
		v := int(math.Round(l * 255))
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360
	conv := func(t float64) int {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 1.0/2:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return int(math.Round(v * 255))
	}
	return conv(hk + 1.0/3), conv(hk), conv(hk - 1.0/3)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
