package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/siteglean/siteglean"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// phoneRe is deliberately loose; each match is validated before use.
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-().]{7,20}\d`)
)

const (
	maxEmails = 5
	maxPhones = 5
)

// extractContacts scans mailto:/tel: links and the body text for contact
// candidates. Every candidate is validated and normalized individually.
func extractContacts(doc *goquery.Document, rawText string) siteglean.Contacts {
	var contacts siteglean.Contacts
	seenEmail := make(map[string]bool)
	seenPhone := make(map[string]bool)

	addEmail := func(raw string) {
		email, ok := validateEmail(raw)
		if !ok || seenEmail[email] || len(contacts.Emails) >= maxEmails {
			return
		}
		seenEmail[email] = true
		contacts.Emails = append(contacts.Emails, email)
	}
	addPhone := func(raw string) {
		phone, ok := validatePhone(raw)
		if !ok || seenPhone[phone] || len(contacts.Phones) >= maxPhones {
			return
		}
		seenPhone[phone] = true
		contacts.Phones = append(contacts.Phones, phone)
	}

	// Explicit contact links are the strongest signal, so they go first.
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if idx := strings.Index(addr, "?"); idx != -1 {
			addr = addr[:idx]
		}
		if unescaped, err := url.QueryUnescape(addr); err == nil {
			addr = unescaped
		}
		addEmail(addr)
	})
	doc.Find(`a[href^="tel:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		addPhone(strings.TrimPrefix(href, "tel:"))
	})

	for _, m := range emailRe.FindAllString(rawText, -1) {
		addEmail(m)
	}
	for _, m := range phoneRe.FindAllString(rawText, -1) {
		addPhone(m)
	}

	return contacts
}

// validateEmail normalizes and sanity-checks an email candidate.
func validateEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailRe.MatchString(email) || len(email) > 254 {
		return "", false
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "..") {
		return "", false
	}
	// Image filenames picked up from srcset-like text.
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp", ".svg", ".gif"} {
		if strings.HasSuffix(domain, ext) {
			return "", false
		}
	}
	return email, true
}

// validatePhone normalizes a phone candidate to digits (with an optional
// leading +) and rejects strings that only look like phone numbers, such
// as product size lists ("36 38 40 42 44") or date ranges.
func validatePhone(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	groups := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '-' || r == '(' || r == ')' || r == '.'
	})
	// A run of many short numeric groups is a size or dimension list,
	// not a phone number.
	if len(groups) >= 4 {
		short := 0
		for _, g := range groups {
			g = strings.TrimPrefix(g, "+")
			if len(g) <= 2 {
				short++
			}
		}
		if short == len(groups) {
			return "", false
		}
	}

	var b strings.Builder
	if strings.HasPrefix(raw, "+") {
		b.WriteByte('+')
	}
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	phone := b.String()

	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 9 || len(digits) > 15 {
		return "", false
	}
	// Years glued together ("2020 2021 2022") survive the group check
	// but repeat the same prefix; require some digit variety.
	if allSameRune(digits) {
		return "", false
	}
	return phone, true
}

func allSameRune(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}
