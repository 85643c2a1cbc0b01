package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/siteglean/siteglean"
)

// jsonldMaxDepth bounds the structured-data tree walk. Adversarial JSON-LD
// could otherwise nest arbitrarily deep.
const jsonldMaxDepth = 20

// organization-like @type values worth harvesting brand data from.
var jsonldTypes = map[string]bool{
	"organization":  true,
	"localbusiness": true,
	"brand":         true,
	"website":       true,
	"corporation":   true,
	"onlinestore":   true,
}

// extractStructuredData parses every JSON-LD script block and walks the
// value trees for organization-level nodes, collecting name, legalName,
// alternateName, url and logo values.
func extractStructuredData(doc *goquery.Document) siteglean.StructuredData {
	var data siteglean.StructuredData
	seen := make(map[string]bool)

	add := func(dst *[]string, v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		*dst = append(*dst, v)
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var tree any
		if err := json.Unmarshal([]byte(sel.Text()), &tree); err != nil {
			return
		}
		walkJSONLD(tree, 0, func(node map[string]any) {
			add(&data.Names, stringField(node, "name"))
			add(&data.LegalNames, stringField(node, "legalName"))
			add(&data.AlternateNames, stringField(node, "alternateName"))
			add(&data.URLs, stringField(node, "url"))
			add(&data.Logos, logoField(node))
		})
	})

	return data
}

// walkJSONLD recurses through a decoded JSON value, invoking visit for
// every object whose @type looks organization-like. Depth is capped.
func walkJSONLD(v any, depth int, visit func(map[string]any)) {
	if depth > jsonldMaxDepth {
		return
	}
	switch node := v.(type) {
	case map[string]any:
		if hasOrganizationType(node) {
			visit(node)
		}
		for _, child := range node {
			walkJSONLD(child, depth+1, visit)
		}
	case []any:
		for _, child := range node {
			walkJSONLD(child, depth+1, visit)
		}
	}
}

// hasOrganizationType checks @type, which may be a string or a list.
func hasOrganizationType(node map[string]any) bool {
	switch t := node["@type"].(type) {
	case string:
		return jsonldTypes[strings.ToLower(t)]
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && jsonldTypes[strings.ToLower(s)] {
				return true
			}
		}
	}
	return false
}

func stringField(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}

// logoField handles both a plain string logo and an ImageObject.
func logoField(node map[string]any) string {
	switch logo := node["logo"].(type) {
	case string:
		return logo
	case map[string]any:
		return stringField(logo, "url")
	}
	return ""
}
