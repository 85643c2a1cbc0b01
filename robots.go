package siteglean

import (
	"bufio"
	"regexp"
	"strings"
	"time"
)

// RobotsRules holds the rules parsed from a site's robots.txt for the
// wildcard agent. The zero value means "allow all".
type RobotsRules struct {
	Allow      []string      `json:"allow,omitempty"`
	Disallow   []string      `json:"disallow,omitempty"`
	CrawlDelay time.Duration `json:"crawlDelay,omitempty"`
	Sitemaps   []string      `json:"sitemaps,omitempty"`
}

// ParseRobots parses a robots.txt body into rules for the "*" agent.
//
// The parser is line-oriented: a "User-agent: *" line opens a block whose
// Allow/Disallow/Crawl-delay directives accumulate until the next
// User-agent line; blocks for specific agents are skipped. "Sitemap:"
// lines are collected regardless of the active block. Malformed lines are
// ignored; an empty body yields allow-all rules.
func ParseRobots(body string) RobotsRules {
	var rules RobotsRules
	inStarBlock := false

	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			inStarBlock = value == "*"
		case "sitemap":
			if value != "" {
				rules.Sitemaps = append(rules.Sitemaps, value)
			}
		case "allow":
			if inStarBlock && value != "" {
				rules.Allow = append(rules.Allow, value)
			}
		case "disallow":
			if inStarBlock && value != "" {
				rules.Disallow = append(rules.Disallow, value)
			}
		case "crawl-delay":
			if inStarBlock {
				if d, err := time.ParseDuration(value + "s"); err == nil && d > 0 {
					rules.CrawlDelay = d
				}
			}
		}
	}

	return rules
}

// Allows reports whether the path is permitted by the rules.
//
// A path with no matching rule is allowed. Otherwise the longest matching
// Allow rule is compared against the longest matching Disallow rule, where
// rule length excludes "*" and "$" metacharacters; on an exact-length tie,
// allow wins.
func (r RobotsRules) Allows(path string) bool {
	if path == "" {
		path = "/"
	}

	bestAllow := -1
	for _, rule := range r.Allow {
		if ruleMatches(rule, path) {
			if n := ruleMatchLength(rule); n > bestAllow {
				bestAllow = n
			}
		}
	}

	bestDisallow := -1
	for _, rule := range r.Disallow {
		if ruleMatches(rule, path) {
			if n := ruleMatchLength(rule); n > bestDisallow {
				bestDisallow = n
			}
		}
	}

	if bestDisallow == -1 {
		return true
	}
	return bestAllow >= bestDisallow
}

// ruleMatchLength is the rule's specificity: its length excluding
// metacharacters.
func ruleMatchLength(rule string) int {
	return len(rule) - strings.Count(rule, "*") - strings.Count(rule, "$")
}

// ruleMatches reports whether a robots rule pattern matches the path.
// "*" matches any run of characters; a trailing "$" anchors the rule to
// the end of the path. Rules are otherwise prefix patterns.
func ruleMatches(rule, path string) bool {
	if rule == "" {
		return false
	}

	anchored := strings.HasSuffix(rule, "$")
	if anchored {
		rule = strings.TrimSuffix(rule, "$")
	}

	parts := strings.Split(rule, "*")
	var b strings.Builder
	b.WriteString("^")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	if anchored {
		b.WriteString("$")
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(path)
}
