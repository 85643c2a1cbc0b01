// Package siteglean turns an arbitrary company website into structured
// marketing data: brand identity, page taxonomy, color and typography
// palette, and classified content sections. It crawls a single target site
// within strict resource bounds, parses the HTML it finds, and runs
// multi-signal heuristics to infer the brand, information architecture,
// visual style, and marketing sections with per-field confidence scores.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., http/, goquery/,
// crawl/, pipeline/).
package siteglean
