// Package tmscrape provides the shared mechanics behind page scrapers for a
// football statistics site: fetching a page with anti-blocking pacing,
// parsing its HTML into an XPath-queryable tree, and a small extraction DSL
// over that tree (values, lists, ranges, joined strings, pagination).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, htmlquery/).
package tmscrape
