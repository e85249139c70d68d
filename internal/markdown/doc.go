// Package markdown reads the metadata block at the head of documentation
// pages and performs the small body edits the relocation utility needs.
// Parsing never fails hard: a missing or malformed block degrades to "no
// metadata" so a single bad page cannot break a site build.
package markdown
