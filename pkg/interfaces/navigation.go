package interfaces

import "encoding/json"

// NavItem is a single sidebar or top-level navigation entry as consumed by the
// documentation renderer. Pages carry Link; groups carry Items and Collapsed.
type NavItem struct {
	Text      string    `json:"text" yaml:"text"`
	Link      string    `json:"link,omitempty" yaml:"link,omitempty"`
	Collapsed *bool     `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Items     []NavItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// IsGroup reports whether the entry renders as a nested group.
func (n NavItem) IsGroup() bool {
	return n.Link == "" && n.Collapsed != nil
}

// Group builds a group entry. Groups are emitted expanded.
func Group(text string, items ...NavItem) NavItem {
	collapsed := false
	if items == nil {
		items = []NavItem{}
	}
	return NavItem{Text: text, Collapsed: &collapsed, Items: items}
}

// Page builds a leaf entry.
func Page(text, link string) NavItem {
	return NavItem{Text: text, Link: link}
}

type groupView struct {
	Text      string    `json:"text" yaml:"text"`
	Collapsed bool      `json:"collapsed" yaml:"collapsed"`
	Items     []NavItem `json:"items" yaml:"items"`
}

type pageView NavItem

func (n NavItem) view() any {
	if !n.IsGroup() {
		return pageView(n)
	}
	items := n.Items
	if items == nil {
		items = []NavItem{}
	}
	return groupView{Text: n.Text, Collapsed: *n.Collapsed, Items: items}
}

// MarshalJSON keeps "items" on empty groups so the renderer still draws them.
func (n NavItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.view())
}

// MarshalYAML mirrors MarshalJSON for gopkg.in/yaml.v3.
func (n NavItem) MarshalYAML() (any, error) {
	return n.view(), nil
}

// Sidebar maps a section prefix (e.g. "/guide/") to its navigation entries.
type Sidebar map[string][]NavItem

// Navigation is the full structure handed to the renderer.
type Navigation struct {
	Nav     []NavItem `json:"nav" yaml:"nav"`
	Sidebar Sidebar   `json:"sidebar" yaml:"sidebar"`
}

// RelocationResult summarises a relocation batch.
type RelocationResult struct {
	Moved   []RelocatedDocument
	Assets  []RelocatedAsset
	Failed  []RelocationFailure
	Skipped int
}

// RelocatedDocument records where a staged document ended up.
type RelocatedDocument struct {
	Source      string
	Destination string
}

// RelocatedAsset records an image moved into the shared asset directory.
type RelocatedAsset struct {
	Document    string
	Source      string
	Destination string
	URL         string
}

// RelocationFailure captures a per-file failure. The batch continues past it.
type RelocationFailure struct {
	Path string
	Err  error
}
