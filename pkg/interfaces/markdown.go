package interfaces

// DefaultOrder is the sentinel order assigned to documents that do not declare
// an explicit `order` key. It sorts them after every ordered sibling.
const DefaultOrder = 999

// FrontMatter models the metadata block recognised at the head of a document.
// Only the keys used by navigation and relocation are surfaced; everything
// else in the block is ignored.
type FrontMatter struct {
	Title       string
	Order       int
	HasOrder    bool
	Folder      string
	Description string
}

// HasTitle reports whether the block declared a non-empty title.
func (f FrontMatter) HasTitle() bool {
	return f.Title != ""
}
