package navigation

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// orderer sorts sibling entries by explicit order, then numeric name prefix
// (prefixed before unprefixed), then optionally directories before pages,
// then collated title, then path. The last key makes the order total.
type orderer struct {
	collator         *collate.Collator
	directoriesFirst bool
}

func newOrderer(tag language.Tag, directoriesFirst bool) *orderer {
	return &orderer{
		collator:         collate.New(tag),
		directoriesFirst: directoriesFirst,
	}
}

func (o *orderer) sort(entries []entry) {
	slices.SortStableFunc(entries, o.compare)
}

func (o *orderer) compare(a, b entry) int {
	if c := cmp.Compare(a.order, b.order); c != 0 {
		return c
	}

	switch {
	case a.hasPrefix && b.hasPrefix:
		if c := cmp.Compare(a.prefix, b.prefix); c != 0 {
			return c
		}
	case a.hasPrefix:
		return -1
	case b.hasPrefix:
		return 1
	}

	if o.directoriesFirst && a.isDir != b.isDir {
		if a.isDir {
			return -1
		}
		return 1
	}

	if c := o.collator.CompareString(a.item.Text, b.item.Text); c != 0 {
		return c
	}
	return strings.Compare(a.key, b.key)
}
