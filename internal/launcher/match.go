package launcher

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/example/gomenu/internal/menu"
)

// Rank matches items against non-empty query text and orders them best
// first, keeping at most max entries (0 keeps all). Matching runs over the
// full breadcrumb, so "new window" and "file new" both find
// File > New Window.
func Rank(items []*menu.Item, text string, fuzzyMode bool, max int) []RankItem {
	ranked := match(items, text, fuzzyMode)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if max > 0 && len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

func match(items []*menu.Item, text string, fuzzyMode bool) []RankItem {
	if fuzzyMode {
		return fuzzyMatch(items, text)
	}
	return substringMatch(items, text)
}

// substringMatch is the default: case-folded containment, scored by how
// much of the matched field the query covers. A hit on the item title
// outranks a hit that only lands somewhere in the breadcrumb.
func substringMatch(items []*menu.Item, text string) []RankItem {
	needle := fold(text)
	ranked := make([]RankItem, 0, len(items))
	for _, it := range items {
		if title := fold(it.Text()); strings.Contains(title, needle) {
			ranked = append(ranked, RankItem{Item: it, Score: coverage(needle, title)})
			continue
		}
		if crumb := fold(it.Subtext()); strings.Contains(crumb, needle) {
			ranked = append(ranked, RankItem{Item: it, Score: coverage(needle, crumb) / 2})
		}
	}
	return ranked
}

// itemSource adapts a snapshot to the fuzzy matcher.
type itemSource []*menu.Item

func (s itemSource) String(i int) string { return s[i].Subtext() }
func (s itemSource) Len() int            { return len(s) }

// fuzzyMatch delegates ranking to the matcher and converts its ordering
// into descending scores, best match first at 1.
func fuzzyMatch(items []*menu.Item, text string) []RankItem {
	ms := fuzzy.FindFrom(text, itemSource(items))
	ranked := make([]RankItem, 0, len(ms))
	for i, m := range ms {
		ranked = append(ranked, RankItem{
			Item:  items[m.Index],
			Score: float64(len(ms)-i) / float64(len(ms)),
		})
	}
	return ranked
}

func fold(s string) string {
	return strings.ToLower(s)
}

// coverage is the share of the candidate the query accounts for, in
// (0, 1]. Querying "copy" scores Copy above Copy Style.
func coverage(needle, candidate string) float64 {
	if len(candidate) == 0 {
		return 0
	}
	return float64(len(needle)) / float64(len(candidate))
}
