package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule maps one fragment of a page onto one field of T.
type Rule[T any] struct {
	Field string
	// Selector is evaluated relative to the scope; empty means the scope itself.
	Selector string
	// Attr names the attribute to read; empty reads the trimmed text.
	Attr string
	// Transform is applied to non-empty values.
	Transform func(string) string
	Set       func(*T, string)
}

// Value reads the rule's fragment from scope. Absent fragments yield "".
func (r Rule[T]) Value(scope *goquery.Selection) string {
	s := scope
	if r.Selector != "" {
		s = scope.Find(r.Selector).First()
	}
	if s.Length() == 0 {
		return ""
	}

	var v string
	if r.Attr != "" {
		v = s.AttrOr(r.Attr, "")
	} else {
		v = s.Text()
	}
	v = strings.TrimSpace(v)
	if v != "" && r.Transform != nil {
		v = r.Transform(v)
	}
	return v
}

func apply[T any](scope *goquery.Selection, rules []Rule[T], dst *T) {
	for _, r := range rules {
		r.Set(dst, r.Value(scope))
	}
}

// collect applies rules to every match of container, in document order.
func collect[T any](doc *goquery.Selection, container string, rules []Rule[T]) []T {
	items := make([]T, 0)
	doc.Find(container).Each(func(i int, s *goquery.Selection) {
		var item T
		apply(s, rules, &item)
		items = append(items, item)
	})
	return items
}
