package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightnovel-reader/model"
)

func TestRuleValue(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div id="scope" data-id=" x1 ">
			<span class="a">  first  </span>
			<span class="a">second</span>
			<a class="link" href="/p/q/r">go</a>
		</div>`))
	require.NoError(t, err)
	scope := doc.Find("#scope")

	tests := []struct {
		name string
		rule Rule[model.Novel]
		want string
	}{
		{"scope attribute", Rule[model.Novel]{Attr: "data-id"}, "x1"},
		{"first text match", Rule[model.Novel]{Selector: ".a"}, "first"},
		{"missing selector", Rule[model.Novel]{Selector: ".missing"}, ""},
		{"missing attribute", Rule[model.Novel]{Selector: ".a", Attr: "title"}, ""},
		{"transform", Rule[model.Novel]{Selector: ".link", Attr: "href", Transform: lastPathSegment}, "r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Value(scope))
		})
	}
}

func TestRuleTablesAreComplete(t *testing.T) {
	tables := map[string][]string{}
	for _, r := range novelItemRules {
		tables["novelItem"] = append(tables["novelItem"], r.Field)
		assert.NotNil(t, r.Set, r.Field)
	}
	for _, r := range chapterItemRules {
		tables["chapterItem"] = append(tables["chapterItem"], r.Field)
		assert.NotNil(t, r.Set, r.Field)
	}
	for _, r := range navigationRules {
		tables["navigation"] = append(tables["navigation"], r.Field)
		assert.NotNil(t, r.Set, r.Field)
	}

	assert.Equal(t, []string{"id", "title", "author", "coverImage", "synopsis", "status", "rating"}, tables["novelItem"])
	assert.Equal(t, []string{"id", "title", "releaseDate"}, tables["chapterItem"])
	assert.Equal(t, []string{"prevChapterId", "nextChapterId"}, tables["navigation"])
}
