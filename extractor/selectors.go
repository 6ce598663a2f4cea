package extractor

import (
	"strings"

	"lightnovel-reader/model"
)

// Selector contract for the content site. Changing the markup mapping of a
// field means editing one line here.
const (
	NovelItem      = ".novel-item"
	ChapterItem    = ".chapter-item"
	ChapterContent = ".chapter-content p"
)

var novelItemRules = []Rule[model.Novel]{
	{Field: "id", Attr: "data-id", Set: func(n *model.Novel, v string) { n.ID = v }},
	{Field: "title", Selector: ".novel-title", Set: func(n *model.Novel, v string) { n.Title = v }},
	{Field: "author", Selector: ".novel-author", Set: func(n *model.Novel, v string) { n.Author = v }},
	{Field: "coverImage", Selector: "img", Attr: "src", Set: func(n *model.Novel, v string) { n.CoverImage = v }},
	{Field: "synopsis", Selector: ".novel-synopsis", Set: func(n *model.Novel, v string) { n.Synopsis = v }},
	{Field: "status", Selector: ".novel-status", Set: func(n *model.Novel, v string) { n.Status = v }},
	{Field: "rating", Selector: ".novel-rating", Set: func(n *model.Novel, v string) { n.Rating = v }},
}

// The detail page has no id of its own; the caller knows which novel it asked for.
var novelDetailRules = []Rule[model.Novel]{
	{Field: "title", Selector: ".novel-title", Set: func(n *model.Novel, v string) { n.Title = v }},
	{Field: "author", Selector: ".novel-author", Set: func(n *model.Novel, v string) { n.Author = v }},
	{Field: "coverImage", Selector: ".novel-cover img", Attr: "src", Set: func(n *model.Novel, v string) { n.CoverImage = v }},
	{Field: "synopsis", Selector: ".novel-synopsis", Set: func(n *model.Novel, v string) { n.Synopsis = v }},
	{Field: "status", Selector: ".novel-status", Set: func(n *model.Novel, v string) { n.Status = v }},
	{Field: "rating", Selector: ".novel-rating", Set: func(n *model.Novel, v string) { n.Rating = v }},
}

// Chapter pages only repeat the novel header.
var chapterNovelRules = []Rule[model.Novel]{
	{Field: "title", Selector: ".novel-title", Set: func(n *model.Novel, v string) { n.Title = v }},
	{Field: "author", Selector: ".novel-author", Set: func(n *model.Novel, v string) { n.Author = v }},
	{Field: "coverImage", Selector: ".novel-cover img", Attr: "src", Set: func(n *model.Novel, v string) { n.CoverImage = v }},
}

var chapterItemRules = []Rule[model.Chapter]{
	{Field: "id", Attr: "data-id", Set: func(c *model.Chapter, v string) { c.ID = v }},
	{Field: "title", Selector: ".chapter-title", Set: func(c *model.Chapter, v string) { c.Title = v }},
	{Field: "releaseDate", Selector: ".chapter-release-date", Set: func(c *model.Chapter, v string) { c.ReleaseDate = v }},
}

var chapterHeaderRules = []Rule[model.Chapter]{
	{Field: "title", Selector: ".chapter-title", Set: func(c *model.Chapter, v string) { c.Title = v }},
	{Field: "releaseDate", Selector: ".chapter-release-date", Set: func(c *model.Chapter, v string) { c.ReleaseDate = v }},
}

var navigationRules = []Rule[model.Navigation]{
	{Field: "prevChapterId", Selector: ".prev-chapter", Attr: "href", Transform: lastPathSegment,
		Set: func(n *model.Navigation, v string) { n.PrevChapterID = v }},
	{Field: "nextChapterId", Selector: ".next-chapter", Attr: "href", Transform: lastPathSegment,
		Set: func(n *model.Navigation, v string) { n.NextChapterID = v }},
}

// lastPathSegment returns what follows the final '/' of a link target.
func lastPathSegment(href string) string {
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
