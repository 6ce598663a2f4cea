package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lightnovel-reader/model"
)

const textWidth = 80

type palette struct {
	title   lipgloss.Style
	meta    lipgloss.Style
	id      lipgloss.Style
	body    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
}

func newPalette(theme model.Theme) palette {
	if theme == model.ThemeDark {
		return palette{
			title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")),
			meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
			id:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00")),
			body:    lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD")).Width(textWidth),
			muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true),
			success: lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		}
	}
	return palette{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2C3E50")),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		id:      lipgloss.NewStyle().Foreground(lipgloss.Color("#AA5500")),
		body:    lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")).Width(textWidth),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#008800")),
	}
}

func currentPalette() palette {
	if stores == nil {
		return newPalette(model.ThemeLight)
	}
	return newPalette(stores.Theme.Get())
}

func (p palette) novels(w io.Writer, novels []model.Novel) {
	if len(novels) == 0 {
		fmt.Fprintln(w, p.muted.Render("No novels found"))
		return
	}
	for _, n := range novels {
		line := p.id.Render(n.ID) + "  " + p.title.Render(n.Title)
		var meta []string
		if n.Author != "" {
			meta = append(meta, n.Author)
		}
		if n.Status != "" {
			meta = append(meta, n.Status)
		}
		if n.Rating != "" {
			meta = append(meta, "★ "+n.Rating)
		}
		if len(meta) > 0 {
			line += "  " + p.meta.Render(strings.Join(meta, " · "))
		}
		fmt.Fprintln(w, line)
	}
}

func (p palette) detail(w io.Writer, page *model.DetailPage, bookmarked bool) {
	title := p.title.Render(page.Novel.Title)
	if bookmarked {
		title += " " + p.success.Render("[bookmarked]")
	}
	fmt.Fprintln(w, title)
	if page.Novel.Author != "" {
		fmt.Fprintln(w, p.meta.Render("by "+page.Novel.Author))
	}
	if page.Novel.Status != "" {
		fmt.Fprintln(w, p.meta.Render(page.Novel.Status))
	}
	if page.Novel.Synopsis != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.body.Render(page.Novel.Synopsis))
	}
	fmt.Fprintln(w)
	if len(page.Chapters) == 0 {
		fmt.Fprintln(w, p.muted.Render("No chapters"))
		return
	}
	for _, c := range page.Chapters {
		line := p.id.Render(c.ID) + "  " + c.Title
		if c.ReleaseDate != "" {
			line += "  " + p.meta.Render(c.ReleaseDate)
		}
		fmt.Fprintln(w, line)
	}
}

func (p palette) chapter(w io.Writer, page *model.ChapterPage) {
	if page.Novel.Title != "" {
		fmt.Fprintln(w, p.meta.Render(page.Novel.Title))
	}
	fmt.Fprintln(w, p.title.Render(page.Chapter.Title))
	fmt.Fprintln(w)
	for _, paragraph := range page.Chapter.Content {
		fmt.Fprintln(w, p.body.Render(paragraph))
		fmt.Fprintln(w)
	}
	var nav []string
	if page.Navigation.HasPrev() {
		nav = append(nav, "prev: "+page.Navigation.PrevChapterID)
	}
	if page.Navigation.HasNext() {
		nav = append(nav, "next: "+page.Navigation.NextChapterID)
	}
	if len(nav) > 0 {
		fmt.Fprintln(w, p.muted.Render(strings.Join(nav, "  ")))
	}
}

func (p palette) history(w io.Writer, items []model.HistoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, p.muted.Render("No reading history"))
		return
	}
	for _, h := range items {
		fmt.Fprintf(w, "%s  %s / %s  %s\n",
			p.meta.Render(h.Timestamp.Local().Format("2006-01-02 15:04")),
			p.title.Render(h.NovelTitle),
			h.ChapterTitle,
			p.id.Render(h.NovelID+"/"+h.ChapterID),
		)
	}
}

func (p palette) font(w io.Writer, settings model.FontSettings) {
	fmt.Fprintf(w, "%s %dpx\n", p.meta.Render("font size:  "), settings.FontSize)
	fmt.Fprintf(w, "%s %.1f\n", p.meta.Render("line height:"), settings.LineHeight)
	fmt.Fprintf(w, "%s %s\n", p.meta.Render("font family:"), settings.FontFamily)
}
