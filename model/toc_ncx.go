package model

import "encoding/xml"

// TocNCX is the EPUB 2 table of contents, kept alongside nav.xhtml for
// older readers.
type TocNCX struct {
	XMLName  xml.Name   `xml:"ncx"`
	Xmlns    string     `xml:"xmlns,attr"`
	Version  string     `xml:"version,attr"`
	Head     TocNCXHead `xml:"head"`
	DocTitle string     `xml:"docTitle>text"`
	NavMap   NavMap     `xml:"navMap"`
}

type TocNCXHead struct {
	Meta []TocNCXHeadMeta `xml:"meta"`
}

type TocNCXHeadMeta struct {
	Content string `xml:"content,attr"`
	Name    string `xml:"name,attr"`
}

type NavMap struct {
	Points []*NavPoint `xml:"navPoint"`
}

type NavPoint struct {
	Id        string          `xml:"id,attr"`
	PlayOrder int             `xml:"playOrder,attr"`
	Label     string          `xml:"navLabel>text"`
	Content   NavPointContent `xml:"content"`
}

type NavPointContent struct {
	Src string `xml:"src,attr"`
}

func NewTocNCX(uid, title string) *TocNCX {
	return &TocNCX{
		Xmlns:   "http://www.daisy.org/z3986/2005/ncx/",
		Version: "2005-1",
		Head: TocNCXHead{Meta: []TocNCXHeadMeta{
			{Name: "dtb:uid", Content: uid},
			{Name: "dtb:depth", Content: "1"},
		}},
		DocTitle: title,
	}
}

// AddPoint appends a top-level entry; play order follows insertion order.
func (t *TocNCX) AddPoint(id, label, src string) {
	t.NavMap.Points = append(t.NavMap.Points, &NavPoint{
		Id:        id,
		PlayOrder: len(t.NavMap.Points) + 1,
		Label:     label,
		Content:   NavPointContent{Src: src},
	})
}

func (t *TocNCX) Marshal() ([]byte, error) {
	xmlBytes, err := xml.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), xmlBytes...), nil
}
