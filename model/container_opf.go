package model

import "encoding/xml"

// PackageDocument is the EPUB 3 package document (content.opf).
type PackageDocument struct {
	XMLName  xml.Name           `xml:"package"`
	Xmlns    string             `xml:"xmlns,attr"`
	Version  string             `xml:"version,attr"`
	UniqueID string             `xml:"unique-identifier,attr"`
	Metadata DublinCoreMetadata `xml:"metadata"`
	Manifest Manifest           `xml:"manifest"`
	Spine    Spine              `xml:"spine"`
}

func NewPackageDocument(bookID string) *PackageDocument {
	return &PackageDocument{
		Xmlns:    "http://www.idpf.org/2007/opf",
		Version:  "3.0",
		UniqueID: bookID,
		Metadata: DublinCoreMetadata{XmlnsDC: "http://purl.org/dc/elements/1.1/"},
	}
}

func (p *PackageDocument) Marshal() ([]byte, error) {
	xmlBytes, err := xml.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), xmlBytes...), nil
}

type DublinCoreMetadata struct {
	XmlnsDC string `xml:"xmlns:dc,attr"`

	Titles       []DCTitle       `xml:"dc:title"`
	Identifiers  []DCIdentifier  `xml:"dc:identifier"`
	Languages    []DCLanguage    `xml:"dc:language"`
	Creators     []DCCreator     `xml:"dc:creator"`
	Descriptions []DCDescription `xml:"dc:description"`

	// EPUB 3 <meta> refinements
	Metas []DublinCoreMeta `xml:"meta"`
}

type DCTitle struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr,omitempty"`
}

type DCIdentifier struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr,omitempty"`
}

type DCLanguage struct {
	Value string `xml:",chardata"`
}

type DCCreator struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr,omitempty"`
}

type DCDescription struct {
	Value string `xml:",chardata"`
}

type DublinCoreMeta struct {
	Name     string `xml:"name,attr,omitempty"`
	Content  string `xml:"content,attr,omitempty"`
	Value    string `xml:",chardata"`
	Property string `xml:"property,attr,omitempty"`
}

type Manifest struct {
	Items []ManifestItem `xml:"item"`
}

type ManifestItem struct {
	ID         string `xml:"id,attr"`
	Link       string `xml:"href,attr"`
	Media      string `xml:"media-type,attr,omitempty"`
	Properties string `xml:"properties,attr,omitempty"`
}

type Spine struct {
	Toc   string      `xml:"toc,attr,omitempty"`
	Items []SpineItem `xml:"itemref"`
}

type SpineItem struct {
	IDref string `xml:"idref,attr"`
}
