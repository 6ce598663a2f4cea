package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	htmltemplate "html/template"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"lightnovel-reader/model"
	"lightnovel-reader/utils"
)

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

var chapterXHTML = htmltemplate.Must(htmltemplate.New("chapter").Parse(`<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
  <title>{{.Title}}</title>
  <link rel="stylesheet" type="text/css" href="../Styles/style.css"/>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{- if .ReleaseDate}}
  <p class="release-date">{{.ReleaseDate}}</p>
  {{- end}}
  {{- range .Content}}
  <p>{{.}}</p>
  {{- end}}
</body>
</html>
`))

var navXHTML = htmltemplate.Must(htmltemplate.New("nav").Parse(`<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
  <title>{{.Title}}</title>
</head>
<body>
  <nav epub:type="toc" id="toc">
    <h1>{{.Title}}</h1>
    <ol>
    {{- range .Chapters}}
      <li><a href="{{.Href}}">{{.Title}}</a></li>
    {{- end}}
    </ol>
  </nav>
</body>
</html>
`))

type navEntry struct {
	Href  string
	Title string
}

// PackBookToEpub writes book as outputPath/<title>.epub and returns the file path.
func PackBookToEpub(book *model.Book, outputPath string, styleCSS string, extraFiles []model.ExtraFile) (string, error) {
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %v", err)
	}
	savePath := filepath.Join(outputPath, utils.CleanDirName(book.Novel.Title)+".epub")
	zipFile, err := os.Create(savePath)
	if err != nil {
		return "", fmt.Errorf("failed to create epub file: %v", err)
	}
	defer zipFile.Close()

	if err := WriteEpub(zipFile, book, styleCSS, extraFiles); err != nil {
		return "", err
	}
	return savePath, zipFile.Close()
}

// WriteEpub streams the EPUB archive of book to w.
func WriteEpub(w io.Writer, book *model.Book, styleCSS string, extraFiles []model.ExtraFile) error {
	zipWriter := zip.NewWriter(w)

	// mimetype must be the first entry, stored uncompressed
	if err := addBytesToZip(zipWriter, "mimetype", []byte("application/epub+zip"), zip.Store); err != nil {
		return err
	}
	if err := addBytesToZip(zipWriter, "META-INF/container.xml", []byte(containerXML), zip.Deflate); err != nil {
		return err
	}

	bookID := "book-id"
	uid := "urn:uuid:" + uuid.New().String()
	opf := model.NewPackageDocument(bookID)
	opf.Metadata.Titles = []model.DCTitle{{Value: book.Novel.Title}}
	opf.Metadata.Identifiers = []model.DCIdentifier{{Value: uid, ID: bookID}}
	opf.Metadata.Languages = []model.DCLanguage{{Value: "en"}}
	if book.Novel.Author != "" {
		opf.Metadata.Creators = []model.DCCreator{{Value: book.Novel.Author}}
	}
	if book.Novel.Synopsis != "" {
		opf.Metadata.Descriptions = []model.DCDescription{{Value: book.Novel.Synopsis}}
	}
	opf.Metadata.Metas = []model.DublinCoreMeta{
		{Property: "dcterms:modified", Value: time.Now().UTC().Format("2006-01-02T15:04:05Z")},
	}

	opf.Manifest.Items = append(opf.Manifest.Items,
		model.ManifestItem{ID: "nav", Link: "nav.xhtml", Media: "application/xhtml+xml", Properties: "nav"},
		model.ManifestItem{ID: "ncx", Link: "toc.ncx", Media: "application/x-dtbncx+xml"},
		model.ManifestItem{ID: "style", Link: "Styles/style.css", Media: "text/css"},
	)
	opf.Spine.Toc = "ncx"
	ncx := model.NewTocNCX(uid, book.Novel.Title)
	if err := addBytesToZip(zipWriter, "OEBPS/Styles/style.css", []byte(styleCSS), zip.Deflate); err != nil {
		return err
	}

	if len(book.Cover) > 0 {
		cover := coverFile(book.Novel.CoverImage, book.Cover)
		extraFiles = append([]model.ExtraFile{cover}, extraFiles...)
		opf.Metadata.Metas = append(opf.Metadata.Metas, model.DublinCoreMeta{Name: "cover", Content: cover.ManifestItem.ID})
	}
	for _, file := range extraFiles {
		if err := addBytesToZip(zipWriter, path.Join("OEBPS", file.Path), file.Data, zip.Deflate); err != nil {
			return err
		}
		opf.Manifest.Items = append(opf.Manifest.Items, file.ManifestItem)
	}

	nav := make([]navEntry, 0, len(book.Chapters))
	opf.Spine.Items = append(opf.Spine.Items, model.SpineItem{IDref: "nav"})
	for i, chapter := range book.Chapters {
		id := fmt.Sprintf("chapter-%03v", i+1)
		href := fmt.Sprintf("Text/%s.xhtml", id)

		var buf bytes.Buffer
		buf.WriteString(xml.Header)
		if err := chapterXHTML.Execute(&buf, chapter); err != nil {
			return fmt.Errorf("failed to render chapter %v: %v", chapter.ID, err)
		}
		if err := addBytesToZip(zipWriter, "OEBPS/"+href, buf.Bytes(), zip.Deflate); err != nil {
			return err
		}

		opf.Manifest.Items = append(opf.Manifest.Items, model.ManifestItem{ID: id, Link: href, Media: "application/xhtml+xml"})
		opf.Spine.Items = append(opf.Spine.Items, model.SpineItem{IDref: id})
		nav = append(nav, navEntry{Href: href, Title: chapter.Title})
		ncx.AddPoint(id, chapter.Title, href)
	}

	ncxBytes, err := ncx.Marshal()
	if err != nil {
		return fmt.Errorf("failed to create toc NCX: %v", err)
	}
	if err := addBytesToZip(zipWriter, "OEBPS/toc.ncx", ncxBytes, zip.Deflate); err != nil {
		return err
	}

	var navBuf bytes.Buffer
	navBuf.WriteString(xml.Header)
	err = navXHTML.Execute(&navBuf, struct {
		Title    string
		Chapters []navEntry
	}{book.Novel.Title, nav})
	if err != nil {
		return fmt.Errorf("failed to render contents: %v", err)
	}
	if err := addBytesToZip(zipWriter, "OEBPS/nav.xhtml", navBuf.Bytes(), zip.Deflate); err != nil {
		return err
	}

	opfBytes, err := opf.Marshal()
	if err != nil {
		return fmt.Errorf("failed to create content OPF: %v", err)
	}
	if err := addBytesToZip(zipWriter, "OEBPS/content.opf", opfBytes, zip.Deflate); err != nil {
		return err
	}

	log.Debugf("Packed %d chapters of %s", len(book.Chapters), book.Novel.Title)
	return zipWriter.Close()
}

func coverFile(coverURL string, data []byte) model.ExtraFile {
	ext := strings.ToLower(path.Ext(strings.SplitN(coverURL, "?", 2)[0]))
	media := mime.TypeByExtension(ext)
	if ext == "" || !strings.HasPrefix(media, "image/") {
		ext, media = ".jpg", "image/jpeg"
	}
	return model.ExtraFile{
		Data: data,
		Path: "Images/cover" + ext,
		ManifestItem: model.ManifestItem{
			ID:         "cover",
			Link:       "Images/cover" + ext,
			Media:      media,
			Properties: "cover-image",
		},
	}
}

func addBytesToZip(zipWriter *zip.Writer, relPath string, content []byte, method uint16) error {
	header := &zip.FileHeader{
		Name:   relPath,
		Method: method,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write(content)
	return err
}
