package text

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"lightnovel-reader/model"
	"lightnovel-reader/utils"
)

// PackBookToText writes one .txt file per chapter under outputPath/<title>
// and returns that directory. An existing directory is replaced.
func PackBookToText(book *model.Book, outputPath string) (string, error) {
	outputPath = filepath.Join(outputPath, utils.CleanDirName(book.Novel.Title))
	_, err := os.Stat(outputPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to get output directory: %v", err)
		}
	} else {
		err = os.RemoveAll(outputPath)
		if err != nil {
			return "", fmt.Errorf("failed to remove output directory: %v", err)
		}
	}
	err = os.MkdirAll(outputPath, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory: %v", err)
	}

	for i, chapter := range book.Chapters {
		name := utils.CleanDirName(fmt.Sprintf("%03d-%s.txt", i+1, chapter.Title))
		chapterPath := filepath.Join(outputPath, name)
		err = os.WriteFile(chapterPath, []byte(ChapterText(chapter)), 0644)
		if err != nil {
			return "", fmt.Errorf("failed to write chapter file: %v", err)
		}
	}
	log.Debugf("Wrote %d chapters to %s", len(book.Chapters), outputPath)
	return outputPath, nil
}

// ChapterText renders a chapter as plain text: the title, a blank line, then
// one paragraph per line separated by blank lines.
func ChapterText(chapter model.Chapter) string {
	var sb strings.Builder
	sb.WriteString(chapter.Title)
	sb.WriteString("\n\n")
	if chapter.ReleaseDate != "" {
		sb.WriteString(chapter.ReleaseDate)
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.Join(chapter.Content, "\n\n"))
	sb.WriteString("\n")
	return sb.String()
}
