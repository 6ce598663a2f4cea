package cmd

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lightnovel-reader/downloader"
	"lightnovel-reader/epub"
	"lightnovel-reader/template"
	"lightnovel-reader/text"
)

type exportArgs struct {
	format     string
	outputPath string
	from       int
	to         int
	delay      time.Duration
	noCover    bool
}

var eArgs exportArgs

var exportCmd = &cobra.Command{
	Use:   "export <novel-id>",
	Short: "Download a novel's chapters as an EPUB or text files",
	Long:  "Download a novel's chapters as an EPUB or text files, styled with the current font settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&eArgs.format, "format", "f", "epub", "output format: epub or txt")
	exportCmd.Flags().StringVarP(&eArgs.outputPath, "output-path", "o", "./novels", "output path")
	exportCmd.Flags().IntVar(&eArgs.from, "from", 0, "first chapter position, 1-based")
	exportCmd.Flags().IntVar(&eArgs.to, "to", 0, "last chapter position, inclusive")
	exportCmd.Flags().DurationVar(&eArgs.delay, "delay", time.Second, "pause between chapter requests")
	exportCmd.Flags().BoolVar(&eArgs.noCover, "no-cover", false, "skip the cover image")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if eArgs.format != "epub" && eArgs.format != "txt" {
		return fmt.Errorf("unknown format %q", eArgs.format)
	}
	src, err := getSource()
	if err != nil {
		return err
	}

	book, err := downloader.FetchBook(contextOf(cmd), src, args[0], downloader.BookOptions{
		From:      eArgs.from,
		To:        eArgs.to,
		Delay:     eArgs.delay,
		SkipCover: eArgs.noCover || eArgs.format == "txt",
	})
	if err != nil {
		return fmt.Errorf("failed to download novel: %w", err)
	}

	var savePath string
	switch eArgs.format {
	case "epub":
		savePath, err = epub.PackBookToEpub(book, eArgs.outputPath, template.StyleCSS(stores.Font.Get()), nil)
	case "txt":
		savePath, err = text.PackBookToText(book, eArgs.outputPath)
	}
	if err != nil {
		return fmt.Errorf("failed to export novel: %w", err)
	}

	log.Infof("Exported %d chapters to %s", len(book.Chapters), savePath)
	fmt.Fprintln(cmd.OutOrStdout(), currentPalette().success.Render(savePath))
	return nil
}
