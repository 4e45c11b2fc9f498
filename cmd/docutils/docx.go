// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-utils/internal/markdown"
	"github.com/pdiddy/doc-utils/pkg/types"
)

const defaultDocsDir = "docs"

var docxCmd = &cobra.Command{
	Use:   "docx <file.docx>",
	Short: "Convert a .docx document to Markdown and extract its images",
	Long: `Docx renders the document's top-level paragraphs, then its table cells,
as Markdown. Heading styles become # headings, List Bullet and List Number
become list items, and every embedded image is written to the images
directory as history_<n>.<ext> and linked inline.

The Markdown goes to docs/<name>.md unless --output is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocx,
}

func init() {
	docxCmd.Flags().StringP("output", "o", "", "Markdown output path (default docs/<name>.md)")
	docxCmd.Flags().String("images-dir", defaultImageDir, "directory extracted images are written to")
	docxCmd.Flags().String("link-prefix", types.DefaultLinkPrefix, "directory prefix used in Markdown image links")
	docxCmd.Flags().String("strategy", string(types.StrategyStructural), "image source: structural or archive")
	docxCmd.Flags().String("manifest", "", "write a YAML manifest of extracted images to this file")
	bindFlags(docxCmd, "docx", "output", "images-dir", "link-prefix", "strategy", "manifest")

	rootCmd.AddCommand(docxCmd)
}

func runDocx(cmd *cobra.Command, args []string) error {
	doc := args[0]
	cfg := types.DocxConfig{
		Document:     doc,
		MarkdownPath: viper.GetString("docx.output"),
		ImagesDir:    viper.GetString("docx.images_dir"),
		LinkPrefix:   viper.GetString("docx.link_prefix"),
		Strategy:     types.ExtractionStrategy(viper.GetString("docx.strategy")),
		Manifest:     viper.GetString("docx.manifest"),
	}
	if cfg.MarkdownPath == "" {
		cfg.MarkdownPath = defaultMarkdownPath(doc)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid docx settings: %w", err)
	}

	result, err := markdown.ConvertFile(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.ImageFailures > 0 {
		return fmt.Errorf("%d image(s) could not be extracted", result.ImageFailures)
	}
	return nil
}

// defaultMarkdownPath maps report.docx to docs/report.md.
func defaultMarkdownPath(doc string) string {
	base := filepath.Base(doc)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(defaultDocsDir, name+".md")
}
