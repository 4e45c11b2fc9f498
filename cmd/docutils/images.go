// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-utils/internal/images"
	"github.com/pdiddy/doc-utils/pkg/types"
)

var imagesCmd = &cobra.Command{
	Use:   "images <file.docx>",
	Short: "Extract the images embedded in a .docx document",
	Long: `Images writes every image of the document to the images directory as
history_<n><ext>. The archive strategy (default) copies each word/media/
entry of the package as is; the structural strategy follows the drawings
referenced from paragraphs and tables.`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().String("images-dir", defaultImageDir, "directory images are written to")
	imagesCmd.Flags().String("strategy", string(types.StrategyArchive), "extraction strategy: archive or structural")
	imagesCmd.Flags().String("manifest", "", "write a YAML manifest of extracted images to this file")
	bindFlags(imagesCmd, "images", "images-dir", "strategy", "manifest")

	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	cfg := types.ImagesConfig{
		Document:  args[0],
		ImagesDir: viper.GetString("images.images_dir"),
		Strategy:  types.ExtractionStrategy(viper.GetString("images.strategy")),
		Manifest:  viper.GetString("images.manifest"),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid images settings: %w", err)
	}

	ex, err := images.New(cfg.Strategy)
	if err != nil {
		return err
	}
	result, err := ex.Extract(cfg.Document, cfg.ImagesDir, os.Stdout)
	if err != nil {
		return err
	}

	if cfg.Manifest != "" {
		m := images.Manifest{Document: cfg.Document, Strategy: ex.Name(), Images: result.Images}
		if err := images.WriteManifest(cfg.Manifest, m); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Manifest written: %s\n", cfg.Manifest)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d image(s) could not be extracted", result.Failed)
	}
	return nil
}
