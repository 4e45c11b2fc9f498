// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-utils/internal/convert"
	"github.com/pdiddy/doc-utils/internal/encoder"
	"github.com/pdiddy/doc-utils/pkg/types"
)

const defaultImageDir = "public/pic"

var webpCmd = &cobra.Command{
	Use:   "webp [dir]",
	Short: "Convert PNG, JPEG, GIF and BMP images to WebP",
	Long: `WebP converts every recognized image directly inside dir (default
public/pic) to WebP with ffmpeg or cwebp. An image whose .webp sibling
already exists is skipped; the source is deleted after a successful
conversion, so rerunning the command only picks up new images.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWebP,
}

func init() {
	webpCmd.Flags().String("dir", defaultImageDir, "directory to scan for images")
	webpCmd.Flags().Int("quality", types.DefaultQuality, "WebP quality, 0-100")
	webpCmd.Flags().String("encoder", "", "encoder backend: ffmpeg or cwebp (default: first found)")
	bindFlags(webpCmd, "webp", "dir", "quality", "encoder")

	rootCmd.AddCommand(webpCmd)
}

func runWebP(cmd *cobra.Command, args []string) error {
	cfg := types.WebPConfig{
		Dir:     viper.GetString("webp.dir"),
		Quality: viper.GetInt("webp.quality"),
		Encoder: types.EncoderBackend(viper.GetString("webp.encoder")),
	}
	if len(args) > 0 {
		cfg.Dir = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid webp settings: %w", err)
	}

	enc, err := encoder.Detect(cfg.Encoder)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Using encoder: %s\n", enc.Name())

	result, err := convert.ConvertDir(enc, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d image(s) failed conversion", result.Failed)
	}
	return nil
}
