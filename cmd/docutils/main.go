// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docutils CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// envFile is loaded from the working directory before any command runs.
const envFile = ".env"

// rootCmd is the base command for the docutils CLI.
var rootCmd = &cobra.Command{
	Use:   "docutils",
	Short: "Document asset utilities: WebP conversion and DOCX extraction",
	Long: `docutils prepares document assets for a static site. It converts raster
images to WebP through an external encoder, turns .docx documents into
Markdown with their embedded images, and extracts images from .docx files.

Every flag can also be set in docutils.yaml or through DOCUTILS_* environment
variables (for example DOCUTILS_WEBP_QUALITY=90). A .env file in the working
directory is loaded first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Values already in the environment win over .env.
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docutils.yaml or ~/.config/docutils/docutils.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docutils")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docutils"))
		}
	}

	viper.SetEnvPrefix("DOCUTILS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds each named flag of cmd to the viper key <section>.<name>,
// with dashes in the flag name turned into underscores.
func bindFlags(cmd *cobra.Command, section string, names ...string) {
	for _, name := range names {
		key := section + "." + strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
