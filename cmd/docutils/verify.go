// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-utils/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file.md>",
	Short: "Check that every image linked from a Markdown file exists",
	Long: `Verify parses the Markdown file and resolves each local image link under
the root directory (default public, where pic/ links are served from).
Remote links are listed but not checked. The command fails when any local
image is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("root", verify.DefaultRoot, "directory image links are resolved against")
	bindFlags(verifyCmd, "verify", "root")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	report, err := verify.Check(args[0], viper.GetString("verify.root"))
	if err != nil {
		return err
	}
	verify.Print(os.Stdout, report)
	if n := len(report.Missing()); n > 0 {
		return fmt.Errorf("%d linked image(s) missing", n)
	}
	return nil
}
