// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-utils/internal/images"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.docx>",
	Short: "List the media entries stored in a .docx document",
	Long: `Inspect lists every word/media/ entry of the document package with its
content type and size, in archive order. Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	entries, err := images.ListMedia(args[0])
	if err != nil {
		return err
	}
	return printMedia(os.Stdout, entries)
}

func printMedia(w io.Writer, entries []images.MediaEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No media entries found.")
		return err
	}

	headers := []string{"#", "Entry", "Type", "Size", "Stored"}
	rows := make([][]string, 0, len(entries))
	var total uint64
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i),
			e.Name,
			e.ContentType,
			humanize.Bytes(e.Size),
			humanize.Bytes(e.CompressedSize),
		})
		total += e.Size
	}

	if !isTerminal(w) {
		_, err := io.WriteString(w, renderPlain(headers, rows))
		return err
	}
	fmt.Fprintln(w, renderTable(headers, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight}))
	_, err := fmt.Fprintf(w, "%d entries, %s\n", len(entries), humanize.Bytes(total))
	return err
}
