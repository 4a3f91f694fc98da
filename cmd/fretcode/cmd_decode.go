package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"fretcode/internal/diagram"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	decodeCell      bool
	decodeGrid      bool
	decodeName      string
	decodePrintCell bool
)

// decodeCmd decodes a saved page offline
var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a saved chord page (or diagram cell) into a fingering code",
	Long: `Reads a chord page saved from the site and prints its fingering code.
Use "-" to read from stdin, --cell when the input is only the diagram cell
markup, and --grid to also print the extracted marker grid. --print-cell
prints the diagram cell of a saved page instead of decoding it, ready to be
fed back through --cell.

Example:
  curl -s 'http://www.all-guitar-chords.com/index.php?ch=C&get=Get' | fretcode decode -`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeCell, "cell", false, "Input is the diagram cell markup, not a full page")
	decodeCmd.Flags().BoolVar(&decodeGrid, "grid", false, "Print the extracted marker grid")
	decodeCmd.Flags().StringVar(&decodeName, "name", "", "Chord name; prints a catalog line instead of the bare code")
	decodeCmd.Flags().BoolVar(&decodePrintCell, "print-cell", false, "Print the page's diagram cell markup and exit")
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	if decodePrintCell {
		if decodeCell {
			return fmt.Errorf("--print-cell needs a full page, not --cell input")
		}
		markup, err := diagram.CellMarkup(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("extract %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(markup))
		return nil
	}

	var grid diagram.Grid
	if decodeCell {
		grid, err = diagram.ExtractGrid(string(data))
	} else {
		grid, err = diagram.ExtractPage(bytes.NewReader(data))
	}
	if err != nil {
		return fmt.Errorf("extract %s: %w", args[0], err)
	}
	logger.Debug("Extracted grid", zap.Int("strings", len(grid)))

	out := cmd.OutOrStdout()
	if decodeGrid {
		for i, stems := range grid.Stems() {
			fmt.Fprintf(out, "%d: %s\n", i, strings.Join(stems, " "))
		}
	}

	code, err := diagram.Encode(grid)
	if err != nil {
		return fmt.Errorf("encode %s: %w", args[0], err)
	}
	if decodeName != "" {
		fmt.Fprintf(out, "%s\t,%s\n", decodeName, code)
	} else {
		fmt.Fprintln(out, code)
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
