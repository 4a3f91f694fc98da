package main

import (
	"fmt"

	"fretcode/internal/catalog"
	"fretcode/internal/fetch"

	"github.com/spf13/cobra"
)

var (
	catalogChords     []string
	catalogVariations []string
	catalogURLs       bool
	urlVersion        int
)

// catalogCmd lists lookups
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the chord lookups a scrape would request",
	RunE:  runCatalog,
}

// urlCmd prints a lookup URL
var urlCmd = &cobra.Command{
	Use:   "url [chord] [variation]",
	Short: "Print the diagram page URL for a chord",
	Long: `Prints the page URL for one chord lookup.

Examples:
  fretcode url C#/Db maj7
  fretcode url D/F# --version 2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runURL,
}

func init() {
	catalogCmd.Flags().StringSliceVar(&catalogChords, "chord", nil, "Only list these chords (repeatable)")
	catalogCmd.Flags().StringArrayVar(&catalogVariations, "variation", nil, "Only list these variations (repeatable)")
	catalogCmd.Flags().BoolVar(&catalogURLs, "urls", false, "Print the page URL next to each name")

	urlCmd.Flags().IntVar(&urlVersion, "version", 0, "Diagram version (0 = default page)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	keys := catalog.FilterVariations(catalog.Filter(catalog.All(), catalogChords), catalogVariations)
	out := cmd.OutOrStdout()
	for _, k := range keys {
		if catalogURLs {
			fmt.Fprintf(out, "%s\t%s\n", k.Name(), fetch.BuildURL(cfg.Catalog.BaseURL, k, 0))
		} else {
			fmt.Fprintln(out, k.Name())
		}
	}
	return nil
}

func runURL(cmd *cobra.Command, args []string) error {
	key := catalog.Key{Chord: args[0]}
	if len(args) > 1 {
		key.Variation = args[1]
	}
	if urlVersion < 0 {
		return fmt.Errorf("invalid version: %d", urlVersion)
	}
	fmt.Fprintln(cmd.OutOrStdout(), fetch.BuildURL(cfg.Catalog.BaseURL, key, urlVersion))
	return nil
}
