package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ALC-PRESS-INC/folio/internal/manifest"
	"github.com/ALC-PRESS-INC/folio/internal/positions"
	"github.com/ALC-PRESS-INC/folio/internal/publication"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Inspect EPUB publications and their position tables",
	Long: `folio opens EPUB publications and exposes their reading order,
author page lists, and the computed global positions table used for
page numbers, progress display, and bookmarking.`,
}

var infoCmd = &cobra.Command{
	Use:   "info EPUB",
	Short: "Print publication metadata and reading order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pub, err := publication.Open(args[0])
		if err != nil {
			return err
		}
		defer pub.Close()

		md := pub.Metadata
		fmt.Printf("Title:      %s\n", md.Title)
		for _, author := range md.Authors {
			fmt.Printf("Author:     %s\n", author)
		}
		fmt.Printf("Language:   %s\n", md.Language)
		fmt.Printf("Identifier: %s\n", md.Identifier)
		if md.Publisher != "" {
			fmt.Printf("Publisher:  %s\n", md.Publisher)
		}
		fmt.Printf("Page list:  %d entries\n", len(pub.PageList))

		fmt.Println("\nReading order:")
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  HREF\tLAYOUT\tARCHIVE\tORIGINAL")
		for _, link := range pub.ReadingOrder {
			fmt.Fprintf(w, "  %s\t%s\t%d\t%d\n", link.Href, link.Layout, link.ArchiveLength, link.OriginalLength)
		}
		return w.Flush()
	},
}

var positionsCmd = &cobra.Command{
	Use:   "positions EPUB",
	Short: "Compute and print the global positions table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategyName, _ := cmd.Flags().GetString("strategy")
		pageLength, _ := cmd.Flags().GetInt64("page-length")
		asJSON, _ := cmd.Flags().GetBool("json")

		strategy, err := parseStrategy(strategyName, pageLength)
		if err != nil {
			return err
		}

		pub, err := publication.OpenWithOptions(args[0], publication.OpenOptions{Strategy: strategy})
		if err != nil {
			return err
		}
		defer pub.Close()

		locators, err := pub.Positions(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return printPositionsJSON(locators)
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
		fmt.Fprintln(w, "POS\tHREF\tPROGRESSION\tTOTAL")
		for _, loc := range locators {
			fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\n",
				loc.Locations.Position, loc.Href,
				loc.Locations.Progression, loc.Locations.TotalProgression)
		}
		return w.Flush()
	},
}

var coverCmd = &cobra.Command{
	Use:   "cover EPUB",
	Short: "Extract the cover image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		maxSize, _ := cmd.Flags().GetInt("max-size")

		pub, err := publication.Open(args[0])
		if err != nil {
			return err
		}
		defer pub.Close()

		img, err := pub.CoverFitting(maxSize, maxSize)
		if err != nil {
			return err
		}

		if err := imaging.Save(img, output); err != nil {
			return fmt.Errorf("failed to save cover: %w", err)
		}
		fmt.Printf("Saved cover to %s\n", output)
		return nil
	},
}

// parseStrategy maps the --strategy and --page-length flags onto an
// estimation strategy.
func parseStrategy(name string, pageLength int64) (positions.Strategy, error) {
	switch name {
	case "archive":
		return positions.ArchiveEntryLengthStrategy(pageLength), nil
	case "original":
		return positions.OriginalLengthStrategy(pageLength), nil
	default:
		return positions.Strategy{}, fmt.Errorf("unknown strategy %q (want archive or original)", name)
	}
}

// positionJSON is the CLI's JSON shape for one locator.
type positionJSON struct {
	Href             string  `json:"href"`
	Type             string  `json:"type,omitempty"`
	Title            string  `json:"title,omitempty"`
	Position         int     `json:"position"`
	Progression      float64 `json:"progression"`
	TotalProgression float64 `json:"totalProgression"`
}

func printPositionsJSON(locators []manifest.Locator) error {
	out := make([]positionJSON, 0, len(locators))
	for _, loc := range locators {
		out = append(out, positionJSON{
			Href:             loc.Href,
			Type:             loc.MediaType,
			Title:            loc.Title,
			Position:         loc.Locations.Position,
			Progression:      loc.Locations.Progression,
			TotalProgression: loc.Locations.TotalProgression,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	positionsCmd.Flags().String("strategy", "archive", "Estimation strategy: archive or original")
	positionsCmd.Flags().Int64("page-length", positions.DefaultPageLength, "Bytes per estimated page")
	positionsCmd.Flags().Bool("json", false, "Print positions as JSON")

	coverCmd.Flags().StringP("output", "o", "cover.png", "Output image path")
	coverCmd.Flags().Int("max-size", 1024, "Maximum cover width/height in pixels")

	rootCmd.AddCommand(infoCmd, positionsCmd, coverCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
