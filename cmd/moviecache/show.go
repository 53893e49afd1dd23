package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vmunix/moviecache/internal/omdb"
)

var showCmd = &cobra.Command{
	Use:   "show <imdb-id>",
	Short: "Show movie details",
	Long: `Show full details for a movie.

Examples:
  moviecache show tt0111161
  moviecache show --json tt0111161`,
	Args: cobra.ExactArgs(1),
	RunE: runShowCmd,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the server is up",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	movie, err := NewClient(serverURL).Movie(args[0])
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), movie)
	}
	printMovieHuman(cmd.OutOrStdout(), movie)
	return nil
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	status, err := NewClient(serverURL).Health()
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), status)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Server:     %s (%s)\n", serverURL, status.Status)
	return nil
}

func printMovieHuman(out io.Writer, m *omdb.Movie) {
	fmt.Fprintf(out, "%s (%s)\n", m.Title, m.Year)
	fmt.Fprintln(out, strings.Repeat("-", len([]rune(m.Title))+len(m.Year)+3))

	row := func(label, value string) {
		if value != "" && value != "N/A" {
			fmt.Fprintf(out, "%-11s %s\n", label+":", value)
		}
	}
	row("IMDb", m.IMDBID)
	row("Rated", m.Rated)
	row("Released", m.Released)
	row("Runtime", m.Runtime)
	row("Genre", m.Genre)
	row("Director", m.Director)
	row("Writer", m.Writer)
	row("Actors", m.Actors)
	row("Rating", formatRating(m.IMDBRating, m.IMDBVotes))
	for _, r := range m.Ratings {
		if r.Source != "Internet Movie Database" {
			row(r.Source, r.Value)
		}
	}
	row("Box office", m.BoxOffice)
	row("Awards", m.Awards)

	if m.Plot != "" && m.Plot != "N/A" {
		fmt.Fprintf(out, "\n%s\n", m.Plot)
	}
}

// formatRating renders "9.3/10 (2,900,123 votes)".
func formatRating(rating, votes string) string {
	if rating == "" || rating == "N/A" {
		return ""
	}
	n, err := strconv.Atoi(strings.ReplaceAll(votes, ",", ""))
	if err != nil {
		return rating + "/10"
	}
	return message.NewPrinter(language.English).Sprintf("%s/10 (%d votes)", rating, n)
}
