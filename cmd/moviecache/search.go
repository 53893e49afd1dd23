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
	"github.com/vmunix/moviecache/pkg/titlematch"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search movies by title",
	Long: `Search movies by title.

Examples:
  moviecache search "The Matrix"
  moviecache search --page 2 batman
  moviecache search --best "Heat 1995"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Int("page", 1, "Result page (1-100)")
	searchCmd.Flags().Bool("best", false, "Show details of the closest title match")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	page, _ := cmd.Flags().GetInt("page")
	best, _ := cmd.Flags().GetBool("best")
	out := cmd.OutOrStdout()

	client := NewClient(serverURL)
	results, err := client.Search(query, page)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if best {
		return showBest(out, client, query, results)
	}

	if jsonOutput {
		return printJSON(out, results)
	}
	printSearchHuman(out, query, page, results)
	return nil
}

// showBest prints details for the hit whose title is closest to query.
func showBest(out io.Writer, client *Client, query string, results *omdb.SearchResponse) error {
	candidates := make([]titlematch.Candidate, len(results.Search))
	for i, item := range results.Search {
		candidates[i] = titlematch.Candidate{Title: item.Title, Year: item.Year}
	}

	match := titlematch.Best(query, candidates)
	if match.Index < 0 {
		return fmt.Errorf("no confident match for %q", query)
	}

	movie, err := client.Movie(results.Search[match.Index].IMDBID)
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}
	if jsonOutput {
		return printJSON(out, movie)
	}
	fmt.Fprintf(out, "Best match (%s confidence, %.2f)\n\n", match.Confidence, match.Score)
	printMovieHuman(out, movie)
	return nil
}

func printSearchHuman(out io.Writer, query string, page int, r *omdb.SearchResponse) {
	if len(r.Search) == 0 {
		fmt.Fprintln(out, "No movies found")
		return
	}

	p := message.NewPrinter(language.English)
	total, err := strconv.Atoi(r.TotalResults)
	if err != nil {
		total = len(r.Search)
	}
	pages := (total + 9) / 10
	p.Fprintf(out, "%d results for %q (page %d of %d)\n\n", total, query, page, pages)

	for i, item := range r.Search {
		fmt.Fprintf(out, "%3d  %-45s %-10s %-7s %s\n", i+1, truncate(item.Title, 45), item.Year, item.Type, item.IMDBID)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
