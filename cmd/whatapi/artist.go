package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/whatbetter/whatapi/internal/client"
)

var (
	artistFormat string
	artistAll    bool
	artistJSON   bool
)

var artistCmd = &cobra.Command{
	Use:   "artist <id>",
	Short: "List an artist's releases in one format",
	Long: `List the release groups of an artist that have a torrent in the requested
format. By default only the best seeded matching torrent of each group is kept;
--all keeps every match.`,
	Args: cobra.ExactArgs(1),
	RunE: runArtist,
}

func init() {
	artistCmd.Flags().StringVarP(&artistFormat, "format", "f", "FLAC", "torrent format to keep")
	artistCmd.Flags().BoolVarP(&artistAll, "all", "a", false, "keep every matching torrent instead of the best seeded one")
	artistCmd.Flags().BoolVar(&artistJSON, "json", false, "print the filtered response as JSON")
}

func runArtist(cmd *cobra.Command, args []string) error {
	artistID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid artist id %q: %w", args[0], err)
	}

	return withSession(cmd.Context(), func(ctx context.Context, c client.Client) error {
		artist, err := c.Artist(ctx, artistID, artistFormat, !artistAll)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if artistJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(artist)
		}

		if len(artist.TorrentGroups) == 0 {
			fmt.Fprintf(out, "No %s releases found for %s.\n", artistFormat, artist.Name)
			return nil
		}

		fmt.Fprintf(out, "%s: %d release groups\n", artist.Name, len(artist.TorrentGroups))
		for _, group := range artist.TorrentGroups {
			fmt.Fprintf(out, "\n%s (%d)\n", group.GroupName, group.GroupYear)
			for _, t := range group.Torrents {
				fmt.Fprintf(out, "  %s %s %s, %d seeders  %s\n",
					t.Media, t.Format, t.Encoding, t.Seeders, c.ReleaseURL(group.GroupID, t.ID))
			}
		}
		return nil
	})
}
