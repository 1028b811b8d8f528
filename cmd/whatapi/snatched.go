package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whatbetter/whatapi/internal/client"
	"github.com/whatbetter/whatapi/internal/models"
)

var (
	snatchedMedia  []string
	snatchedSkip   []int
	snatchedFormat string
	snatchedLimit  int
)

var snatchedCmd = &cobra.Command{
	Use:   "snatched",
	Short: "List the torrents you have snatched",
	Long: `Walk the snatch history page by page and print one line per torrent:
group id, torrent id and the torrent URL.`,
	Args: cobra.NoArgs,
	RunE: runSnatched,
}

func init() {
	snatchedCmd.Flags().StringSliceVarP(&snatchedMedia, "media", "m", nil, "media to include (cd, dvd, vinyl, soundboard, sacd, dat, web, blu-ray); default all")
	snatchedCmd.Flags().IntSliceVar(&snatchedSkip, "skip", nil, "torrent ids to leave out")
	snatchedCmd.Flags().StringVarP(&snatchedFormat, "format", "f", "FLAC", "format filter")
	snatchedCmd.Flags().IntVarP(&snatchedLimit, "limit", "n", 0, "stop after this many entries (0 for no limit)")
}

func runSnatched(cmd *cobra.Command, _ []string) error {
	skip := make(map[int]struct{}, len(snatchedSkip))
	for _, id := range snatchedSkip {
		skip[id] = struct{}{}
	}
	opts := models.SnatchOptions{Skip: skip, Media: snatchedMedia, Format: snatchedFormat}

	return withSession(cmd.Context(), func(ctx context.Context, c client.Client) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		out := cmd.OutOrStdout()
		count := 0
		for result := range c.StreamSnatched(ctx, opts) {
			if result.Err != nil {
				return fmt.Errorf("snatch history stopped after %d entries: %w", count, result.Err)
			}
			entry := result.Value
			fmt.Fprintf(out, "%d\t%d\t%s\n", entry.GroupID, entry.TorrentID, c.ReleaseURL(entry.GroupID, entry.TorrentID))
			count++
			if snatchedLimit > 0 && count >= snatchedLimit {
				cancel()
				break
			}
		}

		logger.Info().Int("entries", count).Msg("Snatch history listed")
		return nil
	})
}
