package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/whatbetter/whatapi/internal/apperrors"
	"github.com/whatbetter/whatapi/internal/models"
)

// Artist fetches an artist and keeps, per release group, the torrents of the
// requested format. With bestSeeded each group is reduced to its best seeded match.
func (c *client) Artist(ctx context.Context, artistID int, format string, bestSeeded bool) (*models.ArtistResponse, error) {
	if !c.Authenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}

	key := "artist:" + strconv.Itoa(artistID)
	raw, ok := c.cache.Get(ctx, key)
	if ok {
		c.logger.Debug().Int("artist_id", artistID).Msg("Artist served from cache")
	} else {
		response, err := c.Request(ctx, "artist", url.Values{"id": {strconv.Itoa(artistID)}})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch artist %d: %w", artistID, err)
		}
		raw = response
		c.cache.Set(ctx, key, raw)
	}

	var artist models.ArtistResponse
	if err := json.Unmarshal(raw, &artist); err != nil {
		return nil, &apperrors.ProtocolError{
			Action: "artist",
			Reason: "unexpected artist payload",
			Body:   excerpt(raw),
			Err:    err,
		}
	}
	artist.Raw = json.RawMessage(raw)

	total := len(artist.TorrentGroups)
	artist.TorrentGroups = c.selector.Select(artist.TorrentGroups, format, bestSeeded)

	c.logger.Info().
		Int("artist_id", artistID).
		Str("format", format).
		Bool("best_seeded", bestSeeded).
		Int("groups", total).
		Int("selected", len(artist.TorrentGroups)).
		Msg("Selected artist releases")

	return &artist, nil
}
