package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/whatbetter/whatapi/internal/apperrors"
	"github.com/whatbetter/whatapi/internal/metrics"
	"github.com/whatbetter/whatapi/internal/models"
)

const defaultSnatchFormat = "FLAC"

// StreamSnatched walks the snatch history one page at a time. The next page is
// requested only once the consumer has taken every entry of the current one.
// When the requested media cover every lossless media type a single unfiltered
// listing is read, otherwise one listing per media type.
func (c *client) StreamSnatched(ctx context.Context, opts models.SnatchOptions) <-chan models.StreamResult[models.SnatchEntry] {
	ch := make(chan models.StreamResult[models.SnatchEntry])

	go func() {
		defer close(ch)

		send := func(result models.StreamResult[models.SnatchEntry]) bool {
			select {
			case ch <- result:
				return true
			case <-ctx.Done():
				return false
			}
		}

		partitions, err := snatchPartitions(opts.Media)
		if err != nil {
			send(models.StreamResult[models.SnatchEntry]{Err: err})
			return
		}

		account, ok := c.currentAccount()
		if !ok {
			send(models.StreamResult[models.SnatchEntry]{Err: apperrors.ErrNotAuthenticated})
			return
		}

		format := opts.Format
		if format == "" {
			format = defaultSnatchFormat
		}

		logger := c.logger.With().Str("format", format).Int("user_id", account.ID).Logger()
		emitted := 0

		for _, media := range partitions {
			for page := 1; ; page++ {
				if ctx.Err() != nil {
					return
				}

				result, err := c.fetchSnatchPage(ctx, account.ID, format, media, page)
				if err != nil {
					send(models.StreamResult[models.SnatchEntry]{Err: err})
					return
				}
				logger.Debug().Str("media", media).Int("page", page).Int("entries", len(result.Entries)).Msg("Fetched snatch page")

				for _, entry := range result.Entries {
					if _, skip := opts.Skip[entry.TorrentID]; skip {
						continue
					}
					if !send(models.StreamResult[models.SnatchEntry]{Value: entry}) {
						return
					}
					metrics.SnatchEntriesTotal.Inc()
					emitted++
				}

				if !result.HasNext {
					break
				}
			}
		}

		logger.Info().Int("entries", emitted).Int("partitions", len(partitions)).Msg("Finished reading snatch history")
	}()

	return ch
}

// snatchPartitions resolves media names to the media query values to walk.
// An empty string stands for the unfiltered listing.
func snatchPartitions(names []string) ([]string, error) {
	lossless := models.LosslessMedia()
	if len(names) == 0 {
		return []string{""}, nil
	}

	requested := make(map[models.MediaType]struct{}, len(names))
	for _, name := range names {
		media, ok := models.ParseMediaType(name)
		if !ok {
			return nil, apperrors.NewUnsupportedMediaError(name)
		}
		requested[media] = struct{}{}
	}

	if len(requested) == len(lossless) {
		return []string{""}, nil
	}

	partitions := make([]string, 0, len(requested))
	for _, media := range lossless {
		if _, ok := requested[media]; ok {
			partitions = append(partitions, media.String())
		}
	}
	return partitions, nil
}

func (c *client) fetchSnatchPage(ctx context.Context, userID int, format, media string, page int) (result *models.SnatchPage, err error) {
	defer func() { metrics.RequestsTotal.WithLabelValues("snatched", metrics.Outcome(err)).Inc() }()

	query := url.Values{}
	query.Set("type", "snatched")
	query.Set("userid", strconv.Itoa(userID))
	query.Set("format", format)
	if media != "" {
		query.Set("media", media)
	}
	query.Set("page", strconv.Itoa(page))

	resp, err := c.send(ctx, c.httpClient, http.MethodGet, c.endpoint("torrents.php")+"?"+query.Encode(), nil, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snatch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.RequestError{
			Action:  "snatched",
			Status:  resp.Status,
			Message: fmt.Sprintf("page %d", page),
		}
	}

	result, err = c.snatchParser.ParsePage(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse snatch page %d: %w", page, err)
	}
	return result, nil
}
