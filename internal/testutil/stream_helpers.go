package testutil

import (
	"context"

	"github.com/whatbetter/whatapi/internal/models"
)

// CollectSnatches drains a snatch stream. Entries received before an error are
// returned together with it, mirroring what a consumer would have seen.
// This is a test helper and should not be used in production code.
func CollectSnatches(ctx context.Context, stream <-chan models.StreamResult[models.SnatchEntry]) ([]models.SnatchEntry, error) {
	var entries []models.SnatchEntry
	for {
		select {
		case result, ok := <-stream:
			if !ok {
				return entries, nil
			}
			if result.Err != nil {
				return entries, result.Err
			}
			entries = append(entries, result.Value)
		case <-ctx.Done():
			return entries, ctx.Err()
		}
	}
}
