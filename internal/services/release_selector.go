package services

import (
	"github.com/whatbetter/whatapi/internal/models"
)

// ReleaseSelector defines the interface for filtering an artist's release groups
type ReleaseSelector interface {
	// Select keeps, per group, the torrents matching format. With bestSeeded only the
	// best seeded match survives. Groups left without torrents are dropped.
	Select(groups []models.TorrentGroup, format string, bestSeeded bool) []models.TorrentGroup
}
