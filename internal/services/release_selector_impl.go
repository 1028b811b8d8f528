package services

import (
	"github.com/whatbetter/whatapi/internal/models"
)

// DefaultReleaseSelector is the default implementation of ReleaseSelector
type DefaultReleaseSelector struct{}

// NewReleaseSelector creates a new instance of DefaultReleaseSelector
func NewReleaseSelector() ReleaseSelector {
	return &DefaultReleaseSelector{}
}

// Select filters groups without touching the input slices.
//
// In best seeded mode the first torrent of a group is the baseline whatever its
// format, and a match must have strictly more seeders to replace it. A group
// whose only match is its first torrent therefore yields nothing.
func (s *DefaultReleaseSelector) Select(groups []models.TorrentGroup, format string, bestSeeded bool) []models.TorrentGroup {
	selected := make([]models.TorrentGroup, 0, len(groups))
	for _, group := range groups {
		kept := s.selectTorrents(group.Torrents, format, bestSeeded)
		if len(kept) == 0 {
			continue
		}
		group.Torrents = kept
		selected = append(selected, group)
	}
	return selected
}

func (s *DefaultReleaseSelector) selectTorrents(torrents []models.Torrent, format string, bestSeeded bool) []models.Torrent {
	if len(torrents) == 0 {
		return nil
	}

	var kept []models.Torrent
	best := torrents[0]
	for _, t := range torrents {
		if t.Format != format {
			continue
		}
		if !bestSeeded {
			kept = append(kept, t)
			continue
		}
		if t.Seeders > best.Seeders {
			kept = []models.Torrent{t}
			best = t
		}
	}
	return kept
}
