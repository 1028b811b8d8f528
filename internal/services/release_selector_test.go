package services

import (
	"math/rand"
	"testing"

	"github.com/whatbetter/whatapi/internal/models"
)

func torrent(id int, format string, seeders int) models.Torrent {
	return models.Torrent{ID: id, Format: format, Seeders: seeders}
}

func TestNewReleaseSelector(t *testing.T) {
	selector := NewReleaseSelector()
	if selector == nil {
		t.Fatal("NewReleaseSelector should return a non-nil selector")
	}

	var _ ReleaseSelector = selector //nolint:staticcheck // explicit interface compliance check
}

func TestSelect(t *testing.T) {
	selector := NewReleaseSelector()

	tests := []struct {
		name       string
		groups     []models.TorrentGroup
		format     string
		bestSeeded bool
		expected   map[int][]int // group id -> torrent ids
	}{
		{
			name: "all matching torrents in order",
			groups: []models.TorrentGroup{{GroupID: 1, Torrents: []models.Torrent{
				torrent(11, "FLAC", 3), torrent(12, "MP3", 9), torrent(13, "FLAC", 1),
			}}},
			format:   "FLAC",
			expected: map[int][]int{1: {11, 13}},
		},
		{
			name: "best seeded replaces baseline",
			groups: []models.TorrentGroup{{GroupID: 1, Torrents: []models.Torrent{
				torrent(11, "MP3", 2), torrent(12, "FLAC", 5), torrent(13, "FLAC", 8), torrent(14, "FLAC", 8),
			}}},
			format:     "FLAC",
			bestSeeded: true,
			expected:   map[int][]int{1: {13}},
		},
		{
			name: "best seeded needs more seeders than first torrent",
			groups: []models.TorrentGroup{{GroupID: 1, Torrents: []models.Torrent{
				torrent(11, "MP3", 20), torrent(12, "FLAC", 5),
			}}},
			format:     "FLAC",
			bestSeeded: true,
			expected:   map[int][]int{},
		},
		{
			name: "best seeded drops group whose only match is first",
			groups: []models.TorrentGroup{{GroupID: 1, Torrents: []models.Torrent{
				torrent(11, "FLAC", 50), torrent(12, "MP3", 2),
			}}},
			format:     "FLAC",
			bestSeeded: true,
			expected:   map[int][]int{},
		},
		{
			name: "group without matches is dropped",
			groups: []models.TorrentGroup{
				{GroupID: 1, Torrents: []models.Torrent{torrent(11, "MP3", 1)}},
				{GroupID: 2, Torrents: []models.Torrent{torrent(21, "FLAC", 1)}},
			},
			format:   "FLAC",
			expected: map[int][]int{2: {21}},
		},
		{
			name: "group without torrents is dropped",
			groups: []models.TorrentGroup{
				{GroupID: 1},
				{GroupID: 2, Torrents: []models.Torrent{torrent(21, "FLAC", 0), torrent(22, "FLAC", 4)}},
			},
			format:     "FLAC",
			bestSeeded: true,
			expected:   map[int][]int{2: {22}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := selector.Select(tt.groups, tt.format, tt.bestSeeded)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d groups, got %d: %+v", len(tt.expected), len(result), result)
			}
			for _, g := range result {
				want, ok := tt.expected[g.GroupID]
				if !ok {
					t.Fatalf("Unexpected group %d", g.GroupID)
				}
				if len(g.Torrents) != len(want) {
					t.Fatalf("Group %d: expected torrents %v, got %+v", g.GroupID, want, g.Torrents)
				}
				for i, id := range want {
					if g.Torrents[i].ID != id {
						t.Errorf("Group %d torrent %d: expected id %d, got %d", g.GroupID, i, id, g.Torrents[i].ID)
					}
				}
			}
		})
	}
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	groups := []models.TorrentGroup{{GroupID: 1, Torrents: []models.Torrent{
		torrent(11, "FLAC", 1), torrent(12, "MP3", 1), torrent(13, "FLAC", 1),
	}}}

	result := NewReleaseSelector().Select(groups, "FLAC", false)
	if len(groups[0].Torrents) != 3 {
		t.Fatalf("Input group was modified: %+v", groups[0].Torrents)
	}
	result[0].Torrents[0].ID = 999
	if groups[0].Torrents[0].ID != 11 {
		t.Error("Output torrents must not alias the input slice")
	}
}

func randomGroups(r *rand.Rand) []models.TorrentGroup {
	formats := []string{"FLAC", "MP3", "AAC"}
	groups := make([]models.TorrentGroup, r.Intn(6))
	id := 1
	for i := range groups {
		groups[i].GroupID = i + 1
		torrents := make([]models.Torrent, r.Intn(6))
		for j := range torrents {
			torrents[j] = torrent(id, formats[r.Intn(len(formats))], r.Intn(10))
			id++
		}
		groups[i].Torrents = torrents
	}
	return groups
}

func TestSelect_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	selector := NewReleaseSelector()

	for iteration := 0; iteration < 500; iteration++ {
		groups := randomGroups(r)
		byID := make(map[int]models.TorrentGroup, len(groups))
		for _, g := range groups {
			byID[g.GroupID] = g
		}

		// Best seeded: one torrent per group, matching format, holding the max
		// seeders among matches, and beating the group's first torrent.
		for _, g := range selector.Select(groups, "FLAC", true) {
			if len(g.Torrents) != 1 {
				t.Fatalf("Best seeded group %d has %d torrents", g.GroupID, len(g.Torrents))
			}
			picked := g.Torrents[0]
			if picked.Format != "FLAC" {
				t.Fatalf("Picked torrent %d has format %s", picked.ID, picked.Format)
			}
			original := byID[g.GroupID]
			if picked.Seeders <= original.Torrents[0].Seeders {
				t.Fatalf("Picked torrent %d does not beat the first torrent", picked.ID)
			}
			for _, other := range original.Torrents {
				if other.Format == "FLAC" && other.Seeders > picked.Seeders {
					t.Fatalf("Torrent %d has more seeders than picked %d", other.ID, picked.ID)
				}
			}
		}

		// All matches: an in-order subsequence containing every match.
		selected := selector.Select(groups, "FLAC", false)
		selectedByID := make(map[int]models.TorrentGroup, len(selected))
		for _, g := range selected {
			if len(g.Torrents) == 0 {
				t.Fatalf("Group %d kept with no torrents", g.GroupID)
			}
			selectedByID[g.GroupID] = g
		}
		for _, original := range groups {
			var want []int
			for _, tr := range original.Torrents {
				if tr.Format == "FLAC" {
					want = append(want, tr.ID)
				}
			}
			got, ok := selectedByID[original.GroupID]
			if len(want) == 0 {
				if ok {
					t.Fatalf("Group %d has no matches but was kept", original.GroupID)
				}
				continue
			}
			if !ok || len(got.Torrents) != len(want) {
				t.Fatalf("Group %d: expected %v, got %+v", original.GroupID, want, got.Torrents)
			}
			for i, id := range want {
				if got.Torrents[i].ID != id {
					t.Fatalf("Group %d: order mismatch at %d", original.GroupID, i)
				}
			}
		}

		// Output keeps input group order.
		last := 0
		for _, g := range selected {
			if g.GroupID <= last {
				t.Fatalf("Group order not preserved")
			}
			last = g.GroupID
		}
	}
}
