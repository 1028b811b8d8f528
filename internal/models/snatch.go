package models

// SnatchEntry identifies one torrent in the snatch history listing
type SnatchEntry struct {
	GroupID   int `json:"groupId"`
	TorrentID int `json:"torrentId"`
}

// SnatchPage is the parsed content of one listing page
type SnatchPage struct {
	Entries []SnatchEntry
	HasNext bool
}

// SnatchOptions narrows a snatch history scrape
type SnatchOptions struct {
	// Skip holds torrent ids that are not emitted.
	Skip map[int]struct{}
	// Media lists lowercase media names ("cd", "vinyl", ...). Empty means every lossless media.
	Media []string
	// Format is the format filter. Defaults to FLAC.
	Format string
}
