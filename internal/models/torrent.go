package models

import "encoding/json"

// Torrent is one upload (format/media/edition) inside a release group, as
// returned by the artist AJAX action. Raw keeps the complete object so fields
// not modelled here survive a round trip.
type Torrent struct {
	ID                  int             `json:"id"`
	GroupID             int             `json:"groupId,omitempty"`
	Media               string          `json:"media"`
	Format              string          `json:"format"`
	Encoding            string          `json:"encoding"`
	Remastered          bool            `json:"remastered"`
	RemasterYear        int             `json:"remasterYear"`
	RemasterTitle       string          `json:"remasterTitle"`
	RemasterRecordLabel string          `json:"remasterRecordLabel"`
	Scene               bool            `json:"scene"`
	HasLog              bool            `json:"hasLog"`
	HasCue              bool            `json:"hasCue"`
	LogScore            int             `json:"logScore"`
	FileCount           int             `json:"fileCount"`
	Size                int64           `json:"size"`
	Seeders             int             `json:"seeders"`
	Leechers            int             `json:"leechers"`
	Snatched            int             `json:"snatched"`
	FreeTorrent         bool            `json:"freeTorrent"`
	Time                string          `json:"time"`
	Raw                 json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps a copy of the raw object.
func (t *Torrent) UnmarshalJSON(data []byte) error {
	type plain Torrent
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Torrent(p)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the object as received when available.
func (t Torrent) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	type plain Torrent
	return json.Marshal(plain(t))
}

// TorrentGroup is a release group (album, EP, ...) with its torrents in the
// order the tracker rendered them.
type TorrentGroup struct {
	GroupID              int       `json:"groupId"`
	GroupName            string    `json:"groupName"`
	GroupYear            int       `json:"groupYear"`
	GroupRecordLabel     string    `json:"groupRecordLabel"`
	GroupCatalogueNumber string    `json:"groupCatalogueNumber"`
	Tags                 []string  `json:"tags"`
	ReleaseType          int       `json:"releaseType"`
	GroupVanityHouse     bool      `json:"groupVanityHouse"`
	HasBookmarked        bool      `json:"hasBookmarked"`
	Torrents             []Torrent `json:"torrent"`
}

// ArtistResponse is the decoded payload of the artist AJAX action.
type ArtistResponse struct {
	ID                   int             `json:"id"`
	Name                 string          `json:"name"`
	NotificationsEnabled bool            `json:"notificationsEnabled"`
	HasBookmarked        bool            `json:"hasBookmarked"`
	Image                string          `json:"image"`
	Body                 string          `json:"body"`
	VanityHouse          bool            `json:"vanityHouse"`
	Tags                 json.RawMessage `json:"tags,omitempty"`
	SimilarArtists       json.RawMessage `json:"similarArtists,omitempty"`
	Statistics           json.RawMessage `json:"statistics,omitempty"`
	TorrentGroups        []TorrentGroup  `json:"torrentgroup"`
	Requests             json.RawMessage `json:"requests,omitempty"`

	// Raw is the response as received, before any torrent selection.
	Raw json.RawMessage `json:"-"`
}
