package testutil

import (
	"fmt"
	"strings"
)

// SnatchRowOptions describes one row of a generated snatch listing
type SnatchRowOptions struct {
	GroupID   int
	TorrentID int
	Artist    string
	Title     string
	// RawAmpersand writes the href with a bare "&" instead of "&amp;".
	RawAmpersand bool
}

// GenerateSnatchListHTML builds a snatch history page shaped like the gazelle
// torrents.php?type=snatched listing. When hasNext is true the pager carries
// the "Next &gt;" link.
func GenerateSnatchListHTML(rows []SnatchRowOptions, page int, hasNext bool) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Snatched torrents</title></head>
<body>
<div class="thin">
	<div class="linkbox">` + pagerHTML(page, hasNext) + `</div>
	<table class="torrent_table">
		<tr class="colhead">
			<td>Name</td><td>Files</td><td>Time</td><td>Size</td><td>Snatches</td><td>Seeders</td><td>Leechers</td>
		</tr>
`)

	for i, row := range rows {
		if row.Artist == "" {
			row.Artist = "Artist"
		}
		if row.Title == "" {
			row.Title = fmt.Sprintf("Album %d", i+1)
		}
		amp := "&amp;"
		if row.RawAmpersand {
			amp = "&"
		}

		fmt.Fprintf(&sb, `		<tr class="torrent">
			<td>
				<span>[<a href="torrents.php?action=download&amp;id=%d&amp;authkey=x&amp;torrent_pass=y" title="Download">DL</a>]</span>
				<a href="artist.php?id=1">%s</a> - <a href="torrents.php?id=%d%storrentid=%d" title="View Torrent">%s</a>
			</td>
			<td>12</td><td>2 years ago</td><td>312.50 MB</td><td>4</td><td>3</td><td>0</td>
		</tr>
`, row.TorrentID, row.Artist, row.GroupID, amp, row.TorrentID, row.Title)
	}

	sb.WriteString(`	</table>
	<div class="linkbox">` + pagerHTML(page, hasNext) + `</div>
</div>
</body>
</html>`)

	return sb.String()
}

func pagerHTML(page int, hasNext bool) string {
	var sb strings.Builder
	if page > 1 {
		fmt.Fprintf(&sb, `<a href="torrents.php?page=%d&amp;type=snatched"><strong>&lt; Prev</strong></a> | `, page-1)
	}
	fmt.Fprintf(&sb, `<strong>%d</strong>`, page)
	if hasNext {
		fmt.Fprintf(&sb, ` | <a href="torrents.php?page=%d&amp;type=snatched" class="pager_next"><strong>Next &gt;</strong></a>`, page+1)
	}
	return sb.String()
}
