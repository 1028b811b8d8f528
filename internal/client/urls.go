package client

import "fmt"

// ReleaseURL links to a torrent within its group page.
func (c *client) ReleaseURL(groupID, torrentID int) string {
	return fmt.Sprintf("%s/torrents.php?id=%d&torrentid=%d#torrent%d", c.baseURL, groupID, torrentID, torrentID)
}

// Permalink links to a torrent by id alone.
func (c *client) Permalink(torrentID int) string {
	return fmt.Sprintf("%s/torrents.php?torrentid=%d", c.baseURL, torrentID)
}
