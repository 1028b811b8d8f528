package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/whatbetter/whatapi/internal/config"
	"github.com/whatbetter/whatapi/internal/models"
)

// NextPageMarker is the pager link text shown on every listing page except the last.
const NextPageMarker = "Next >"

// torrentLinkPattern matches torrent permalinks once goquery has decoded the
// &amp; entities in the href.
var torrentLinkPattern = regexp.MustCompile(`torrents\.php\?id=(\d+)&torrentid=(\d+)`)

// SnatchParser extracts (group id, torrent id) pairs from the snatch history listing
type SnatchParser struct{}

// NewSnatchParser creates a new snatch listing parser
func NewSnatchParser() *SnatchParser {
	return &SnatchParser{}
}

// ParseHtml returns the entries of a listing page, ignoring pagination.
func (p *SnatchParser) ParseHtml(body io.Reader) ([]models.SnatchEntry, error) {
	page, err := p.ParsePage(body, "")
	if err != nil {
		return nil, err
	}
	return page.Entries, nil
}

// ParsePage returns every torrent link of the page in rendering order and
// whether the page carries the next-page marker. Duplicate links are kept.
func (p *SnatchParser) ParsePage(body io.Reader, contentType string) (*models.SnatchPage, error) {
	logger := config.GetLogger()

	utf8Body, err := NewUTF8Reader(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &models.SnatchPage{}
	doc.Find("a[href]").Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		entry, ok := p.extractEntryFromHref(href)
		if !ok {
			return
		}
		page.Entries = append(page.Entries, entry)
	})

	page.HasNext = strings.Contains(doc.Text(), NextPageMarker)

	logger.Debug().
		Int("entries", len(page.Entries)).
		Bool("hasNext", page.HasNext).
		Msg("Parsed snatch listing page")

	return page, nil
}

// extractEntryFromHref pulls the group and torrent ids out of a torrent link
func (p *SnatchParser) extractEntryFromHref(href string) (models.SnatchEntry, bool) {
	matches := torrentLinkPattern.FindStringSubmatch(href)
	if len(matches) != 3 {
		return models.SnatchEntry{}, false
	}

	groupID, err := strconv.Atoi(matches[1])
	if err != nil {
		return models.SnatchEntry{}, false
	}
	torrentID, err := strconv.Atoi(matches[2])
	if err != nil {
		return models.SnatchEntry{}, false
	}

	return models.SnatchEntry{GroupID: groupID, TorrentID: torrentID}, true
}
