package services

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/whatbetter/whatapi/internal/apperrors"
	"github.com/whatbetter/whatapi/internal/models"
)

const (
	uploadTypeMusic   = "0"
	importanceMain    = "0"
	uploadFormat      = "FLAC"
	uploadBitrate     = "Lossless"
	torrentFieldName  = "file_input"
	logfileFieldName  = "logfiles[]"
	defaultReleaseMsg = "Uploaded with [url=https://bitbucket.org/whatbetter/autotunes]autotunes[/url]."
)

var (
	// ErrMissingTorrent is returned when the upload has no torrent file
	ErrMissingTorrent = errors.New("upload requires a torrent file")
	// ErrMissingTags is returned when the upload has no tags to pick the genre from
	ErrMissingTags = errors.New("upload requires at least one tag")
)

// DefaultUploadRequestBuilder is the default implementation of UploadRequestBuilder
type DefaultUploadRequestBuilder struct {
	releaseDescription string
}

// NewUploadRequestBuilder creates a new instance of DefaultUploadRequestBuilder
func NewUploadRequestBuilder() UploadRequestBuilder {
	return &DefaultUploadRequestBuilder{releaseDescription: defaultReleaseMsg}
}

// Build assembles the upload form for a lossless FLAC release
func (b *DefaultUploadRequestBuilder) Build(req models.UploadRequest) (*models.UploadPayload, error) {
	if req.Torrent.Content == nil {
		return nil, ErrMissingTorrent
	}
	if len(req.Tags) == 0 {
		return nil, ErrMissingTags
	}

	media, err := uploadMedia(req.Album.Media)
	if err != nil {
		return nil, err
	}

	description, err := AlbumDescription(req.Album)
	if err != nil {
		return nil, err
	}

	artists := AlbumArtists(req.Album)
	importance := make([]string, len(artists))
	for i := range importance {
		importance[i] = importanceMain
	}

	fields := url.Values{}
	fields.Set("auth", req.AuthKey)
	fields.Set("type", uploadTypeMusic)
	fields["artists[]"] = artists
	fields["importance[]"] = importance
	fields.Set("title", req.Album.Title)
	fields.Set("year", strconv.Itoa(req.Album.OriginalYear))
	fields.Set("record_label", "")
	fields.Set("catalogue_number", "")
	fields.Set("remaster", "on")
	fields.Set("remaster_title", "")
	fields.Set("remaster_record_label", req.Album.Label)
	fields.Set("remaster_catalogue_number", req.Album.CatalogNumber)
	fields.Set("format", uploadFormat)
	fields.Set("bitrate", uploadBitrate)
	fields.Set("other_bitrate", "")
	fields.Set("media", media.String())
	fields.Set("genre_tags", req.Tags[0])
	fields.Set("tags", strings.Join(req.Tags, ", "))
	fields.Set("image", req.ArtworkURL)
	fields.Set("album_desc", description)
	fields.Set("release_desc", b.releaseDescription)

	torrent := req.Torrent
	torrent.Field = torrentFieldName
	files := []models.UploadFile{torrent}
	for _, logfile := range req.Logfiles {
		logfile.Field = logfileFieldName
		files = append(files, logfile)
	}

	return &models.UploadPayload{Fields: fields, Files: files}, nil
}

// AlbumArtists returns the distinct track artists in order of first appearance.
// Names are NFC normalized so differently composed spellings collapse.
func AlbumArtists(album models.Album) []string {
	seen := make(map[string]struct{}, len(album.Tracks))
	artists := make([]string, 0, len(album.Tracks))
	for _, track := range album.Tracks {
		name := norm.NFC.String(strings.TrimSpace(track.Artist))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		artists = append(artists, name)
	}
	return artists
}

func uploadMedia(name string) (models.MediaType, error) {
	if strings.TrimSpace(name) == "" {
		return models.MediaCD, nil
	}
	media, ok := models.ParseMediaType(name)
	if !ok {
		return models.MediaUnknown, apperrors.NewUnsupportedMediaError(name)
	}
	return media, nil
}
