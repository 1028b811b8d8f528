package models

import (
	"io"
	"net/url"
)

// Track is a single track of an album being uploaded
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Album describes the release being uploaded. AlbumID is the MusicBrainz
// release group identifier.
type Album struct {
	AlbumID       string  `json:"albumId"`
	Title         string  `json:"title"`
	OriginalYear  int     `json:"originalYear"`
	Label         string  `json:"label"`
	CatalogNumber string  `json:"catalogNumber"`
	Country       string  `json:"country"`
	Media         string  `json:"media"`
	Tracks        []Track `json:"tracks"`
}

// UploadFile is one file part of the multipart upload form
type UploadFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

// UploadRequest holds everything the upload form needs
type UploadRequest struct {
	// AuthKey is the form token; the session authkey is used when empty.
	AuthKey    string
	Album      Album
	Torrent    UploadFile
	Logfiles   []UploadFile
	Tags       []string
	ArtworkURL string
}

// UploadPayload is the form built for one upload call.
type UploadPayload struct {
	Fields url.Values
	Files  []UploadFile
}

// UploadResult is the tracker's answer to an upload POST
type UploadResult struct {
	StatusCode int    `json:"statusCode"`
	Location   string `json:"location,omitempty"`
	Body       string `json:"body"`
}
