package models

import "strings"

// MediaType represents the physical or digital source of a release
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaCD
	MediaDVD
	MediaVinyl
	MediaSoundboard
	MediaSACD
	MediaDAT
	MediaWEB
	MediaBluRay
)

// String returns the spelling the tracker expects in the media query parameter.
// The tracker search is case sensitive, so this must not be lowercased.
func (m MediaType) String() string {
	switch m {
	case MediaCD:
		return "CD"
	case MediaDVD:
		return "DVD"
	case MediaVinyl:
		return "Vinyl"
	case MediaSoundboard:
		return "Soundboard"
	case MediaSACD:
		return "SACD"
	case MediaDAT:
		return "DAT"
	case MediaWEB:
		return "WEB"
	case MediaBluRay:
		return "Blu-ray"
	default:
		return "unknown"
	}
}

// Key returns the lowercase lookup name of the media type ("cd", "blu-ray", ...).
func (m MediaType) Key() string {
	if m == MediaUnknown {
		return ""
	}
	return strings.ToLower(m.String())
}

// ParseMediaType converts a media name, in any case, to a MediaType
func ParseMediaType(name string) (MediaType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cd":
		return MediaCD, true
	case "dvd":
		return MediaDVD, true
	case "vinyl":
		return MediaVinyl, true
	case "soundboard":
		return MediaSoundboard, true
	case "sacd":
		return MediaSACD, true
	case "dat":
		return MediaDAT, true
	case "web":
		return MediaWEB, true
	case "blu-ray":
		return MediaBluRay, true
	default:
		return MediaUnknown, false
	}
}

// LosslessMedia returns every media type the snatch search supports, in declaration order.
func LosslessMedia() []MediaType {
	return []MediaType{
		MediaCD,
		MediaDVD,
		MediaVinyl,
		MediaSoundboard,
		MediaSACD,
		MediaDAT,
		MediaWEB,
		MediaBluRay,
	}
}
