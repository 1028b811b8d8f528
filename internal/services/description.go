package services

import (
	"strings"
	"text/template"

	"github.com/whatbetter/whatapi/internal/models"
)

var albumDescriptionTemplate = template.Must(template.New("album_desc").Parse(
	`[url=https://musicbrainz.org/release-group/{{.Album.AlbumID}}]MusicBrainz[/url]

Country: {{.Album.Country}}
Tracks: {{len .Album.Tracks}}

Track list:
{{range $i, $t := .Album.Tracks}}{{if $i}}
{{end}}[#]{{$t.Title}}{{end}}`))

// AlbumDescription renders the BBCode album description for the upload form
func AlbumDescription(album models.Album) (string, error) {
	var sb strings.Builder
	if err := albumDescriptionTemplate.Execute(&sb, struct{ Album models.Album }{album}); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
