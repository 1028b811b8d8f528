package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/whatbetter/whatapi/internal/client"
	"github.com/whatbetter/whatapi/internal/models"
)

var (
	uploadTorrent  string
	uploadLogs     []string
	uploadTags     []string
	uploadAlbum    string
	uploadArtwork  string
	uploadAuthKey  string
	uploadShowBody bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a FLAC release",
	Long: `Upload a lossless FLAC release. The album metadata is read from a JSON
file holding albumId (MusicBrainz release group), title, originalYear, label,
catalogNumber, country, media and tracks [{title, artist}].`,
	Args: cobra.NoArgs,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadTorrent, "torrent", "t", "", "path to the .torrent file")
	uploadCmd.Flags().StringArrayVarP(&uploadLogs, "log", "l", nil, "path to a rip log (repeatable)")
	uploadCmd.Flags().StringSliceVar(&uploadTags, "tags", nil, "comma separated tags; the first one is the genre")
	uploadCmd.Flags().StringVar(&uploadAlbum, "album", "", "path to the album metadata JSON file")
	uploadCmd.Flags().StringVar(&uploadArtwork, "artwork", "", "cover image URL")
	uploadCmd.Flags().StringVar(&uploadAuthKey, "auth", "", "upload form token (defaults to the session authkey)")
	uploadCmd.Flags().BoolVar(&uploadShowBody, "show-body", false, "print the tracker's response page")
	_ = uploadCmd.MarkFlagRequired("torrent")
	_ = uploadCmd.MarkFlagRequired("album")
	_ = uploadCmd.MarkFlagRequired("tags")
}

func runUpload(cmd *cobra.Command, _ []string) error {
	album, err := readAlbum(uploadAlbum)
	if err != nil {
		return err
	}

	var files []*os.File
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	open := func(path string) (models.UploadFile, error) {
		f, err := os.Open(path)
		if err != nil {
			return models.UploadFile{}, err
		}
		files = append(files, f)
		return models.UploadFile{Filename: filepath.Base(path), Content: f}, nil
	}

	torrent, err := open(uploadTorrent)
	if err != nil {
		return fmt.Errorf("failed to open torrent: %w", err)
	}
	logfiles := make([]models.UploadFile, 0, len(uploadLogs))
	for _, path := range uploadLogs {
		logfile, err := open(path)
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		logfiles = append(logfiles, logfile)
	}

	req := models.UploadRequest{
		AuthKey:    uploadAuthKey,
		Album:      *album,
		Torrent:    torrent,
		Logfiles:   logfiles,
		Tags:       uploadTags,
		ArtworkURL: uploadArtwork,
	}

	return withSession(cmd.Context(), func(ctx context.Context, c client.Client) error {
		result, err := c.Upload(ctx, req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Upload answered %d at %s\n", result.StatusCode, result.Location)
		if uploadShowBody {
			fmt.Fprintln(out, result.Body)
		}
		if result.StatusCode >= 400 {
			return fmt.Errorf("upload rejected with status %d", result.StatusCode)
		}
		return nil
	})
}

func readAlbum(path string) (*models.Album, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read album file: %w", err)
	}
	var album models.Album
	if err := json.Unmarshal(data, &album); err != nil {
		return nil, fmt.Errorf("invalid album file %s: %w", path, err)
	}
	if album.Title == "" {
		return nil, errors.New("album file has no title")
	}
	return &album, nil
}
