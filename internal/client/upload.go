package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/whatbetter/whatapi/internal/apperrors"
	"github.com/whatbetter/whatapi/internal/metrics"
	"github.com/whatbetter/whatapi/internal/models"
)

// Upload builds the upload form for req and posts it as multipart/form-data.
// The tracker answers with an HTML page, returned as is.
func (c *client) Upload(ctx context.Context, req models.UploadRequest) (result *models.UploadResult, err error) {
	account, ok := c.currentAccount()
	if !ok {
		return nil, apperrors.ErrNotAuthenticated
	}
	if req.AuthKey == "" {
		req.AuthKey = account.AuthKey
	}

	payload, err := c.uploadBuilder.Build(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	body, contentType, err := encodeMultipart(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload form: %w", err)
	}

	defer func() { metrics.RequestsTotal.WithLabelValues("upload", metrics.Outcome(err)).Inc() }()

	c.logger.Info().Str("title", req.Album.Title).Int("files", len(payload.Files)).Msg("Uploading release")

	resp, err := c.send(ctx, c.httpClient, http.MethodPost, c.uploadURL, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	result = &models.UploadResult{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		result.Location = resp.Request.URL.String()
	}

	c.logger.Info().Int("status", resp.StatusCode).Str("location", result.Location).Msg("Upload finished")
	return result, nil
}

// encodeMultipart writes the fields in key order, then the files in payload order.
func encodeMultipart(payload *models.UploadPayload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(payload.Fields))
	for key := range payload.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, value := range payload.Fields[key] {
			if err := w.WriteField(key, value); err != nil {
				return nil, "", err
			}
		}
	}

	for _, file := range payload.Files {
		if file.Content == nil {
			return nil, "", fmt.Errorf("%s has no content", file.Field)
		}
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", file.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
