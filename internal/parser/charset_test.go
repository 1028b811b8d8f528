package parser

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestNewUTF8Reader_AlreadyUTF8(t *testing.T) {
	t.Parallel()
	input := []byte("<html><body>Björk - Homogenic ☺</body></html>")
	reader, err := NewUTF8Reader(bytes.NewReader(input), "text/html; charset=utf-8")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}

	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if !bytes.Equal(output, input) {
		t.Errorf("Expected UTF-8 content to pass through unchanged, got %q", output)
	}
}

func TestNewUTF8Reader_ContentTypeCharset(t *testing.T) {
	t.Parallel()
	// No meta tag: the header is the only hint.
	input := []byte("<html><body>Sigur R" + string([]byte{0xF3}) + "s</body></html>")

	reader, err := NewUTF8Reader(bytes.NewReader(input), "text/html; charset=ISO-8859-1")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}
	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if !strings.Contains(string(output), "Sigur Rós") {
		t.Errorf("Expected decoded text, got %q", output)
	}
}

func TestNewUTF8Reader_MetaCharset(t *testing.T) {
	t.Parallel()
	input := []byte(`<html><head><meta charset="ISO-8859-1"></head><body>Caf` + string([]byte{0xE9}) + `</body></html>`)

	reader, err := NewUTF8Reader(bytes.NewReader(input), "")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}
	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if !strings.Contains(string(output), "Café") {
		t.Errorf("Expected 'Café' in output, got %q", output)
	}
}
