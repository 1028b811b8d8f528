package parser

import (
	"io"

	"github.com/whatbetter/whatapi/internal/models"
)

// Parser defines a generic interface for parsing HTML content
type Parser[T any] interface {
	ParseHtml(body io.Reader) ([]T, error)
}

// SnatchPageParser parses one snatch listing page, including whether another
// page follows it.
type SnatchPageParser interface {
	Parser[models.SnatchEntry]
	ParsePage(body io.Reader, contentType string) (*models.SnatchPage, error)
}
