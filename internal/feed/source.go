package feed

import (
	"context"
	"strings"

	"github.com/saravenpi/chatview/internal/models"
)

// DefaultURL is the static document the viewer loads when no source is given.
const DefaultURL = "https://gist.githubusercontent.com/BinzXD/447ceee5f229e93ec71582cc048a2e2b/raw/2914c3c537c07bcae3fc941cd0c3dbeaf5dcfe20/gistfile1.txt"

type Source interface {
	Load(ctx context.Context) (*models.Payload, error)
	Name() string
}

// Open picks a Source for the given location: http(s) URLs are fetched,
// sqlite:// paths and *.db / *.sqlite files are read as SQLite databases,
// anything else is read as a JSON file.
func Open(location string) Source {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return NewHTTPSource(DefaultURL, nil)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, nil)
	case strings.HasPrefix(location, "sqlite://"):
		return NewSQLiteSource(strings.TrimPrefix(location, "sqlite://"))
	case strings.HasSuffix(location, ".db"), strings.HasSuffix(location, ".sqlite"):
		return NewSQLiteSource(location)
	default:
		return NewFileSource(location)
	}
}
