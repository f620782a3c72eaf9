package feed

import (
	"context"
	"fmt"
	"os"

	"github.com/saravenpi/chatview/internal/models"
)

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) (*models.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("chat file not found: %s", s.path)
		}
		return nil, fmt.Errorf("failed to open chat file: %w", err)
	}
	defer f.Close()

	payload, err := models.DecodePayload(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chat file: %w", err)
	}
	return payload, nil
}
