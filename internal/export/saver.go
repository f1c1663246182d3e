package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/argoview/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// Saver hands an encoded export to wherever downloads end up and returns its location
type Saver interface {
	Save(ctx context.Context, payload *Payload) (string, error)
}

// FileSaver writes exports into a local directory
type FileSaver struct {
	dir string
}

func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{dir: dir}
}

func (s *FileSaver) Save(ctx context.Context, payload *Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(s.dir, payload.Filename)
	if err := os.WriteFile(path, payload.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	log.Debug().Str("path", path).Int("bytes", len(payload.Data)).Msg("Saved export to file")
	return path, nil
}

// Download exports profiles and saves the result
func Download(ctx context.Context, saver Saver, profiles []models.Profile, format Format, now time.Time) (*Payload, string, error) {
	payload, err := Export(profiles, format, now)
	if err != nil {
		return nil, "", err
	}

	location, err := saver.Save(ctx, payload)
	if err != nil {
		return nil, "", fmt.Errorf("saving export: %w", err)
	}

	return payload, location, nil
}
