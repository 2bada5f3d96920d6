// Package media stores user-uploaded images on local disk.
package media

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"quickchat/errors"
)

// Store writes decoded images under a local directory and hands back the
// public URL path the HTTP layer serves them from.
type Store struct {
	log     *slog.Logger
	dir     string
	urlBase string
}

func NewStore(log *slog.Logger, dir, urlBase string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Store{log: log, dir: dir, urlBase: strings.TrimSuffix(urlBase, "/")}, nil
}

// SaveDataURL decodes a base64 data URL, verifies the payload really is an
// image by sniffing its bytes, and stores it under a random name. The data
// URL's own media type is ignored, only the sniffed type counts.
func (s *Store) SaveDataURL(dataURL string) (string, error) {
	payload := dataURL
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", errors.ErrInvalidImage
	}

	kind := mimetype.Detect(raw)
	if !strings.HasPrefix(kind.String(), "image/") {
		s.log.Warn("Rejected upload with non-image payload", "detected", kind.String())
		return "", errors.ErrInvalidImage
	}

	name := uuid.NewString() + kind.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return s.urlBase + "/" + name, nil
}

// Dir exposes the backing directory so the HTTP layer can serve it statically.
func (s *Store) Dir() string { return s.dir }
