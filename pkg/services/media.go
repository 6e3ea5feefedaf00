package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"xmlrpc-cms/pkg/config"
	"xmlrpc-cms/pkg/models"
)

// SaveMediaObject stores an uploaded asset under the media directory and
// describes it for the client. When bits is nil the asset is assumed to be
// in place already (some clients upload out of band and only register the
// name); only the descriptor is produced then.
func SaveMediaObject(name string, bits []byte) (*models.MediaObject, error) {
	filename := filepath.Base(name)
	filename = strings.ReplaceAll(filename, " ", "_")
	if filename == "" || filename == "." || filename == ".." {
		return nil, fmt.Errorf("invalid media name %q", name)
	}

	fullPath := filepath.Join(config.MediaDir, filename)

	if bits != nil {
		if err := os.MkdirAll(config.MediaDir, 0755); err != nil {
			return nil, fmt.Errorf("creating media dir: %w", err)
		}
		if err := os.WriteFile(fullPath, bits, 0644); err != nil {
			return nil, fmt.Errorf("writing media %s: %w", filename, err)
		}
	}

	mediaType := "application/octet-stream"
	if bits != nil {
		mediaType = mimetype.Detect(bits).String()
	} else if m, err := mimetype.DetectFile(fullPath); err == nil {
		mediaType = m.String()
	}

	return &models.MediaObject{
		File: filename,
		URL:  config.SiteURL + config.MediaURLPath + "/" + filename,
		Type: mediaType,
	}, nil
}
