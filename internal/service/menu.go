package service

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"teadesk-system/internal/common/logger"
	"teadesk-system/internal/domain"
	"teadesk-system/internal/repository"
	"teadesk-system/internal/storage"

	"github.com/google/uuid"
)

type MenuServiceInterface interface {
	Get(company string) domain.Menu
	// Save persists the tree after extracting every inline image to
	// the company's upload area; the processed tree is returned.
	Save(company string, m domain.Menu) (domain.Menu, error)
}

type MenuService struct {
	db    repository.MenuRepositoryInterface
	store *storage.Store
	lg    *logger.Logger
}

func NewMenuService(db repository.MenuRepositoryInterface, store *storage.Store, lg *logger.Logger) MenuServiceInterface {
	return &MenuService{db: db, store: store, lg: lg}
}

func (ms *MenuService) Get(company string) domain.Menu {
	return ms.db.Get(company)
}

func (ms *MenuService) Save(company string, m domain.Menu) (domain.Menu, error) {
	scope := storage.SanitizeCompany(company)
	uploads := ms.db.UploadsDir(company)

	for key, cat := range m {
		for i, item := range cat.Items {
			if !strings.HasPrefix(item.Image, "data:") {
				continue
			}
			ref, err := ms.extractImage(scope, uploads, item)
			if err != nil {
				// malformed payload: drop the raw data, keep the item
				ms.lg.Warn("menu_image_dropped", err, map[string]any{"company": scope, "item": item.ID})
				cat.Items[i].Image = ""
				continue
			}
			cat.Items[i].Image = ref
		}
		m[key] = cat
	}

	if err := ms.db.Put(company, m); err != nil {
		return nil, err
	}
	return m, nil
}

// extractImage decodes a data URI, writes it under the upload area
// keyed by the item id and returns the reference path stored in place
// of the inline payload.
func (ms *MenuService) extractImage(scope, uploads string, item domain.MenuItem) (string, error) {
	mime, data, err := decodeDataURI(item.Image)
	if err != nil {
		return "", err
	}

	name := item.ID
	if name == "" {
		name = uuid.NewString()
	}
	file := name + "." + extFor(mime)

	if err := ms.store.WriteBytes(filepath.Join(uploads, "menu", file), data); err != nil {
		return "", err
	}
	return "/uploads/" + scope + "/menu/" + file, nil
}

func decodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri has no payload")
	}
	mime, enc, _ := strings.Cut(header, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("unsupported data uri encoding %q", enc)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return mime, data, nil
}

func extFor(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/svg+xml":
		return "svg"
	default:
		return "img"
	}
}
