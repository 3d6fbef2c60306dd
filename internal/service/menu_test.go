package service

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"teadesk-system/internal/common/logger"
	"teadesk-system/internal/domain"
	"teadesk-system/internal/repository"
	"teadesk-system/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenuService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	store := storage.New(logger.New("test"))
	repo := repository.New(store, storage.NewResolver(root))
	return New(repo, store, nil, logger.New("test")), root
}

func TestMenuSaveExtractsInlineImages(t *testing.T) {
	svc, root := newMenuService(t)

	raw := []byte{0x89, 'P', 'N', 'G'}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	saved, err := svc.Menu.Save("acme", domain.Menu{
		"hot": {Name: "Hot", Items: []domain.MenuItem{{ID: "karak", Name: "Karak", Image: uri}}},
	})
	require.NoError(t, err)

	item := saved["hot"].Items[0]
	assert.Equal(t, "/uploads/acme/menu/karak.png", item.Image)

	data, err := os.ReadFile(filepath.Join(root, "acme", "uploads", "menu", "karak.png"))
	require.NoError(t, err)
	assert.Equal(t, raw, data)

	// a subsequent read returns no embedded base64 data
	reread := svc.Menu.Get("acme")
	for _, cat := range reread {
		for _, it := range cat.Items {
			assert.False(t, strings.HasPrefix(it.Image, "data:"))
		}
	}
}

func TestMenuSaveStripsMalformedDataURI(t *testing.T) {
	svc, _ := newMenuService(t)

	saved, err := svc.Menu.Save("acme", domain.Menu{
		"hot": {Name: "Hot", Items: []domain.MenuItem{{ID: "tea", Name: "Tea", Image: "data:image/png;base64,!!!not-base64!!!"}}},
	})
	require.NoError(t, err)
	assert.Empty(t, saved["hot"].Items[0].Image)

	reread := svc.Menu.Get("acme")
	assert.Empty(t, reread["hot"].Items[0].Image)
}

func TestMenuSaveLeavesPlainReferencesAlone(t *testing.T) {
	svc, _ := newMenuService(t)

	saved, err := svc.Menu.Save("acme", domain.Menu{
		"hot": {Name: "Hot", Items: []domain.MenuItem{{ID: "tea", Name: "Tea", Image: "/uploads/acme/menu/tea.png"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/acme/menu/tea.png", saved["hot"].Items[0].Image)
}

func TestMenuGetUnknownCompanyReturnsDefault(t *testing.T) {
	svc, _ := newMenuService(t)
	assert.Equal(t, domain.DefaultMenu(), svc.Menu.Get("fresh"))
}
