package storage

import (
	"path/filepath"
	"strings"
)

// DefaultCompany is the namespace used when no company id is supplied.
const DefaultCompany = "default"

// Paths holds the document locations owned by one company namespace.
type Paths struct {
	Orders  string
	Desks   string
	Menu    string
	Uploads string
}

// Resolver maps a company identifier onto its namespace directory
// under the data root. Identifiers are untrusted input.
type Resolver struct {
	Root string
}

func NewResolver(root string) *Resolver { return &Resolver{Root: root} }

func (r *Resolver) Resolve(company string) Paths {
	dir := filepath.Join(r.Root, SanitizeCompany(company))
	return Paths{
		Orders:  filepath.Join(dir, "orders.json"),
		Desks:   filepath.Join(dir, "desks.json"),
		Menu:    filepath.Join(dir, "menu.json"),
		Uploads: filepath.Join(dir, "uploads"),
	}
}

// LegacyMenuPath is the pre-namespacing menu document shared by all
// companies, still consulted as a read fallback.
func (r *Resolver) LegacyMenuPath() string {
	return filepath.Join(r.Root, "menu.json")
}

// SanitizeCompany normalizes a company identifier into a single safe
// path segment: separators are dropped, dot-only segments collapse,
// and an empty result falls back to the default namespace.
func SanitizeCompany(company string) string {
	c := strings.TrimSpace(company)
	c = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return -1
		}
		return r
	}, c)
	c = strings.Trim(c, ".")
	if c == "" {
		return DefaultCompany
	}
	return c
}
