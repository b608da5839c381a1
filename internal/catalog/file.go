package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nadzzz/ordertaker/internal/menu"
)

// FileSource reads catalogs from <dir>/<tenant>.yaml:
//
//	items:
//	  - canonical_id: coffee
//	    spoken_names: [kaffee, café crème]
//	    aliases: [kafi]
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

type catalogFile struct {
	Items []menu.VoiceMenuMapping `yaml:"items"`
}

// Catalog reads and decodes the tenant's file on every call.
func (s *FileSource) Catalog(_ context.Context, tenant string) ([]menu.VoiceMenuMapping, error) {
	if err := ValidateTenant(tenant); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, tenant+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, tenant)
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding catalog %s: %w", path, err)
	}
	if f.Items == nil {
		f.Items = []menu.VoiceMenuMapping{}
	}
	return f.Items, nil
}
