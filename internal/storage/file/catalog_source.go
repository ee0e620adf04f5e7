package file

import (
	"context"
	"fmt"
	"os"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/textformat"
)

// CatalogSource читает каталог из текстового файла. Файл системой не переписывается.
type CatalogSource struct {
	Path string
}

// NewCatalogSource создаёт источник каталога для указанного пути.
func NewCatalogSource(path string) *CatalogSource {
	return &CatalogSource{Path: path}
}

// Load открывает файл, разбирает его и закрывает на любом пути выхода.
// Если файл не открылся, возвращается ошибка ErrSourceUnavailable.
func (s *CatalogSource) Load(ctx context.Context) ([]domain.Product, []error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog %s: %w: %w", s.Path, domain.ErrSourceUnavailable, err)
	}
	defer f.Close()

	products, warnings, err := textformat.DecodeCatalog(f)
	if err != nil {
		return nil, warnings, fmt.Errorf("decode catalog %s: %w", s.Path, err)
	}
	return products, warnings, nil
}

var _ domain.CatalogSource = (*CatalogSource)(nil)
