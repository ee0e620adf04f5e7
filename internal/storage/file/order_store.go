package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/textformat"
)

// OrderStore хранит раздел active в текстовом файле заказов.
type OrderStore struct {
	Path string
}

// NewOrderStore создаёт файловое хранилище заказов.
func NewOrderStore(path string) *OrderStore {
	return &OrderStore{Path: path}
}

// Load читает файл заказов. Отсутствующий файл даёт ErrSourceUnavailable.
func (s *OrderStore) Load(ctx context.Context) ([]domain.OrderLine, []error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open orders %s: %w: %w", s.Path, domain.ErrSourceUnavailable, err)
	}
	defer f.Close()

	lines, warnings, err := textformat.DecodeOrders(f)
	if err != nil {
		return nil, warnings, fmt.Errorf("decode orders %s: %w", s.Path, err)
	}
	return lines, warnings, nil
}

// Save перезаписывает файл целиком переданными строками. Записи кодируются во
// временный файл рядом с целевым, который затем переименовывается поверх него:
// при ошибке кодирования или записи прежний файл остаётся нетронутым.
func (s *OrderStore) Save(ctx context.Context, lines []domain.OrderLine) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create orders dir %s: %w: %w", dir, domain.ErrSourceUnavailable, err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp orders %s: %w: %w", s.Path, domain.ErrSourceUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := textformat.EncodeOrders(tmp, lines); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode orders %s: %w", s.Path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp orders %s: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp orders %s: %w", s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace orders %s: %w: %w", s.Path, domain.ErrSourceUnavailable, err)
	}
	return nil
}

var _ domain.OrderSnapshotStore = (*OrderStore)(nil)
