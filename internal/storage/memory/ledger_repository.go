package memory

import (
	"fmt"
	"sync"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

// ledgerRepositoryInMemory — журнал заказов в памяти с разделами active/returned.
type ledgerRepositoryInMemory struct {
	mu       sync.RWMutex
	active   []domain.OrderLine
	returned []domain.OrderLine
	// byOrder хранит позиции активных строк заказа для слияния без полного прохода.
	byOrder map[domain.OrderKey][]int
	// numbers — номера заказов из обоих разделов.
	numbers map[string]struct{}
}

// NewLedgerRepository создаёт пустой in-memory журнал заказов.
func NewLedgerRepository() domain.LedgerRepository {
	return &ledgerRepositoryInMemory{
		byOrder: make(map[domain.OrderKey][]int),
		numbers: make(map[string]struct{}),
	}
}

// Place добавляет строку в active либо сливает её с существующей строкой того же товара.
func (r *ledgerRepositoryInMemory) Place(line domain.OrderLine) (bool, error) {
	if errs := line.ValidateInvariants(); len(errs) > 0 {
		return false, errs[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.placeLocked(line), nil
}

func (r *ledgerRepositoryInMemory) placeLocked(line domain.OrderLine) bool {
	key := line.Key()
	for _, pos := range r.byOrder[key] {
		if r.active[pos].ProductNumber == line.ProductNumber {
			r.active[pos].Quantity += line.Quantity
			return true
		}
	}

	line.IsReturn = false
	r.active = append(r.active, line)
	r.byOrder[key] = append(r.byOrder[key], len(r.active)-1)
	r.numbers[line.OrderNumber] = struct{}{}
	return false
}

// Return переносит все активные строки с номером orderNumber в returned одной операцией.
func (r *ledgerRepositoryInMemory) Return(orderNumber string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]domain.OrderLine, 0, len(r.active))
	moved := 0
	for _, line := range r.active {
		if line.OrderNumber != orderNumber {
			kept = append(kept, line)
			continue
		}
		line.IsReturn = true
		r.returned = append(r.returned, line)
		moved++
	}
	if moved == 0 {
		return 0, domain.ErrOrderNotFound
	}

	r.active = kept
	r.reindexLocked()
	return moved, nil
}

// ListActive возвращает копию активных строк.
func (r *ledgerRepositoryInMemory) ListActive() []domain.OrderLine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderLine, len(r.active))
	copy(result, r.active)
	return result
}

// ListReturned возвращает копию возвращённых строк.
func (r *ledgerRepositoryInMemory) ListReturned() []domain.OrderLine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderLine, len(r.returned))
	copy(result, r.returned)
	return result
}

// Replace заменяет раздел active. При ошибке в любой строке журнал не меняется.
func (r *ledgerRepositoryInMemory) Replace(lines []domain.OrderLine) error {
	for i, line := range lines {
		if errs := line.ValidateInvariants(); len(errs) > 0 {
			return fmt.Errorf("line %d: %w", i+1, errs[0])
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = make([]domain.OrderLine, 0, len(lines))
	r.reindexLocked()
	for _, line := range lines {
		r.placeLocked(line)
	}
	return nil
}

// HasOrderNumber проверяет номер заказа в обоих разделах.
func (r *ledgerRepositoryInMemory) HasOrderNumber(orderNumber string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.numbers[orderNumber]
	return ok
}

// Stats возвращает размеры разделов.
func (r *ledgerRepositoryInMemory) Stats() domain.LedgerStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.LedgerStats{
		ActiveLines:   len(r.active),
		ReturnedLines: len(r.returned),
	}
}

// reindexLocked пересобирает индексы после переноса или замены строк.
func (r *ledgerRepositoryInMemory) reindexLocked() {
	r.byOrder = make(map[domain.OrderKey][]int, len(r.active))
	r.numbers = make(map[string]struct{}, len(r.active)+len(r.returned))
	for pos, line := range r.active {
		key := line.Key()
		r.byOrder[key] = append(r.byOrder[key], pos)
		r.numbers[line.OrderNumber] = struct{}{}
	}
	for _, line := range r.returned {
		r.numbers[line.OrderNumber] = struct{}{}
	}
}

var _ domain.LedgerRepository = (*ledgerRepositoryInMemory)(nil)
