package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

// OrderSnapshotRepository хранит раздел active в таблице order_lines.
// Порядок строк задаётся колонкой position.
type OrderSnapshotRepository struct {
	db *sql.DB
}

// NewOrderSnapshotRepository создаёт PostgreSQL-реализацию OrderSnapshotStore.
func NewOrderSnapshotRepository(store *Store) *OrderSnapshotRepository {
	return &OrderSnapshotRepository{db: store.DB()}
}

// Load читает строки в порядке сохранения. Строки, не прошедшие проверку
// инвариантов, попадают в предупреждения и пропускаются.
func (r *OrderSnapshotRepository) Load(ctx context.Context) ([]domain.OrderLine, []error, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(queryCtx, `
		SELECT position, customer_name, order_number, product_number, quantity
		FROM order_lines
		ORDER BY position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("select order lines: %w: %w", domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var (
		lines    []domain.OrderLine
		warnings []error
	)
	for rows.Next() {
		var (
			position      int64
			customerName  string
			orderNumber   string
			productNumber int
			quantity      int
		)
		if err := rows.Scan(&position, &customerName, &orderNumber, &productNumber, &quantity); err != nil {
			return nil, nil, fmt.Errorf("scan order line: %w", err)
		}
		line, err := domain.NewOrderLine(customerName, orderNumber, productNumber, quantity)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("order line at position %d: %w", position, err))
			continue
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return lines, warnings, nil
}

// Save заменяет содержимое таблицы переданными строками в одной транзакции.
func (r *OrderSnapshotRepository) Save(ctx context.Context, lines []domain.OrderLine) (err error) {
	for i, line := range lines {
		if errs := line.ValidateInvariants(); len(errs) > 0 {
			return fmt.Errorf("line %d: %w", i, errs[0])
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(txCtx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(txCtx, `DELETE FROM order_lines`); err != nil {
		return fmt.Errorf("clear order lines: %w", err)
	}

	for i, line := range lines {
		if _, err = tx.ExecContext(txCtx, `
			INSERT INTO order_lines (
				position, customer_name, order_number, product_number, quantity
			) VALUES ($1,$2,$3,$4,$5)
		`,
			int64(i), line.CustomerName, line.OrderNumber, line.ProductNumber, line.Quantity,
		); err != nil {
			return fmt.Errorf("insert order line %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit order lines: %w", err)
	}
	return nil
}

var _ domain.OrderSnapshotStore = (*OrderSnapshotRepository)(nil)
