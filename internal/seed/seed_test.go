package seed_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/seed"
	"github.com/vladislavdragonenkov/furniture/internal/service/ordering"
	"github.com/vladislavdragonenkov/furniture/internal/storage/memory"
	"github.com/vladislavdragonenkov/furniture/internal/textformat"
)

func TestCatalog_DeterministicAndEncodable(t *testing.T) {
	first := seed.New(42).Catalog(3, 4)
	second := seed.New(42).Catalog(3, 4)

	require.Len(t, first, 12)
	require.Equal(t, first, second)
	require.Equal(t, 101, first[0].Number)
	require.Equal(t, "Living Room", first[0].Category)

	var buf bytes.Buffer
	require.NoError(t, textformat.EncodeCatalog(&buf, first))

	decoded, warnings, err := textformat.DecodeCatalog(&buf)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, first, decoded)
}

func TestCatalog_CapsCounts(t *testing.T) {
	products := seed.New(1).Catalog(100, 100)
	require.NotEmpty(t, products)
	require.LessOrEqual(t, len(products), 6*5)
}

func TestOrders(t *testing.T) {
	ledger := memory.NewLedgerRepository()
	catalog := memory.NewCatalogRepository(seed.New(7).Catalog(2, 3))
	svc := ordering.NewService(catalog, ledger, nil, nil, nil, nil)

	placed, err := seed.New(7).Orders(context.Background(), svc, 5, 3)
	require.NoError(t, err)
	require.GreaterOrEqual(t, placed, 5)

	orders := svc.ActiveOrders()
	require.Len(t, orders, 5)
	for _, order := range orders {
		for _, line := range order.Lines {
			require.True(t, catalog.Exists(line.ProductNumber))
			require.Positive(t, line.Quantity)
		}
	}
}

func TestOrders_EmptyCatalog(t *testing.T) {
	svc := ordering.NewService(memory.NewCatalogRepository(nil), memory.NewLedgerRepository(), nil, nil, nil, nil)

	_, err := seed.New(1).Orders(context.Background(), svc, 1, 1)
	require.ErrorIs(t, err, seed.ErrEmptyCatalog)
}

func TestOrders_CanceledContext(t *testing.T) {
	catalog := memory.NewCatalogRepository([]domain.Product{{Name: "Sofa", Number: 101}})
	svc := ordering.NewService(catalog, memory.NewLedgerRepository(), nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	placed, err := seed.New(1).Orders(ctx, svc, 3, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, placed)
}
