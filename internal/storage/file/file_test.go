package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/storage/file"
	"github.com/vladislavdragonenkov/furniture/internal/textformat"
)

func TestCatalogSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furniture_catalog.txt")
	content := "-Living Room\nSofa, product no. 101\nbroken line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	products, warnings, err := file.NewCatalogSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, []domain.Product{{Name: "Sofa", Number: 101, Category: "Living Room"}}, products)
}

func TestCatalogSource_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	products, _, err := file.NewCatalogSource(path).Load(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Empty(t, products)
}

func TestOrderStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "customer_information.txt")
	store := file.NewOrderStore(path)
	ctx := context.Background()

	lines := []domain.OrderLine{
		{CustomerName: "Sam", OrderNumber: "4821", ProductNumber: 101, Quantity: 5},
		{CustomerName: "Sam", OrderNumber: "4821", ProductNumber: 102, Quantity: 1},
		{CustomerName: "Ann", OrderNumber: "0003", ProductNumber: 201, Quantity: 2},
	}
	require.NoError(t, store.Save(ctx, lines))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"Sam order no. 4821 | Product No. 101 | Quantity: 5 |\n"+
			"Sam order no. 4821 | Product No. 102 | Quantity: 1 |\n"+
			"Ann order no. 0003 | Product No. 201 | Quantity: 2 |\n",
		string(raw))

	loaded, warnings, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, lines, loaded)
}

func TestOrderStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.txt")
	store := file.NewOrderStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.OrderLine{
		{CustomerName: "Sam", OrderNumber: "1", ProductNumber: 1, Quantity: 1},
	}))
	require.NoError(t, store.Save(ctx, nil))

	loaded, _, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestOrderStore_FailedSaveKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customer_information.txt")
	store := file.NewOrderStore(path)
	ctx := context.Background()

	ann := domain.OrderLine{CustomerName: "Ann", OrderNumber: "0001", ProductNumber: 101, Quantity: 2}
	require.NoError(t, store.Save(ctx, []domain.OrderLine{ann}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = store.Save(ctx, []domain.OrderLine{
		ann,
		{CustomerName: "Bob order no. 7", OrderNumber: "0002", ProductNumber: 101, Quantity: 1},
	})
	require.ErrorIs(t, err, textformat.ErrUnencodable)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be removed")
}

func TestOrderStore_MissingFile(t *testing.T) {
	store := file.NewOrderStore(filepath.Join(t.TempDir(), "none.txt"))

	_, _, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestOrderStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := file.NewOrderStore(filepath.Join(t.TempDir(), "x.txt")).Save(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}
