// Package report выгружает каталог и журнал заказов в XLSX.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

const (
	SheetCatalog    = "Catalog"
	SheetCategories = "Categories"
	SheetOrders     = "Orders"
	SheetTotals     = "Order Totals"
)

// Report — данные для выгрузки. Заказы уже сгруппированы по клиенту и номеру.
type Report struct {
	Catalog    []domain.Product
	Categories []string
	Active     []domain.Order
	Returned   []domain.Order
}

var (
	catalogHeader    = []any{"Category", "Product", "Product No."}
	categoriesHeader = []any{"Category", "Products"}
	ordersHeader     = []any{"Customer", "Order No.", "Product No.", "Product", "Quantity", "Partition"}
	totalsHeader     = []any{"Customer", "Order No.", "Lines", "Total Quantity", "Partition"}
)

// WriteXLSX пишет книгу с листами Catalog, Categories, Orders и Order Totals в w.
func WriteXLSX(w io.Writer, r Report) error {
	f, err := build(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// SaveXLSX сохраняет книгу в файл path.
func SaveXLSX(path string, r Report) error {
	f, err := build(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %s: %w", path, err)
	}
	return nil
}

func build(r Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCatalog); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, sheet := range []string{SheetCategories, SheetOrders, SheetTotals} {
		if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create %s sheet: %w", sheet, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeCatalog(f, r.Catalog, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeCategories(f, r, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeOrders(f, r, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeTotals(f, r, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func writeCatalog(f *excelize.File, products []domain.Product, headerStyle int) error {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{p.Category, p.Name, p.Number})
	}
	if err := writeSheet(f, SheetCatalog, catalogHeader, rows, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(SheetCatalog, "A", "B", 24)
}

func writeOrders(f *excelize.File, r Report, headerStyle int) error {
	names := make(map[int]string, len(r.Catalog))
	for _, p := range r.Catalog {
		if _, ok := names[p.Number]; !ok {
			names[p.Number] = p.Name
		}
	}

	var rows [][]any
	appendOrders := func(orders []domain.Order, partition domain.Partition) {
		for _, order := range orders {
			for _, line := range order.Lines {
				rows = append(rows, []any{
					line.CustomerName,
					line.OrderNumber,
					line.ProductNumber,
					names[line.ProductNumber],
					line.Quantity,
					string(partition),
				})
			}
		}
	}
	appendOrders(r.Active, domain.PartitionActive)
	appendOrders(r.Returned, domain.PartitionReturned)

	if err := writeSheet(f, SheetOrders, ordersHeader, rows, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(SheetOrders, "A", "A", 24)
}

// writeCategories пишет число товаров по категориям в порядке r.Categories.
func writeCategories(f *excelize.File, r Report, headerStyle int) error {
	counts := make(map[string]int, len(r.Categories))
	for _, p := range r.Catalog {
		counts[p.Category]++
	}

	rows := make([][]any, 0, len(r.Categories))
	for _, category := range r.Categories {
		rows = append(rows, []any{category, counts[category]})
	}
	if err := writeSheet(f, SheetCategories, categoriesHeader, rows, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(SheetCategories, "A", "A", 24)
}

func writeTotals(f *excelize.File, r Report, headerStyle int) error {
	rows := make([][]any, 0, len(r.Active)+len(r.Returned))
	appendTotals := func(orders []domain.Order, partition domain.Partition) {
		for _, order := range orders {
			rows = append(rows, []any{
				order.Key.CustomerName,
				order.Key.OrderNumber,
				len(order.Lines),
				order.TotalQuantity(),
				string(partition),
			})
		}
	}
	appendTotals(r.Active, domain.PartitionActive)
	appendTotals(r.Returned, domain.PartitionReturned)

	if err := writeSheet(f, SheetTotals, totalsHeader, rows, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(SheetTotals, "A", "A", 24)
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
