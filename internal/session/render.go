package session

import (
	"fmt"
	"io"
	"strings"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

const menu = `
-----Furniture Catalog System-----
 +   1. Display Catalog          +
 +   2. Place Order              +
 +   3. Display Current Orders   +
 +   4. Process Return           +
 +   5. Display Returns          +
 +   6. Quit                     +
----------------------------------
`

// RenderMenu печатает главное меню.
func RenderMenu(w io.Writer) {
	fmt.Fprint(w, menu)
}

// RenderCatalog печатает каталог по категориям. Заголовок категории выводится
// при её смене; подряд идущие одинаковые названия внутри категории и названия
// с двоеточием не печатаются.
func RenderCatalog(w io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprint(w, "\nNo products in the catalog.\n")
		return
	}

	fmt.Fprint(w, "\nFurniture Catalog:\n")

	var category, previous string
	for i, product := range products {
		if product.Category != category {
			if i > 0 {
				fmt.Fprint(w, "\n")
			}
			category = product.Category
			fmt.Fprintf(w, "  %s:\n", category)
			previous = ""
		}

		if strings.Contains(product.Name, ":") || product.Name == previous {
			continue
		}
		fmt.Fprintf(w, "    %s, product no. %d\n", product.Name, product.Number)
		previous = product.Name
	}

	fmt.Fprint(w, "\n")
}

// RenderOrders печатает активные заказы, сгруппированные по клиенту и номеру.
func RenderOrders(w io.Writer, orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Fprint(w, "\nNo orders placed yet.\n")
		return
	}

	fmt.Fprint(w, "\nCurrent Orders:\n")
	for _, order := range orders {
		fmt.Fprintf(w, "Customer: %s (Order No. %s)\n", order.Key.CustomerName, order.Key.OrderNumber)
		for _, line := range order.Lines {
			fmt.Fprintf(w, " | Product Number: %d | Quantity: %d |\n", line.ProductNumber, line.Quantity)
		}
	}
	fmt.Fprint(w, "\n")
}

// RenderReturns печатает возвращённые строки по одной.
func RenderReturns(w io.Writer, lines []domain.OrderLine) {
	for _, line := range lines {
		fmt.Fprintf(w, "Customer: %s | Product Number: %d | Quantity: %d | Order Number: %s\n",
			line.CustomerName, line.ProductNumber, line.Quantity, line.OrderNumber)
	}
	if len(lines) == 0 {
		fmt.Fprint(w, "\nNo returns processed yet.\n")
	}
	fmt.Fprint(w, "\n")
}
