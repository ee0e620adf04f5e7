package textformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

// DecodeCatalog разбирает файл каталога в порядке строк. Товары до первой
// строки категории получают пустую категорию. Некорректные строки
// пропускаются и возвращаются как предупреждения (*ParseError).
func DecodeCatalog(r io.Reader) ([]domain.Product, []error, error) {
	var (
		products []domain.Product
		warnings []error
		category string
	)

	err := scanLines(r, func(lineNo int, text string) {
		if strings.HasPrefix(text, CategoryPrefix) {
			category = strings.TrimPrefix(text, CategoryPrefix)
			return
		}

		product, reason := parseProductRecord(text, category)
		if reason != "" {
			warnings = append(warnings, &ParseError{Line: lineNo, Text: text, Reason: reason})
			return
		}
		products = append(products, product)
	})
	if err != nil {
		return products, warnings, err
	}

	return products, warnings, nil
}

// parseProductRecord разбирает строку `<name>, product no. <integer>`. Именем
// считается всё до первого разделителя. Вторым значением возвращается причина ошибки.
func parseProductRecord(text, category string) (domain.Product, string) {
	name, rest, ok := strings.Cut(text, productSeparator)
	if !ok {
		return domain.Product{}, "missing product number separator"
	}
	if strings.TrimSpace(name) == "" {
		return domain.Product{}, "empty product name"
	}
	number, err := parseInt(rest)
	if err != nil {
		return domain.Product{}, "product number is not an integer"
	}

	return domain.Product{Name: name, Number: number, Category: category}, ""
}

// FormatProductRecord формирует строку товара без перевода строки.
func FormatProductRecord(product domain.Product) (string, error) {
	if strings.Contains(product.Name, productSeparator) || containsLineBreak(product.Name) {
		return "", fmt.Errorf("product %d name %q: %w", product.Number, product.Name, ErrUnencodable)
	}
	if strings.HasPrefix(product.Name, CategoryPrefix) {
		return "", fmt.Errorf("product %d name %q starts with category prefix: %w", product.Number, product.Name, ErrUnencodable)
	}
	return product.Name + productSeparator + strconv.Itoa(product.Number), nil
}

// EncodeCatalog записывает каталог: строка категории выводится при каждой её
// смене, затем строки товаров.
func EncodeCatalog(w io.Writer, products []domain.Product) error {
	bw := bufio.NewWriter(w)

	category := ""
	for _, product := range products {
		if product.Category != category {
			if containsLineBreak(product.Category) {
				return fmt.Errorf("category %q: %w", product.Category, ErrUnencodable)
			}
			if _, err := bw.WriteString(CategoryPrefix + product.Category + "\n"); err != nil {
				return fmt.Errorf("write category: %w", err)
			}
			category = product.Category
		}

		record, err := FormatProductRecord(product)
		if err != nil {
			return err
		}
		if _, err := bw.WriteString(record + "\n"); err != nil {
			return fmt.Errorf("write product %d: %w", product.Number, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush catalog: %w", err)
	}
	return nil
}
