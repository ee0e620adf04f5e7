package textformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

// DecodeOrders разбирает файл активных заказов: одна запись на строку.
// Признак возврата в файле не хранится, все строки считаются активными.
func DecodeOrders(r io.Reader) ([]domain.OrderLine, []error, error) {
	var (
		lines    []domain.OrderLine
		warnings []error
	)

	err := scanLines(r, func(lineNo int, text string) {
		line, reason := parseOrderRecord(text)
		if reason != "" {
			warnings = append(warnings, &ParseError{Line: lineNo, Text: text, Reason: reason})
			return
		}
		lines = append(lines, line)
	})
	if err != nil {
		return lines, warnings, err
	}

	return lines, warnings, nil
}

// parseOrderRecord разбирает запись в два шага: сначала клиент и номер заказа
// до ` order no. `, затем хвост `| Product No. N | Quantity: Q |`.
func parseOrderRecord(text string) (domain.OrderLine, string) {
	customer, rest, ok := strings.Cut(text, orderSeparator)
	if !ok {
		return domain.OrderLine{}, "missing order number separator"
	}
	if strings.TrimSpace(customer) == "" {
		return domain.OrderLine{}, "empty customer name"
	}

	idx := strings.Index(rest, productField)
	if idx < 0 {
		return domain.OrderLine{}, "missing product segment"
	}
	orderNumber := strings.TrimSpace(rest[:idx])
	if orderNumber == "" || strings.ContainsAny(orderNumber, " \t") {
		return domain.OrderLine{}, "invalid order number token"
	}

	productNumber, quantity, reason := parseProductSegment(rest[idx:])
	if reason != "" {
		return domain.OrderLine{}, reason
	}

	line, err := domain.NewOrderLine(customer, orderNumber, productNumber, quantity)
	if err != nil {
		return domain.OrderLine{}, err.Error()
	}
	return line, ""
}

func parseProductSegment(segment string) (int, int, string) {
	rest, ok := strings.CutPrefix(segment, productField)
	if !ok {
		return 0, 0, "missing product segment"
	}
	productNumber, rest, ok := cutInt(rest, quantityField)
	if !ok {
		return 0, 0, "product number is not an integer"
	}
	quantity, rest, ok := cutInt(rest, recordTerminator)
	if !ok {
		return 0, 0, "quantity is not an integer"
	}
	if strings.TrimSpace(rest) != "" {
		return 0, 0, "unexpected trailing data"
	}
	return productNumber, quantity, ""
}

// ValidateCustomerName проверяет, что имя клиента запишется в файл заказов и
// прочитается обратно тем же: без перевода строки и без разделителя ` order no. `,
// в том числе на стыке имени и разделителя.
func ValidateCustomerName(name string) error {
	if containsLineBreak(name) || strings.Index(name+orderSeparator, orderSeparator) != len(name) {
		return fmt.Errorf("customer name %q: %w", name, ErrUnencodable)
	}
	return nil
}

// FormatOrderRecord формирует запись строки заказа без перевода строки.
func FormatOrderRecord(line domain.OrderLine) (string, error) {
	if err := ValidateCustomerName(line.CustomerName); err != nil {
		return "", err
	}
	if line.OrderNumber == "" || strings.ContainsAny(line.OrderNumber, " \t\r\n|") {
		return "", fmt.Errorf("order number %q: %w", line.OrderNumber, ErrUnencodable)
	}

	var b strings.Builder
	b.WriteString(line.CustomerName)
	b.WriteString(orderSeparator)
	b.WriteString(line.OrderNumber)
	b.WriteString(" ")
	b.WriteString(productField)
	b.WriteString(strconv.Itoa(line.ProductNumber))
	b.WriteString(quantityField)
	b.WriteString(strconv.Itoa(line.Quantity))
	b.WriteString(recordTerminator)
	return b.String(), nil
}

// EncodeOrders записывает строки в порядке добавления, по одной записи на строку.
func EncodeOrders(w io.Writer, lines []domain.OrderLine) error {
	bw := bufio.NewWriter(w)

	for _, line := range lines {
		record, err := FormatOrderRecord(line)
		if err != nil {
			return err
		}
		if _, err := bw.WriteString(record + "\n"); err != nil {
			return fmt.Errorf("write order %s: %w", line.OrderNumber, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush orders: %w", err)
	}
	return nil
}
