// Package textformat описывает два текстовых формата системы: файл каталога и
// файл активных заказов. Грамматика каждого формата задана один раз и общая
// для записи и чтения.
//
// Каталог:
//
//	catalog  = { line "\n" }
//	line     = category | product | blank
//	category = "-" text
//	product  = name ", product no. " integer
//
// Заказы:
//
//	orders = { record "\n" }
//	record = customer " order no. " number " | Product No. " integer " | Quantity: " integer " |"
package textformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// CategoryPrefix открывает строку категории в файле каталога.
	CategoryPrefix = "-"

	productSeparator = ", product no. "

	orderSeparator   = " order no. "
	productField     = "| Product No. "
	quantityField    = " | Quantity: "
	recordTerminator = " |"

	maxLineBytes = 1024 * 1024
)

var (
	// ErrMalformedRecord — строка не соответствует грамматике формата.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnencodable — значение нельзя записать без потери при обратном чтении.
	ErrUnencodable = errors.New("value cannot be encoded")
)

// ParseError указывает строку файла, которую не удалось разобрать.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrMalformedRecord).
func (e *ParseError) Unwrap() error {
	return ErrMalformedRecord
}

// scanLines вызывает fn для каждой непустой строки с её номером (с 1).
// Завершающий \r отрезается, чтобы файлы из Windows читались так же.
func scanLines(r io.Reader, fn func(lineNo int, text string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fn(lineNo, text)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	return nil
}

// cutInt разбирает целое число в начале s до разделителя sep.
func cutInt(s, sep string) (int, string, bool) {
	head, tail, ok := strings.Cut(s, sep)
	if !ok {
		return 0, "", false
	}
	value, err := parseInt(head)
	if err != nil {
		return 0, "", false
	}
	return value, tail, true
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func containsLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
