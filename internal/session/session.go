// Package session реализует интерактивное меню каталога поверх io.Reader/io.Writer.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/service/ordering"
)

const (
	choiceCatalog = iota + 1
	choicePlaceOrder
	choiceOrders
	choiceReturn
	choiceReturns
	choiceQuit
)

// Session — один сеанс работы оператора с меню.
type Session struct {
	service *ordering.Service
	store   domain.OrderSnapshotStore
	in      *bufio.Reader
	out     io.Writer
	logger  *log.Entry
}

// New создаёт сеанс. store используется для сохранения заказов при выходе.
func New(service *ordering.Service, store domain.OrderSnapshotStore, in io.Reader, out io.Writer, logger *log.Entry) *Session {
	if logger == nil {
		logger = log.New().WithField("component", "session")
	}
	return &Session{
		service: service,
		store:   store,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger.WithField("session_id", uuid.NewString()),
	}
}

// Run крутит меню до выбора Quit или конца ввода; в обоих случаях заказы сохраняются.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Debug("session started")

	for {
		if ctx.Err() != nil {
			return s.quit(ctx)
		}

		RenderMenu(s.out)
		s.printf("Enter your choice: ")

		line, err := s.readLine()
		if err != nil {
			return s.finish(ctx, err)
		}

		choice, err := parseNumber(line)
		if err != nil {
			s.printf("Invalid choice. Please enter a number between 1 and 6.\n")
			continue
		}

		switch choice {
		case choiceCatalog:
			RenderCatalog(s.out, s.service.Catalog().List())
		case choicePlaceOrder:
			err = s.placeOrder(ctx)
		case choiceOrders:
			RenderOrders(s.out, s.service.ActiveOrders())
		case choiceReturn:
			err = s.processReturn(ctx)
		case choiceReturns:
			RenderReturns(s.out, s.service.ReturnedLines())
		case choiceQuit:
			return s.quit(ctx)
		default:
			s.printf("Invalid choice. Please enter a number between 1 and 6.\n")
		}
		if err != nil {
			return s.finish(ctx, err)
		}
	}
}

func (s *Session) placeOrder(ctx context.Context) error {
	s.printf("Enter your name: ")
	name, err := s.readLine()
	if err != nil {
		return err
	}

	tx, err := s.service.BeginOrder(name)
	switch {
	case errors.Is(err, domain.ErrCustomerRequired), errors.Is(err, domain.ErrCustomerNameInvalid):
		s.printf("Invalid input. Please enter a valid name.\n")
		return nil
	case errors.Is(err, domain.ErrCustomerNameTooLong):
		s.printf("Invalid input. Name must be at most %d characters.\n", ordering.MaxNameLength)
		return nil
	case err != nil:
		return err
	}

	var inputErr error
	for {
		s.printf("Enter the product number you want to order (0 to finish): ")
		line, err := s.readLine()
		if err != nil {
			inputErr = err
			break
		}

		productNumber, err := parseNumber(line)
		if err != nil {
			s.printf("Invalid input. Please enter a valid product number.\n")
			continue
		}
		if productNumber == 0 {
			break
		}
		if !s.service.Catalog().Exists(productNumber) {
			s.printf("Product number invalid. Product does not exist.\n")
			continue
		}

		s.printf("Enter the quantity you want to order: ")
		line, err = s.readLine()
		if err != nil {
			inputErr = err
			break
		}
		quantity, err := parseNumber(line)
		if err != nil || quantity < 0 {
			s.printf("Invalid input. Please enter a valid quantity.\n")
			continue
		}

		merged, err := tx.Add(productNumber, quantity)
		if err != nil {
			s.logger.WithError(err).Warn("order line rejected")
			s.printf("Invalid input. Please enter a valid quantity.\n")
			continue
		}
		if merged {
			s.printf("Quantity updated for existing product.\n")
		} else {
			s.printf("Product added to order successfully.\n")
		}
	}

	tx.Commit(ctx)
	s.printf("Order completed. Your order number is: %s\n", tx.OrderNumber())
	return inputErr
}

func (s *Session) processReturn(ctx context.Context) error {
	s.printf("Enter the order number for the return: ")
	line, err := s.readLine()
	if err != nil {
		return err
	}

	fields := strings.Fields(line)
	number := ""
	if len(fields) > 0 {
		number = fields[0]
	}

	if _, err := s.service.ProcessReturn(ctx, number); err != nil {
		if domain.IsNotFound(err) || domain.IsValidation(err) {
			s.printf("Order number not found. Return cannot be processed.\n")
			return nil
		}
		return err
	}
	s.printf("Return processed successfully.\n")
	return nil
}

// finish завершает сеанс: конец ввода считается выходом.
func (s *Session) finish(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) {
		s.logger.Debug("input closed")
		return s.quit(ctx)
	}
	if saveErr := s.quit(ctx); saveErr != nil {
		return errors.Join(err, saveErr)
	}
	return err
}

// quit сохраняет заказы и прощается. Сохранение не зависит от отмены ctx:
// сигнал остановки не должен терять заказы сеанса.
func (s *Session) quit(ctx context.Context) error {
	var err error
	if s.store != nil {
		if err = s.service.Persist(context.WithoutCancel(ctx), s.store); err != nil {
			s.logger.WithError(err).Error("failed to save orders")
			s.printf("Error saving orders: %v\n", err)
		}
	}
	s.printf("\nThank you for using our Furniture Catalog System!\n")
	return err
}

// readLine читает строку без перевода строки. Последняя строка без '\n'
// возвращается как обычная; пустой остаток даёт io.EOF.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// parseNumber разбирает первое слово строки как целое число.
func parseNumber(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(fields[0])
}
