// Package seed генерирует демонстрационные каталоги и заказы.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/service/ordering"
)

// ErrEmptyCatalog — заказы нельзя сгенерировать без товаров.
var ErrEmptyCatalog = errors.New("catalog is empty")

var categories = []string{"Living Room", "Bedroom", "Dining Room", "Office", "Outdoor", "Kids Room"}

var furniture = map[string][]string{
	"Living Room": {"Sofa", "Armchair", "Coffee Table", "TV Stand", "Bookcase"},
	"Bedroom":     {"Bed", "Nightstand", "Dresser", "Wardrobe", "Mirror"},
	"Dining Room": {"Dining Table", "Dining Chair", "Sideboard", "Bar Stool"},
	"Office":      {"Desk", "Office Chair", "Filing Cabinet", "Shelf"},
	"Outdoor":     {"Patio Table", "Lounger", "Hammock", "Garden Bench"},
	"Kids Room":   {"Bunk Bed", "Toy Chest", "Study Desk", "Beanbag"},
}

// Seeder — генератор данных. Одинаковый seed даёт одинаковый результат.
type Seeder struct {
	faker *gofakeit.Faker
}

// New создаёт генератор; seed=0 даёт случайный.
func New(seed uint64) *Seeder {
	return &Seeder{faker: gofakeit.New(seed)}
}

// Catalog возвращает до perCategory товаров в каждой из count категорий.
// Номер товара: индекс категории * 100 + позиция.
func (s *Seeder) Catalog(count, perCategory int) []domain.Product {
	if count > len(categories) {
		count = len(categories)
	}

	var products []domain.Product
	for i := 0; i < count; i++ {
		category := categories[i]
		names := furniture[category]
		n := perCategory
		if n > len(names) {
			n = len(names)
		}
		for j := 0; j < n; j++ {
			products = append(products, domain.Product{
				Name:     fmt.Sprintf("%s %s", s.faker.Adjective(), names[j]),
				Number:   (i+1)*100 + j + 1,
				Category: category,
			})
		}
	}
	return products
}

// Orders оформляет count заказов через сервис, до maxLines строк в каждом.
// Возвращает число добавленных строк (слияния тоже считаются).
func (s *Seeder) Orders(ctx context.Context, svc *ordering.Service, count, maxLines int) (int, error) {
	products := svc.Catalog().List()
	if len(products) == 0 {
		return 0, ErrEmptyCatalog
	}
	if maxLines < 1 {
		maxLines = 1
	}

	placed := 0
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return placed, err
		}

		tx, err := svc.BeginOrder(s.faker.FirstName() + " " + s.faker.LastName())
		if err != nil {
			return placed, fmt.Errorf("begin order %d: %w", i, err)
		}

		lines := s.faker.Number(1, maxLines)
		for j := 0; j < lines; j++ {
			product := products[s.faker.Number(0, len(products)-1)]
			if _, err := tx.Add(product.Number, s.faker.Number(1, 5)); err != nil {
				return placed, fmt.Errorf("add line to order %s: %w", tx.OrderNumber(), err)
			}
			placed++
		}
		tx.Commit(ctx)
	}
	return placed, nil
}
