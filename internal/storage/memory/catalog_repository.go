package memory

import "github.com/vladislavdragonenkov/furniture/internal/domain"

// catalogRepositoryInMemory хранит каталог в порядке файла и индекс по номеру товара.
// После создания не меняется, поэтому блокировки не нужны.
type catalogRepositoryInMemory struct {
	products []domain.Product
	index    map[int]int
}

// NewCatalogRepository создаёт каталог из уже разобранных товаров. При
// повторяющемся номере поиск возвращает первое вхождение, список содержит все.
func NewCatalogRepository(products []domain.Product) domain.CatalogRepository {
	repo := &catalogRepositoryInMemory{
		products: make([]domain.Product, len(products)),
		index:    make(map[int]int, len(products)),
	}
	copy(repo.products, products)
	for pos, product := range repo.products {
		if _, exists := repo.index[product.Number]; exists {
			continue
		}
		repo.index[product.Number] = pos
	}
	return repo
}

// Exists проверяет наличие товара за O(1).
func (r *catalogRepositoryInMemory) Exists(number int) bool {
	_, ok := r.index[number]
	return ok
}

// Get возвращает товар или ErrProductNotFound.
func (r *catalogRepositoryInMemory) Get(number int) (domain.Product, error) {
	pos, ok := r.index[number]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return r.products[pos], nil
}

// List возвращает копию товаров в порядке файла.
func (r *catalogRepositoryInMemory) List() []domain.Product {
	result := make([]domain.Product, len(r.products))
	copy(result, r.products)
	return result
}

// Categories возвращает категории в порядке первого появления.
func (r *catalogRepositoryInMemory) Categories() []string {
	seen := make(map[string]struct{})
	var result []string
	for _, product := range r.products {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		result = append(result, product.Category)
	}
	return result
}

// Len возвращает количество товаров.
func (r *catalogRepositoryInMemory) Len() int {
	return len(r.products)
}

var _ domain.CatalogRepository = (*catalogRepositoryInMemory)(nil)
