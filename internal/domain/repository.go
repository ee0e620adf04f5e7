package domain

// CatalogRepository описывает требования к хранилищу каталога. После загрузки
// каталог только читается.
type CatalogRepository interface {
	// Exists проверяет наличие товара с указанным номером.
	Exists(number int) bool
	// Get возвращает товар или ErrProductNotFound.
	Get(number int) (Product, error)
	// List возвращает товары в порядке файла каталога.
	List() []Product
	// Categories возвращает категории в порядке первого появления.
	Categories() []string
	// Len возвращает количество товаров.
	Len() int
}

// LedgerStats — размеры разделов журнала заказов.
type LedgerStats struct {
	ActiveLines   int
	ReturnedLines int
}

// LedgerRepository описывает журнал строк заказов с разделами active/returned.
type LedgerRepository interface {
	// Place добавляет строку в active или увеличивает количество у строки с тем же
	// клиентом, номером заказа и товаром. merged=true, если строка была слита.
	Place(line OrderLine) (merged bool, err error)
	// Return переносит все строки заказа из active в returned, сохраняя порядок.
	// Возвращает ErrOrderNotFound, если не перенесено ни одной строки.
	Return(orderNumber string) (int, error)
	// ListActive возвращает копию активных строк в порядке добавления.
	ListActive() []OrderLine
	// ListReturned возвращает копию возвращённых строк в порядке переноса.
	ListReturned() []OrderLine
	// Replace заменяет раздел active строками из сохранённого состояния.
	Replace(lines []OrderLine) error
	// HasOrderNumber проверяет, занят ли номер заказа в любом разделе.
	HasOrderNumber(orderNumber string) bool
	// Stats возвращает размеры разделов.
	Stats() LedgerStats
}
