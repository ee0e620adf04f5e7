package domain

// Product описывает позицию каталога мебели.
type Product struct {
	// Name — отображаемое название товара.
	Name string
	// Number — номер товара, единственный ключ поиска в каталоге.
	Number int
	// Category группирует товары при отображении и разборе файла каталога.
	Category string
}
