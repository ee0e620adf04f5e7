package domain

import "strings"

// Partition задаёт раздел журнала, в котором находится строка заказа.
type Partition string

const (
	// PartitionActive — текущие заказы, только они сохраняются в файл.
	PartitionActive Partition = "active"
	// PartitionReturned — оформленные возвраты, живут до завершения программы.
	PartitionReturned Partition = "returned"
)

// OrderKey — явный ключ группировки строк в заказ: клиент и номер заказа.
type OrderKey struct {
	CustomerName string
	OrderNumber  string
}

// OrderLine представляет одну позицию (товар и количество) внутри заказа.
type OrderLine struct {
	CustomerName  string
	ProductNumber int
	Quantity      int
	// OrderNumber общий для всех строк одной транзакции оформления.
	OrderNumber string
	// IsReturn зеркалирует раздел журнала и не сохраняется в файл.
	IsReturn bool
}

// Key возвращает ключ заказа, которому принадлежит строка.
func (l OrderLine) Key() OrderKey {
	return OrderKey{CustomerName: l.CustomerName, OrderNumber: l.OrderNumber}
}

// Order — представление заказа: строки с одинаковым OrderKey в порядке добавления.
type Order struct {
	Key   OrderKey
	Lines []OrderLine
}

// TotalQuantity суммирует количество по всем строкам заказа.
func (o Order) TotalQuantity() int {
	var total int
	for _, line := range o.Lines {
		total += line.Quantity
	}
	return total
}

// NewOrderLine создаёт строку заказа, проверяя инварианты. Проверка товара
// по каталогу остаётся на вызывающей стороне.
func NewOrderLine(customerName, orderNumber string, productNumber, quantity int) (OrderLine, error) {
	line := OrderLine{
		CustomerName:  customerName,
		ProductNumber: productNumber,
		Quantity:      quantity,
		OrderNumber:   orderNumber,
	}
	if errs := line.ValidateInvariants(); len(errs) > 0 {
		return OrderLine{}, errs[0]
	}
	return line, nil
}

// ValidateInvariants проверяет базовые инварианты строки и возвращает список замечаний.
func (l OrderLine) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(l.CustomerName) == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if strings.TrimSpace(l.OrderNumber) == "" {
		errs = append(errs, ErrOrderNumberRequired)
	}
	if l.ProductNumber <= 0 {
		errs = append(errs, ErrProductNumberInvalid)
	}
	if l.Quantity < 0 {
		errs = append(errs, ErrQuantityInvalid)
	}

	return errs
}

// GroupOrders группирует строки по OrderKey. Группы идут в порядке первого
// появления ключа, строки внутри группы сохраняют исходный порядок, поэтому
// результат не зависит от того, лежат ли строки заказа подряд.
func GroupOrders(lines []OrderLine) []Order {
	if len(lines) == 0 {
		return nil
	}

	index := make(map[OrderKey]int)
	orders := make([]Order, 0)
	for _, line := range lines {
		key := line.Key()
		pos, ok := index[key]
		if !ok {
			pos = len(orders)
			index[key] = pos
			orders = append(orders, Order{Key: key})
		}
		orders[pos].Lines = append(orders[pos].Lines, line)
	}
	return orders
}
