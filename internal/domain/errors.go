package domain

import "errors"

var (
	// Ошибка отсутствующего имени клиента.
	ErrCustomerRequired = errors.New("customer name is required")
	// Ошибка слишком длинного имени клиента.
	ErrCustomerNameTooLong = errors.New("customer name is too long")
	// Ошибка имени, которое нельзя сохранить в файл заказов.
	ErrCustomerNameInvalid = errors.New("customer name contains reserved text")
	// Ошибка отсутствующего номера заказа в строке.
	ErrOrderNumberRequired = errors.New("order number is required")
	// Ошибка некорректного номера товара (<= 0).
	ErrProductNumberInvalid = errors.New("product number must be greater than zero")
	// Ошибка отрицательного или нечислового количества.
	ErrQuantityInvalid = errors.New("quantity must be non-negative")
	// ErrProductNotFound возвращается, если товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если в активных заказах нет такого номера.
	ErrOrderNotFound = errors.New("order not found")
	// ErrSourceUnavailable — файл каталога или заказов не удалось открыть.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrOrderNumberExhausted — не удалось подобрать свободный номер заказа.
	ErrOrderNumberExhausted = errors.New("order number space exhausted")
	// ErrEventPublish — ошибка публикации события журнала.
	ErrEventPublish = errors.New("event publish failed")
)

// IsNotFound проверяет, относится ли ошибка к отсутствующему товару или заказу.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrOrderNotFound)
}

// IsValidation проверяет, является ли ошибка ошибкой пользовательского ввода.
func IsValidation(err error) bool {
	return errors.Is(err, ErrCustomerRequired) ||
		errors.Is(err, ErrCustomerNameTooLong) ||
		errors.Is(err, ErrCustomerNameInvalid) ||
		errors.Is(err, ErrOrderNumberRequired) ||
		errors.Is(err, ErrProductNumberInvalid) ||
		errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrProductNotFound)
}
