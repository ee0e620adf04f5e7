package ordering

import (
	"fmt"
	"math/rand/v2"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

const (
	// defaultNumberWidth — ширина номера заказа (%04d).
	defaultNumberWidth = 4
	// maxNumberWidth ограничивает расширение пространства номеров.
	maxNumberWidth = 9
	// maxAttemptsPerWidth — число попыток до расширения на одну цифру.
	maxAttemptsPerWidth = 64
)

// RandomSource — источник случайных чисел; *rand.Rand подходит напрямую.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// NumberGenerator выдаёт номера заказов с нулями слева, не занятые в журнале.
type NumberGenerator struct {
	rnd   RandomSource
	width int
}

// NewNumberGenerator создаёт генератор. При nil rnd используется глобальный источник math/rand/v2.
func NewNumberGenerator(rnd RandomSource) *NumberGenerator {
	if rnd == nil {
		rnd = globalSource{}
	}
	return &NumberGenerator{rnd: rnd, width: defaultNumberWidth}
}

// Next возвращает номер, для которого taken вернул false. После
// maxAttemptsPerWidth коллизий ширина увеличивается на одну цифру.
func (g *NumberGenerator) Next(taken func(string) bool) (string, error) {
	for width := g.width; width <= maxNumberWidth; width++ {
		space := pow10(width)
		for attempt := 0; attempt < maxAttemptsPerWidth; attempt++ {
			candidate := fmt.Sprintf("%0*d", width, g.rnd.IntN(space))
			if taken == nil || !taken(candidate) {
				return candidate, nil
			}
		}
	}
	return "", domain.ErrOrderNumberExhausted
}

func pow10(n int) int {
	result := 1
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}
