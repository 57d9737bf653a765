package domain

import (
	"math"
	"time"
)

// ComputePrice вычисляет стоимость бронирования: почасовая ставка,
// умноженная на длительность в часах (дробная), с округлением до копеек.
// Цена всегда считается на сервере - значение из запроса клиента не
// принимается и не сохраняется.
func ComputePrice(pricePerHour float64, start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	return math.Round(pricePerHour*hours*100) / 100
}
