package create_booking

import "time"

// Request модель запроса на создание бронирования.
// Арендатор и ЖК не принимаются от клиента - они берутся из
// тенант-контекста. Поля цены нет структурно: цена считается сервером.
type Request struct {
	SlotID    string    // ID парковочного места
	StartTime time.Time // Начало интервала
	EndTime   time.Time // Конец интервала (не входит в интервал)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string  // ID созданного бронирования
	SlotID      string  // ID места
	RenterID    string  // ID арендатора
	SlotOwnerID *string // Владелец места на момент бронирования (денормализация)

	StartTime time.Time
	EndTime   time.Time

	TotalPrice float64 // Стоимость, рассчитанная сервером
	Status     string  // Статус бронирования

	CreatedAt time.Time
	UpdatedAt time.Time
}
