package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// (в том числе когда оно существует, но в другом ЖК)
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlappingBooking возвращается, когда вставка отклонена
	// exclusion-ограничением БД: диапазон пересекается с активным
	// бронированием этого же места
	ErrOverlappingBooking = errors.New("booking.repository: overlapping booking exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
