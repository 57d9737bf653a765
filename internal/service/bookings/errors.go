package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено в ЖК
	// вызывающего. Чужие ЖК намеренно неотличимы от несуществующих данных.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotNotFound возвращается, когда место не найдено в ЖК вызывающего
	ErrSlotNotFound = errors.New("slot not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTargetStatus возвращается, когда через операцию отмены
	// запрошен любой статус, кроме cancelled
	ErrInvalidTargetStatus = errors.New("only cancelled status is accepted")

	// ErrImmutableState возвращается при попытке отменить бронирование
	// в необратимом состоянии (completed, no_show)
	ErrImmutableState = errors.New("booking is in immutable state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
