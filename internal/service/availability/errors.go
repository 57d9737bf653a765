package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено в ЖК вызывающего
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability service: internal error")
)
