package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено в ЖК вызывающего
	// (в том числе когда оно существует в другом ЖК)
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotNotBookable возвращается, когда место не бронируется в принципе:
	// неактивно или с договорной ценой (request_quote)
	ErrSlotNotBookable = errors.New("create_booking: slot is not bookable")

	// ErrSlotUnavailable возвращается, когда запрошенный интервал занят
	// активным бронированием
	ErrSlotUnavailable = errors.New("create_booking: slot is unavailable for requested range")

	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrStartInPast возвращается, когда начало бронирования в прошлом
	// за пределами допустимого отставания
	ErrStartInPast = errors.New("create_booking: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
