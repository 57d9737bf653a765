package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено в ЖК вызывающего.
	// Места из чужих ЖК намеренно неотличимы от несуществующих.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrDuplicateSlotNumber возвращается, когда номер места уже занят в ЖК
	ErrDuplicateSlotNumber = errors.New("slot number already exists in community")

	// ErrAccessDenied возвращается, когда место в ЖК вызывающего,
	// но он не владелец и не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrImmutableField возвращается при попытке изменить communityCode
	// или ownerId через обновление
	ErrImmutableField = errors.New("attempt to modify immutable field")

	// ErrActiveBookingsExist возвращается при попытке удалить место
	// с активными бронированиями
	ErrActiveBookingsExist = errors.New("slot has active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots service: internal error")
)
