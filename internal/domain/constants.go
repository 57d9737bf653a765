package domain

import "time"

// Business validation constants
const (
	// PastStartGrace допустимое отставание начала бронирования от текущего
	// момента. Закрывает случай "бронирую прямо сейчас", когда запрос
	// доходит до сервера на пару минут позже выбранного времени.
	PastStartGrace = 5 * time.Minute

	MaxSlotNumberLength = 16
	MaxNameLength       = 100
	MaxPhoneLength      = 32
)
