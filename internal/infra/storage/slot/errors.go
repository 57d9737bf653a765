package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено
	// (в том числе когда оно существует, но в другом ЖК)
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrDuplicateSlotNumber возвращается при нарушении уникальности
	// номера места внутри ЖК
	ErrDuplicateSlotNumber = errors.New("slot.repository: slot number already exists in community")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
