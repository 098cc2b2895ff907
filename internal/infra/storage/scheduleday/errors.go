package scheduleday

import "errors"

var (
	// ErrDayNotFound возвращается, когда для даты нет сохраненного графика
	ErrDayNotFound = errors.New("scheduleday.repository: schedule day not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("scheduleday.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("scheduleday.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("scheduleday.repository: failed to scan row")
)
