package conversation

import "errors"

// Ошибки диалогов. Все они локальны для одной сессии:
// обработчик показывает сообщение и перерисовывает текущее состояние.
var (
	ErrNotAdmin        = errors.New("user is not the administrator")
	ErrBadTimezone     = errors.New("invalid timezone offset")
	ErrSlotUnavailable = errors.New("slot is not available for this date")
	ErrUnexpectedEvent = errors.New("event is not valid in the current state")
)
