package model

import (
	"time"

	"github.com/google/uuid"
)

// Уровни подготовки ученика
const (
	LevelBeginner    = "beginner"
	LevelExperienced = "experienced"
)

// Варианты наличия инструмента
const (
	InstrumentElectric = "electric"
	InstrumentAcoustic = "acoustic"
	InstrumentNone     = "none"
)

// BookingRequest - заявка на пробное занятие, результат завершённого диалога записи.
// Заявка не сохраняется: она передаётся администратору и забывается.
// Слот при этом не резервируется - подтверждение времени остаётся за администратором.
type BookingRequest struct {
	ID         string
	UserID     int64
	Username   string
	FullName   string
	Level      string
	Instrument string
	Timezone   string
	Date       time.Time
	Slot       TimeSlot
	CreatedAt  time.Time
}

// NewBookingRequest создаёт заявку с новым идентификатором
func NewBookingRequest(userID int64, username, fullName string) *BookingRequest {
	return &BookingRequest{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		FullName:  fullName,
		CreatedAt: time.Now(),
	}
}

// NoInstrument сообщает, что у ученика нет гитары и дата/время не выбирались
func (r *BookingRequest) NoInstrument() bool {
	return r.Instrument == InstrumentNone
}
