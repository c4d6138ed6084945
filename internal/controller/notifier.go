package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/model"
)

// AdminNotifier отправляет уведомления администратору в Telegram.
// Доставка fire-and-forget: ошибка логируется и не возвращается,
// повторных попыток нет.
type AdminNotifier struct {
	bot     *bot.Bot
	adminID int64
	logger  *zap.Logger
}

// NewAdminNotifier создаёт нотификатор администратора
func NewAdminNotifier(b *bot.Bot, adminID int64, logger *zap.Logger) *AdminNotifier {
	return &AdminNotifier{
		bot:     b,
		adminID: adminID,
		logger:  logger,
	}
}

// BookingCreated уведомляет администратора о новой заявке
func (n *AdminNotifier) BookingCreated(ctx context.Context, req *model.BookingRequest) {
	var details string
	if req.NoInstrument() {
		details = "Гитары пока нет - нужна помощь с подбором, время не выбиралось"
	} else {
		details = fmt.Sprintf(
			"День: %s\nВремя: %s\nЧасовой пояс: %s",
			model.FormatDateRU(req.Date), req.Slot, req.Timezone)
	}

	text := fmt.Sprintf(
		"🎉 *НОВАЯ ЗАЯВКА НА ЗАНЯТИЕ!*\n\n"+
			"👤 *Клиент:*\n"+
			"Имя: %s\n"+
			"Username: %s\n"+
			"ID: `%d`\n\n"+
			"📅 *Детали записи:*\n"+
			"Уровень: %s\n"+
			"Инструмент: %s\n"+
			"%s\n\n"+
			"Заявка: `%s`",
		req.FullName, displayUsername(req.Username), req.UserID,
		levelRU(req.Level), instrumentRU(req.Instrument), details, req.ID)

	n.Notify(ctx, text)
}

// Notify отправляет администратору произвольный текст
func (n *AdminNotifier) Notify(ctx context.Context, text string) {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.adminID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		n.logger.Error("Failed to send admin notification", zap.Error(err))
		return
	}
	n.logger.Info("Admin notification sent")
}

func displayUsername(username string) string {
	if username == "" {
		return "без username"
	}
	return "@" + username
}

func levelRU(level string) string {
	switch level {
	case model.LevelBeginner:
		return "Новичок"
	case model.LevelExperienced:
		return "Уже играл(а)"
	}
	return "не указан"
}

func instrumentRU(instrument string) string {
	switch instrument {
	case model.InstrumentElectric:
		return "Электрогитара"
	case model.InstrumentAcoustic:
		return "Акустическая"
	case model.InstrumentNone:
		return "Нет гитары"
	}
	return "не указан"
}
