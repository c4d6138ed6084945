package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/conversation"
	"github.com/ryder-music/lessonbot/internal/service"
)

// welcomePhotoURL - фото для приветственного сообщения
const welcomePhotoURL = "https://drive.usercontent.google.com/download?id=19jsxEL17vlwXsBZ8wrNzoXP8q459nOtl&export=view"

// BotController связывает Telegram с автоматами диалогов:
// разбирает входящие события, отдаёт их нужному автомату
// и отрисовывает полученные экраны.
type BotController struct {
	bot      *bot.Bot
	sessions *conversation.SessionManager
	booking  *conversation.BookingFlow
	admin    *conversation.AdminFlow
	notifier *AdminNotifier
	logger   *zap.Logger
}

// NewBotController создаёт контроллер бота
func NewBotController(
	botInstance *bot.Bot,
	store *service.ScheduleStore,
	sessions *conversation.SessionManager,
	notifier *AdminNotifier,
	adminID int64,
	askLevel, askInstrument bool,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:      botInstance,
		sessions: sessions,
		booking:  conversation.NewBookingFlow(store, notifier, logger, askLevel, askInstrument),
		admin:    conversation.NewAdminFlow(store, adminID, logger),
		notifier: notifier,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypeExact, c.handleAdmin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handleCancel)

	// Текстовые сообщения (ввод часового пояса, вопросы преподавателю)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handleTextMessage)

	// Нажатия на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "cancel", Description: "❌ Отменить текущую запись"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает поллинг
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}

// handleStart обрабатывает команду /start
func (c *BotController) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := update.Message.From

	c.logger.Info("User started the bot",
		zap.Int64("telegram_id", user.ID),
		zap.String("username", user.Username))

	c.notifier.Notify(ctx, fmt.Sprintf(
		"🆕 *Новый пользователь!*\n👤 Имя: %s\n🔗 Username: %s\n🆔 ID: `%d`",
		fullName(user), displayUsername(user.Username), user.ID))

	c.sendWelcome(ctx, update.Message.Chat.ID)
}

// handleAdmin открывает админ-панель. Вход только для настроенного
// администратора: остальным сессия не создаётся.
func (c *BotController) handleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := update.Message.From

	if err := c.admin.Authorize(user.ID); err != nil {
		c.logger.Warn("Admin panel access denied",
			zap.Int64("telegram_id", user.ID),
			zap.String("username", user.Username))
		c.sendMessage(ctx, update.Message.Chat.ID, errorMessage(err), nil)
		return
	}

	sess := c.sessions.Create(user.ID, user.Username, fullName(user))
	sess.Lock()
	screen := c.admin.Start(sess)
	sess.Unlock()

	c.sendScreen(ctx, update.Message.Chat.ID, screen)
}

// handleCancel сбрасывает текущий диалог
func (c *BotController) handleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	c.sessions.Delete(update.Message.From.ID)
	c.sendWelcome(ctx, update.Message.Chat.ID)
}

// handleTextMessage обрабатывает свободный текст: внутри диалога это ввод
// часового пояса, вне диалога - сообщение преподавателю.
func (c *BotController) handleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	user := update.Message.From
	chatID := update.Message.Chat.ID

	if sess, ok := c.sessions.Get(user.ID); ok {
		sess.Lock()
		inDialog := sess.State == conversation.StateAwaitingCustomTimezone
		sess.Unlock()
		if inDialog {
			ev := conversation.Event{
				Kind:  conversation.EventCustomTimezoneText,
				Value: update.Message.Text,
			}
			c.dispatch(ctx, chatID, sess, ev)
			return
		}
	}

	// Пересылаем сообщение администратору
	c.logger.Info("Relaying user message to admin", zap.Int64("telegram_id", user.ID))
	c.notifier.Notify(ctx, fmt.Sprintf(
		"💬 *Новое сообщение от клиента!*\n\n"+
			"👤 От: %s (%s)\nID: `%d`\n\n"+
			"📝 Сообщение:\n%s",
		fullName(user), displayUsername(user.Username), user.ID, update.Message.Text))

	c.sendMessage(ctx, chatID, messageRelayedText, mainKeyboard())
}

// handleCallbackQuery обрабатывает нажатия inline кнопок
func (c *BotController) handleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callback.ID})

	msg := callback.Message.Message
	if msg == nil {
		return
	}
	user := callback.From
	chatID := msg.Chat.ID
	data := callback.Data

	c.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("telegram_id", user.ID))

	// Информационные экраны и вход в диалог записи
	switch data {
	case cbTrial:
		c.sendMessage(ctx, chatID, trialLessonText, infoKeyboard())
		return
	case cbAbout:
		c.sendMessage(ctx, chatID, aboutText, infoKeyboard())
		return
	case cbPreparation:
		c.sendMessage(ctx, chatID, preparationText, infoKeyboard())
		return
	case cbSchedule:
		c.notifier.Notify(ctx, fmt.Sprintf("📅 Пользователь %s начал запись на занятие",
			displayUsername(user.Username)))
		sess := c.sessions.Create(user.ID, user.Username, fullName(&user))
		sess.Lock()
		screen := c.booking.Start(sess)
		sess.Unlock()
		c.sendScreen(ctx, chatID, screen)
		return
	}

	ev, ok := decodeEvent(data)
	if !ok {
		c.logger.Warn("Unknown callback data", zap.String("data", data))
		return
	}

	sess, active := c.sessions.Get(user.ID)
	if !active {
		// Отмена вне сессии просто возвращает в меню
		if ev.Kind == conversation.EventCancel {
			c.sendWelcome(ctx, chatID)
			return
		}
		c.logger.Warn("Callback without active session",
			zap.Int64("telegram_id", user.ID),
			zap.String("data", data))
		c.sendMessage(ctx, chatID, "⏰ Сессия завершена. Начните заново: /start", mainKeyboard())
		return
	}

	c.dispatch(ctx, chatID, sess, ev)
}

// dispatch отдаёт событие автомату по текущему состоянию сессии
// и отрисовывает результат
func (c *BotController) dispatch(ctx context.Context, chatID int64, sess *conversation.Session, ev conversation.Event) {
	sess.Lock()
	defer sess.Unlock()

	var (
		screen *conversation.Screen
		err    error
	)
	if sess.State.Admin() {
		screen, err = c.admin.Handle(ctx, sess, ev)
	} else {
		screen, err = c.booking.Handle(ctx, sess, ev)
	}

	if err != nil {
		if errors.Is(err, conversation.ErrUnexpectedEvent) {
			// Событие вне переходов текущего состояния: логируем и
			// перерисовываем состояние без изменений
			c.logger.Warn("Unexpected event for state",
				zap.Int64("telegram_id", sess.UserID),
				zap.String("state", string(sess.State)),
				zap.String("event", string(ev.Kind)))
		} else {
			c.logger.Error("Dialog event failed",
				zap.Int64("telegram_id", sess.UserID),
				zap.String("state", string(sess.State)),
				zap.String("event", string(ev.Kind)),
				zap.Error(err))
			c.sendMessage(ctx, chatID, errorMessage(err), nil)
		}
		screen = c.currentScreen(sess)
		if screen == nil {
			return
		}
		c.sendScreen(ctx, chatID, screen)
		return
	}

	c.sendScreen(ctx, chatID, screen)
	if screen.Terminal {
		c.sessions.Delete(sess.UserID)
	}
}

func (c *BotController) currentScreen(sess *conversation.Session) *conversation.Screen {
	if sess.State.Admin() {
		return c.admin.Current(sess)
	}
	return c.booking.Current(sess)
}

// sendScreen отправляет экран диалога пользователю
func (c *BotController) sendScreen(ctx context.Context, chatID int64, screen *conversation.Screen) {
	text, kb := renderScreen(screen)
	if text == "" {
		return
	}
	c.sendMessage(ctx, chatID, text, kb)
}

func (c *BotController) sendMessage(ctx context.Context, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := c.bot.SendMessage(ctx, params); err != nil {
		c.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendWelcome отправляет приветствие с фото, при неудаче - текстом
func (c *BotController) sendWelcome(ctx context.Context, chatID int64) {
	_, err := c.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileString{Data: welcomePhotoURL},
		Caption:     welcomeText,
		ReplyMarkup: mainKeyboard(),
	})
	if err != nil {
		c.logger.Warn("Failed to send welcome photo, falling back to text", zap.Error(err))
		c.sendMessage(ctx, chatID, welcomeText, mainKeyboard())
	}
}

func fullName(user *models.User) string {
	if user == nil {
		return ""
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
