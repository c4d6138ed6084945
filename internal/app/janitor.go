package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/conversation"
)

// sweepInterval - период проверки простаивающих сессий
const sweepInterval = time.Minute

// Janitor удаляет сессии, не получавшие событий дольше таймаута,
// чтобы память не росла от брошенных диалогов.
type Janitor struct {
	sessions *conversation.SessionManager
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewJanitor создаёт фоновую чистку сессий
func NewJanitor(sessions *conversation.SessionManager, logger *zap.Logger) *Janitor {
	return &Janitor{
		sessions: sessions,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую чистку
func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("Starting session janitor")
	go j.run(ctx)
}

// Stop останавливает фоновую чистку
func (j *Janitor) Stop() {
	j.logger.Info("Stopping session janitor")
	close(j.stopChan)
}

func (j *Janitor) run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if expired := j.sessions.ExpireIdle(time.Now()); expired > 0 {
				j.logger.Info("Idle sessions expired",
					zap.Int("expired", expired),
					zap.Int("active", j.sessions.Count()))
			}
		case <-j.stopChan:
			j.logger.Info("Session janitor stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Session janitor cancelled")
			return
		}
	}
}
