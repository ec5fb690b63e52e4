package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

// ErrNoSession у чата нет открытого мастера
var ErrNoSession = errors.New("no active booking session")

// SubmitFunc отправка заявки (обычно bookingclient.Client.Submit)
type SubmitFunc func(ctx context.Context, req *booking.Request) (*booking.Response, error)

// Manager управляет мастерами записи по чатам.
// go-telegram вызывает обработчики параллельно, поэтому все обращения к сессии идут под mu.
type Manager struct {
	mu     sync.Mutex
	states map[int64]*UserData // chatID -> UserData

	inflight sync.WaitGroup
	newOpts  []booking.Option
	now      func() time.Time
	logger   *zap.Logger
}

// NewManager создаёт новый менеджер состояний
func NewManager(logger *zap.Logger, opts ...booking.Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		states:  make(map[int64]*UserData),
		newOpts: opts,
		now:     time.Now,
		logger:  logger,
	}
}

// Open открывает новый мастер для чата, старый (если был) отбрасывается
func (sm *Manager) Open(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[chatID] = &UserData{
		Session:   booking.NewSession(sm.newOpts...),
		UpdatedAt: sm.now(),
	}
}

// Close закрывает мастер чата. Возвращает false, если закрывать было нечего.
func (sm *Manager) Close(chatID int64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	_, exists := sm.states[chatID]
	delete(sm.states, chatID)
	return exists
}

// Exists есть ли у чата открытый мастер
func (sm *Manager) Exists(chatID int64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	_, exists := sm.states[chatID]
	return exists
}

// Do выполняет fn над данными чата под блокировкой.
// fn не должна обращаться к сети: только переходы сессии и сборка экрана.
func (sm *Manager) Do(chatID int64, fn func(*UserData) error) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	data, exists := sm.states[chatID]
	if !exists {
		return ErrNoSession
	}
	data.UpdatedAt = sm.now()
	return fn(data)
}

// Submit начинает отправку заявки и выполняет её в фоне.
// Повторный вызов, пока отправка идёт, возвращает booking.ErrSubmitInFlight без второго запроса.
// started вызывается синхронно до запроса с копией данных в состоянии Submitting.
// done получает копию обновлённых данных, только если мастер не сбросили и не закрыли.
// Отмена ctx (остановка бота) не прерывает уже начатую отправку: её ограничивает таймаут submit.
func (sm *Manager) Submit(ctx context.Context, chatID int64, submit SubmitFunc, started, done func(UserData)) error {
	sm.mu.Lock()
	data, exists := sm.states[chatID]
	if !exists {
		sm.mu.Unlock()
		return ErrNoSession
	}
	req, err := data.Session.BeginSubmit()
	sessionID := data.Session.ID()
	data.UpdatedAt = sm.now()
	data.Sync()
	snapshot := data.Snapshot()
	sm.mu.Unlock()

	if err != nil {
		return err
	}

	if started != nil {
		started(snapshot)
	}

	submitCtx := context.WithoutCancel(ctx)

	sm.inflight.Add(1)
	go func() {
		defer sm.inflight.Done()

		resp, err := submit(submitCtx, req)

		snapshot, ok := sm.finish(chatID, sessionID, resp, err)
		if ok && done != nil {
			done(snapshot)
		}
	}()

	return nil
}

// finish применяет результат отправки, если сессия всё ещё та же
func (sm *Manager) finish(chatID int64, sessionID uuid.UUID, resp *booking.Response, err error) (UserData, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	current, exists := sm.states[chatID]
	if !exists || current.Session.ID() != sessionID {
		sm.logger.Info("Discarding booking result for a closed session",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", sessionID.String()),
			zap.Bool("succeeded", err == nil))
		return UserData{}, false
	}

	if finishErr := current.Session.FinishSubmit(resp, err); finishErr != nil {
		sm.logger.Error("Failed to apply booking result",
			zap.Int64("chat_id", chatID),
			zap.Error(finishErr))
		return UserData{}, false
	}
	current.UpdatedAt = sm.now()
	current.Sync()

	return current.Snapshot(), true
}

// Wait ждёт завершения всех фоновых отправок
func (sm *Manager) Wait() {
	sm.inflight.Wait()
}

// EvictIdle удаляет мастера, которые не трогали дольше ttl.
// Мастер с идущей отправкой не удаляется. Возвращает число удалённых.
func (sm *Manager) EvictIdle(ttl time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	deadline := sm.now().Add(-ttl)
	evicted := 0
	for chatID, data := range sm.states {
		if data.UpdatedAt.Before(deadline) && !data.Session.Submitting() {
			delete(sm.states, chatID)
			evicted++
		}
	}
	return evicted
}

// Len количество открытых мастеров
func (sm *Manager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return len(sm.states)
}
