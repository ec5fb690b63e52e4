package state

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

const chatID int64 = 42

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func clock() time.Time {
	return time.Date(2026, time.October, 19, 14, 0, 0, 0, time.UTC)
}

// newManagerAtDetails открывает мастер и доводит его до готовой к отправке формы
func newManagerAtDetails(t *testing.T) *Manager {
	t.Helper()
	sm := NewManager(zaptest.NewLogger(t), booking.WithClock(clock))
	sm.Open(chatID)

	err := sm.Do(chatID, func(d *UserData) error {
		for _, e := range []booking.Event{
			booking.SelectConsultation{Kind: booking.KindDiscovery},
			booking.Continue{},
			booking.SelectDate{Date: booking.NewDate(2026, time.November, 10)},
			booking.SelectSlot{Slot: "10:00 AM"},
			booking.Continue{},
			booking.EditContact{Field: booking.FieldName, Value: "Ada"},
			booking.EditContact{Field: booking.FieldEmail, Value: "ada@example.com"},
			booking.EditContact{Field: booking.FieldCompany, Value: "Acme"},
		} {
			if err := d.Session.Apply(e); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return sm
}

func TestManager_OpenCloseDo(t *testing.T) {
	sm := NewManager(nil)

	assert.ErrorIs(t, sm.Do(chatID, func(*UserData) error { return nil }), ErrNoSession)
	assert.False(t, sm.Close(chatID))

	sm.Open(chatID)
	assert.True(t, sm.Exists(chatID))
	assert.Equal(t, 1, sm.Len())

	require.NoError(t, sm.Do(chatID, func(d *UserData) error {
		d.State = StateEnterName
		return nil
	}))
	require.NoError(t, sm.Do(chatID, func(d *UserData) error {
		assert.Equal(t, StateEnterName, d.State)
		return nil
	}))

	assert.True(t, sm.Close(chatID))
	assert.False(t, sm.Exists(chatID))
}

func TestManager_SubmitSuccess(t *testing.T) {
	sm := newManagerAtDetails(t)

	var calls int32
	submit := func(ctx context.Context, req *booking.Request) (*booking.Response, error) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "10:00 AM", req.Time)
		return &booking.Response{Success: true, Message: "booked"}, nil
	}

	var started bool
	results := make(chan UserData, 1)
	require.NoError(t, sm.Submit(context.Background(), chatID, submit, func(d UserData) {
		started = true
		assert.True(t, d.Session.Submitting())
	}, func(d UserData) {
		results <- d
	}))
	assert.True(t, started)
	sm.Wait()

	got := <-results
	assert.Equal(t, booking.StepConfirmed, got.Session.Step())
	assert.Equal(t, "booked", got.Session.Confirmation().Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestManager_SubmitSurvivesShutdown(t *testing.T) {
	sm := newManagerAtDetails(t)

	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	submit := func(ctx context.Context, _ *booking.Request) (*booking.Response, error) {
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &booking.Response{Success: true, Message: "booked"}, nil
	}

	results := make(chan UserData, 1)
	require.NoError(t, sm.Submit(ctx, chatID, submit, nil, func(d UserData) {
		results <- d
	}))

	// остановка бота посреди отправки
	cancel()
	close(release)
	sm.Wait()

	got := <-results
	assert.Equal(t, booking.StepConfirmed, got.Session.Step())
	assert.Equal(t, booking.SubmissionSucceeded, got.Session.Submission().Status)
}

func TestManager_SubmitWhileInFlight(t *testing.T) {
	sm := newManagerAtDetails(t)

	release := make(chan struct{})
	var calls int32
	submit := func(ctx context.Context, req *booking.Request) (*booking.Response, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return nil, &testUserError{msg: "Invalid email format"}
	}

	done := make(chan UserData, 1)
	require.NoError(t, sm.Submit(context.Background(), chatID, submit, nil, func(d UserData) { done <- d }))

	err := sm.Submit(context.Background(), chatID, submit, nil, func(UserData) {
		t.Error("second submission must not complete")
	})
	require.ErrorIs(t, err, booking.ErrSubmitInFlight)

	close(release)
	sm.Wait()

	got := <-done
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, booking.StepEnterDetails, got.Session.Step())
	assert.Equal(t, booking.SubmissionState{Status: booking.SubmissionFailed, Error: "Invalid email format"}, got.Session.Submission())
}

func TestManager_ResultDiscardedAfterReset(t *testing.T) {
	sm := newManagerAtDetails(t)

	release := make(chan struct{})
	submit := func(ctx context.Context, req *booking.Request) (*booking.Response, error) {
		<-release
		return &booking.Response{Success: true}, nil
	}

	require.NoError(t, sm.Submit(context.Background(), chatID, submit, nil, func(UserData) {
		t.Error("result for a reset session must be discarded")
	}))

	require.NoError(t, sm.Do(chatID, func(d *UserData) error {
		d.Session.Reset()
		return nil
	}))

	close(release)
	sm.Wait()

	require.NoError(t, sm.Do(chatID, func(d *UserData) error {
		assert.Equal(t, booking.StepSelectType, d.Session.Step())
		assert.Equal(t, booking.SubmissionIdle, d.Session.Submission().Status)
		return nil
	}))
}

func TestManager_ResultDiscardedAfterClose(t *testing.T) {
	sm := newManagerAtDetails(t)

	release := make(chan struct{})
	submit := func(ctx context.Context, req *booking.Request) (*booking.Response, error) {
		<-release
		return &booking.Response{Success: true}, nil
	}
	require.NoError(t, sm.Submit(context.Background(), chatID, submit, nil, func(UserData) {
		t.Error("result for a closed session must be discarded")
	}))

	sm.Close(chatID)
	sm.Open(chatID)

	close(release)
	sm.Wait()

	require.NoError(t, sm.Do(chatID, func(d *UserData) error {
		assert.Equal(t, booking.StepSelectType, d.Session.Step())
		return nil
	}))
}

func TestManager_SubmitValidationFailure(t *testing.T) {
	sm := newManagerAtDetails(t)
	require.NoError(t, sm.Do(chatID, func(d *UserData) error {
		return d.Session.Apply(booking.EditContact{Field: booking.FieldEmail, Value: "broken"})
	}))

	err := sm.Submit(context.Background(), chatID, func(context.Context, *booking.Request) (*booking.Response, error) {
		t.Error("invalid form must not be sent")
		return nil, nil
	}, nil, nil)
	require.ErrorIs(t, err, booking.ErrInvalidEmail)
	sm.Wait()
}

func TestManager_EvictIdle(t *testing.T) {
	sm := NewManager(nil)
	now := clock()
	sm.now = func() time.Time { return now }

	sm.Open(1)
	sm.Open(2)

	now = now.Add(90 * time.Minute)
	require.NoError(t, sm.Do(2, func(*UserData) error { return nil }))

	now = now.Add(time.Hour)
	assert.Equal(t, 1, sm.EvictIdle(2*time.Hour))
	assert.False(t, sm.Exists(1))
	assert.True(t, sm.Exists(2))
}

func TestManager_ConcurrentAccess(t *testing.T) {
	sm := NewManager(nil, booking.WithClock(clock))

	var wg sync.WaitGroup
	for i := int64(0); i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.Open(id)
			_ = sm.Do(id, func(d *UserData) error {
				return d.Session.Apply(booking.SelectConsultation{Kind: booking.KindStrategy})
			})
			sm.EvictIdle(time.Hour)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, sm.Len())
}

func TestUserState_Field(t *testing.T) {
	for _, f := range booking.ContactFields() {
		got, ok := StateForField(f).Field()
		require.True(t, ok)
		assert.Equal(t, f, got)
	}
	_, ok := StateNone.Field()
	assert.False(t, ok)
}

type testUserError struct{ msg string }

func (e *testUserError) Error() string       { return e.msg }
func (e *testUserError) UserMessage() string { return e.msg }
