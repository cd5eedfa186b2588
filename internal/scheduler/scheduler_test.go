package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	calls atomic.Int32
	err   error
}

func (f *fakeNotifier) NotifyStalePending(ctx context.Context) (int, error) {
	f.calls.Add(1)
	return 2, f.err
}

type fakeRefresher struct {
	calls atomic.Int32
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.calls.Add(1)
	return nil
}

func newTestLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	return logger, buf
}

func TestScheduler_RunExecutesJobs(t *testing.T) {
	// Подготовка
	notifier := &fakeNotifier{}
	refresher := &fakeRefresher{}
	logger, _ := newTestLogger()
	s := New(notifier, refresher, logger, "@every 1s", "@every 1s")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// Действие
	go func() { done <- s.Run(ctx) }()

	// Проверки
	assert.Eventually(t, func() bool {
		return notifier.calls.Load() > 0 && refresher.calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	logger, _ := newTestLogger()
	s := New(&fakeNotifier{}, &fakeRefresher{}, logger, "not a schedule", "@every 1m")

	err := s.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sweep schedule")
}

func TestScheduler_SweepLogsError(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("db down")}
	logger, buf := newTestLogger()
	s := New(notifier, &fakeRefresher{}, logger, "@every 1m", "@every 1m")

	s.sweep(context.Background())

	assert.Equal(t, int32(1), notifier.calls.Load())
	assert.Contains(t, buf.String(), "Stale incident sweep failed")
}
