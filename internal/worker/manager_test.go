package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingWorker struct {
	*BaseWorker
	started chan struct{}
	ignore  bool
}

func newBlockingWorker(name string, ignoreStop bool) *blockingWorker {
	return &blockingWorker{
		BaseWorker: NewBaseWorker(name, "group", zap.NewNop()),
		started:    make(chan struct{}),
		ignore:     ignoreStop,
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	close(w.started)
	if w.ignore {
		time.Sleep(time.Second)
		return nil
	}
	<-w.StopChan()
	return nil
}

func TestWorkerManager_StartRequiresWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), time.Second)

	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StopWaitsForWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), time.Second)
	w1 := newBlockingWorker("a", false)
	w2 := newBlockingWorker("b", false)
	m.Register(w1)
	m.Register(w2)

	require.NoError(t, m.Start(context.Background()))
	<-w1.started
	<-w2.started

	require.NoError(t, m.Stop())
	assert.True(t, w1.IsStopped())
	assert.True(t, w2.IsStopped())
}

func TestWorkerManager_StopTimesOut(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), 50*time.Millisecond)
	w := newBlockingWorker("slow", true)
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	<-w.started

	assert.Error(t, m.Stop())
}

func TestBaseWorker_PauseInterruptedByStop(t *testing.T) {
	w := NewBaseWorker("pause", "group", zap.NewNop())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	assert.False(t, w.Pause(context.Background(), time.Minute))
}
