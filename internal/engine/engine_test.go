package engine

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

// helper: wait with timeout for a signal
func waitCh[T any](t *testing.T, ch <-chan T, d time.Duration) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(d):
		t.Fatalf("timeout waiting for channel")
		return *new(T)
	}
}

func assertResolved(t *testing.T, c *Completion) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(300 * time.Millisecond):
		t.Fatalf("completion not resolved")
	}
}

func assertPending(t *testing.T, c *Completion) {
	t.Helper()
	select {
	case <-c.Done():
		t.Fatalf("completion resolved too early")
	default:
	}
}

func TestEngine_NoMechanism_DispatchesImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	batches := make(chan []string, 2)
	gomock.InOrder(
		mockD.EXPECT().DispatchBatch(gomock.Any(), []string{"a"}).
			DoAndReturn(func(_ context.Context, slots []string) error {
				batches <- slots
				return nil
			}),
		mockD.EXPECT().DispatchBatch(gomock.Any(), []string{"b"}).
			DoAndReturn(func(_ context.Context, slots []string) error {
				batches <- slots
				return nil
			}),
	)

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	ha := e.RequestRefresh("a")
	assertResolved(t, ha)
	hb := e.RequestRefresh("b")
	assertResolved(t, hb)

	first := waitCh(t, batches, 300*time.Millisecond)
	second := waitCh(t, batches, 300*time.Millisecond)
	if len(first) != 1 || first[0] != "a" || len(second) != 1 || second[0] != "b" {
		t.Fatalf("expected single-slot batches a then b, got %v then %v", first, second)
	}
}

func TestEngine_Barrier_OneShot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	batches := make(chan []string, 2)
	mockD.EXPECT().DispatchBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, slots []string) error {
			batches <- slots
			return nil
		}).
		Times(2) // barrier flush, then the post-uninstall immediate dispatch

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	e.SetBufferBarrier(3, true)

	ha := e.RequestRefresh("a")
	hb := e.RequestRefresh("b")
	assertPending(t, ha)
	assertPending(t, hb)

	hc := e.RequestRefresh("c")
	assertResolved(t, ha)
	assertResolved(t, hb)
	assertResolved(t, hc)

	flush := waitCh(t, batches, 300*time.Millisecond)
	if len(flush) != 3 || flush[0] != "a" || flush[1] != "b" || flush[2] != "c" {
		t.Fatalf("expected batch [a b c], got %v", flush)
	}

	// one-shot: барьер снялся, четвёртая заявка уходит сразу
	if has, _ := e.Has(MechanismBarrier); has {
		t.Fatalf("barrier still installed after one-shot trigger")
	}
	hd := e.RequestRefresh("d")
	assertResolved(t, hd)
	single := waitCh(t, batches, 300*time.Millisecond)
	if len(single) != 1 || single[0] != "d" {
		t.Fatalf("expected immediate batch [d], got %v", single)
	}
}

func TestEngine_Barrier_Persistent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	batches := make(chan []string, 2)
	mockD.EXPECT().DispatchBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, slots []string) error {
			batches <- slots
			return nil
		}).
		Times(2)

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	e.SetBufferBarrier(2, false)
	for _, s := range []string{"a", "b", "c", "d"} {
		e.RequestRefresh(s)
	}

	first := waitCh(t, batches, 300*time.Millisecond)
	second := waitCh(t, batches, 300*time.Millisecond)
	if len(first) != 2 || first[0] != "a" || first[1] != "b" {
		t.Fatalf("expected first flush [a b], got %v", first)
	}
	if len(second) != 2 || second[0] != "c" || second[1] != "d" {
		t.Fatalf("expected second flush [c d], got %v", second)
	}
	if has, _ := e.Has(MechanismBarrier); !has {
		t.Fatalf("persistent barrier must stay installed")
	}
}

func TestEngine_BufferInterval_FlushesBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	batches := make(chan []string, 1)
	mockD.EXPECT().DispatchBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, slots []string) error {
			batches <- slots
			return nil
		}).
		Times(1)

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	e.SetBufferInterval(60 * time.Millisecond)
	ha := e.RequestRefresh("a")
	hb := e.RequestRefresh("b")
	assertPending(t, ha)
	assertPending(t, hb)

	flush := waitCh(t, batches, 500*time.Millisecond)
	if len(flush) != 2 || flush[0] != "a" || flush[1] != "b" {
		t.Fatalf("expected one batch [a b], got %v", flush)
	}
	assertResolved(t, ha)
	assertResolved(t, hb)

	if n := e.Status().Buffered; n != 0 {
		t.Fatalf("buffer must be empty after flush, got %d", n)
	}
	// пустой буфер — тики не порождают отправок (Times(1) выше это ловит)
	time.Sleep(150 * time.Millisecond)
}

func TestEngine_Priority_TiesEnableAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := New(zap.NewNop(), NewMockDispatcher(ctrl))
	defer e.Close()

	e.SetBufferBarrier(5, true)
	e.SetRefreshInterval(time.Hour)

	for _, m := range []Mechanism{MechanismBarrier, MechanismRefresh} {
		if on, _ := e.IsEnabled(m); !on {
			t.Fatalf("%s must be enabled under equal weights", m)
		}
	}
	if on, _ := e.IsEnabled(MechanismInterval); on {
		t.Fatalf("uninstalled interval mechanism must stay disabled")
	}
	if !e.IsBuffering() {
		t.Fatalf("enabled barrier implies buffering")
	}
}

func TestEngine_Priority_WinnerDisablesOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	batches := make(chan []string, 1)
	mockD.EXPECT().DispatchBatch(gomock.Any(), []string{"x"}).
		DoAndReturn(func(_ context.Context, slots []string) error {
			batches <- slots
			return nil
		}).
		Times(1)

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	e.SetBufferBarrier(5, true)
	e.SetRefreshInterval(time.Hour)

	if err := e.SetPriority(MechanismRefresh, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if on, _ := e.IsEnabled(MechanismBarrier); on {
		t.Fatalf("barrier must be disabled by higher refresh priority")
	}
	if on, _ := e.IsEnabled(MechanismRefresh); !on {
		t.Fatalf("refresh must stay enabled as the winner")
	}

	// барьер выключен — заявка уходит сразу, минуя буфер
	h := e.RequestRefresh("x")
	assertResolved(t, h)
	waitCh(t, batches, 300*time.Millisecond)

	// перевес обратно: барьер побеждает, refresh гаснет
	if err := e.SetPriority(MechanismBarrier, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if on, _ := e.IsEnabled(MechanismRefresh); on {
		t.Fatalf("refresh must be disabled once barrier outweighs it")
	}
	if on, _ := e.IsEnabled(MechanismBarrier); !on {
		t.Fatalf("barrier must be enabled as the new winner")
	}
}

func TestEngine_RefreshSweep_PreservesBarrierCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	sweeps := make(chan struct{}, 8)
	batches := make(chan []string, 1)
	mockD.EXPECT().DispatchAll(gomock.Any()).
		DoAndReturn(func(_ context.Context) error {
			sweeps <- struct{}{}
			return nil
		}).
		MinTimes(1)
	mockD.EXPECT().DispatchBatch(gomock.Any(), []string{"c"}).
		DoAndReturn(func(_ context.Context, slots []string) error {
			batches <- slots
			return nil
		}).
		Times(1)

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	e.SetBufferBarrier(3, true)
	e.SetRefreshInterval(30 * time.Millisecond)

	ha := e.RequestRefresh("a")
	hb := e.RequestRefresh("b")

	// sweep накрыл все слоты: задачи из буфера считаются отправленными
	waitCh(t, sweeps, 500*time.Millisecond)
	assertResolved(t, ha)
	assertResolved(t, hb)
	e.ClearRefreshInterval()

	// длина буфера сохранена nil-ами — барьер продолжает счёт
	if n := e.Status().Buffered; n != 2 {
		t.Fatalf("buffer length must survive the sweep, got %d", n)
	}

	hc := e.RequestRefresh("c")
	assertResolved(t, hc)
	flush := waitCh(t, batches, 300*time.Millisecond)
	if len(flush) != 1 || flush[0] != "c" {
		t.Fatalf("expected barrier flush of [c] only, got %v", flush)
	}
	if has, _ := e.Has(MechanismBarrier); has {
		t.Fatalf("one-shot barrier must uninstall after the flush")
	}
}

func TestEngine_ClearRefreshInterval_StopsSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	var calls atomic.Int64
	first := make(chan struct{}, 1)
	mockD.EXPECT().DispatchAll(gomock.Any()).
		DoAndReturn(func(_ context.Context) error {
			if calls.Add(1) == 1 {
				first <- struct{}{}
			}
			return nil
		}).
		AnyTimes()

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	e.SetRefreshInterval(15 * time.Millisecond)
	waitCh(t, first, 500*time.Millisecond)
	e.ClearRefreshInterval()

	// даём хвостовому тику (если он был в гонке с clear) осесть
	time.Sleep(30 * time.Millisecond)
	before := calls.Load()
	time.Sleep(100 * time.Millisecond)
	if after := calls.Load(); after != before {
		t.Fatalf("sweep fired after clear: %d -> %d", before, after)
	}
	if on, _ := e.IsEnabled(MechanismRefresh); on {
		t.Fatalf("refresh must be disabled after clear")
	}
}

func TestEngine_SlotInterval_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	var calls atomic.Int64
	ticks := make(chan []string, 16)
	mockD.EXPECT().DispatchBatch(gomock.Any(), []string{"s1"}).
		DoAndReturn(func(_ context.Context, slots []string) error {
			calls.Add(1)
			select {
			case ticks <- slots:
			default:
			}
			return nil
		}).
		AnyTimes()

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	if err := e.RequestRefreshEvery("s1", 15*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitCh(t, ticks, 500*time.Millisecond)
	waitCh(t, ticks, 500*time.Millisecond)

	if err := e.RequestRefreshEvery("s1", time.Second); !errors.Is(err, ErrDuplicateInterval) {
		t.Fatalf("expected ErrDuplicateInterval, got %v", err)
	}
	if err := e.CancelInterval("s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.CancelInterval("s1"); !errors.Is(err, ErrNoInterval) {
		t.Fatalf("expected ErrNoInterval after cancel, got %v", err)
	}
	if err := e.CancelInterval("never-registered"); !errors.Is(err, ErrNoInterval) {
		t.Fatalf("expected ErrNoInterval for unknown slot, got %v", err)
	}

	// после cancel тики не доходят до диспетчера
	time.Sleep(30 * time.Millisecond)
	before := calls.Load()
	time.Sleep(100 * time.Millisecond)
	if after := calls.Load(); after != before {
		t.Fatalf("slot interval fired after cancel: %d -> %d", before, after)
	}
}

func TestEngine_Close_StopsAllTimers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	var calls atomic.Int64
	mockD.EXPECT().DispatchBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string) error {
			calls.Add(1)
			return nil
		}).
		AnyTimes()
	mockD.EXPECT().DispatchAll(gomock.Any()).
		DoAndReturn(func(_ context.Context) error {
			calls.Add(1)
			return nil
		}).
		AnyTimes()

	e := New(zap.NewNop(), mockD)
	e.SetRefreshInterval(15 * time.Millisecond)
	if err := e.RequestRefreshEvery("s1", 15*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	e.Close()
	e.Close() // идемпотентность

	time.Sleep(30 * time.Millisecond)
	before := calls.Load()
	time.Sleep(100 * time.Millisecond)
	if after := calls.Load(); after != before {
		t.Fatalf("timers fired after Close: %d -> %d", before, after)
	}
}

func TestEngine_InvalidInputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := New(zap.NewNop(), NewMockDispatcher(ctrl))
	defer e.Close()

	if err := e.SetPriority(Mechanism(99), 1); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if err := e.SetPriority(MechanismBarrier, math.NaN()); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority for NaN, got %v", err)
	}
	if err := e.SetPriority(MechanismBarrier, math.Inf(1)); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority for Inf, got %v", err)
	}
	if _, err := e.Has(Mechanism(99)); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption from Has, got %v", err)
	}
	if _, err := e.IsEnabled(Mechanism(99)); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption from IsEnabled, got %v", err)
	}
	if _, err := ParseMechanism("bogus"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption from ParseMechanism, got %v", err)
	}
	if m, err := ParseMechanism("barrier"); err != nil || m != MechanismBarrier {
		t.Fatalf("ParseMechanism(barrier) = %v, %v", m, err)
	}
}

func TestEngine_RedundantClears_AreNoOps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockD := NewMockDispatcher(ctrl)
	batches := make(chan []string, 1)
	mockD.EXPECT().DispatchBatch(gomock.Any(), []string{"a"}).
		DoAndReturn(func(_ context.Context, slots []string) error {
			batches <- slots
			return nil
		}).
		Times(1)

	e := New(zap.NewNop(), mockD)
	defer e.Close()

	// clear без set — предупреждение и no-op, движок живой
	e.ClearBufferInterval()
	e.ClearBufferBarrier()
	e.ClearRefreshInterval()

	h := e.RequestRefresh("a")
	assertResolved(t, h)
	waitCh(t, batches, 300*time.Millisecond)
}
