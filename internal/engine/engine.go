package engine

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Триггеры отправки — только для логов и журнала.
const (
	triggerImmediate = "immediate"
	triggerBarrier   = "barrier"
	triggerInterval  = "interval"
	triggerRefresh   = "refresh"
)

type mechState struct {
	installed bool
	enabled   bool
	weight    float64
}

// Engine координирует отложенные рефреши слотов: собирает заявки в батчи
// по трём механизмам (interval/barrier/refresh) и отдаёт их диспетчеру.
// Вся мутация состояния — под одним мьютексом; сетевые вызовы уходят в
// отдельную горутину-воркер, порядок батчей сохраняется очередью.
type Engine struct {
	log  *zap.Logger
	disp Dispatcher

	mu        sync.Mutex
	mech      [mechanismCount]mechState
	buffer    *taskBuffer
	intervals *slotIntervals

	bufferInterval  time.Duration
	barrierCount    int
	barrierOneShot  bool
	refreshInterval time.Duration

	flushTimer   *repeater
	refreshTimer *repeater

	jobs       chan dispatchJob
	workerDone chan struct{}
	closed     bool
}

type dispatchJob struct {
	all     bool
	slots   []string
	trigger string
}

func New(log *zap.Logger, disp Dispatcher) *Engine {
	e := &Engine{
		log:        log,
		disp:       disp,
		buffer:     &taskBuffer{},
		intervals:  newSlotIntervals(),
		jobs:       make(chan dispatchJob, 128),
		workerDone: make(chan struct{}),
	}
	for m := Mechanism(0); m < mechanismCount; m++ {
		e.mech[m].weight = 1 // равные веса: все установленные механизмы активны
	}
	go e.worker()
	return e
}

// worker сериализует вызовы диспетчера: батчи уходят строго в порядке
// срабатывания своих триггеров.
func (e *Engine) worker() {
	defer close(e.workerDone)
	for j := range e.jobs {
		var err error
		if j.all {
			err = e.disp.DispatchAll(context.Background())
		} else {
			err = e.disp.DispatchBatch(context.Background(), j.slots)
		}
		if err != nil {
			// Ошибки доставки — забота диспетчера; движок только фиксирует.
			e.log.Warn("dispatch failed",
				zap.String("trigger", j.trigger),
				zap.Bool("all", j.all),
				zap.Error(err))
		}
	}
}

// Close останавливает все таймеры (буферный, глобальный, пер-слотовые)
// и дожидается воркера. Повторный Close — no-op.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.stopFlushTimerLocked()
	e.stopRefreshTimerLocked()
	for _, r := range e.intervals.drainAll() {
		r.cancel()
	}
	close(e.jobs)
	e.mu.Unlock()
	<-e.workerDone
}

// RequestRefresh создаёт задачу для слота и проводит её через планирование:
// либо немедленная отправка батчем из одной задачи, либо буферизация.
func (e *Engine) RequestRefresh(slot string) *Completion {
	e.mu.Lock()
	defer e.mu.Unlock()
	t := &task{slot: slot, done: newCompletion()}
	e.scheduleLocked(t)
	return t.done
}

// RequestRefreshEvery регистрирует повторяющийся интервал слота: каждый тик
// создаёт свежую задачу и проводит её через то же планирование.
func (e *Engine) RequestRefreshEvery(slot string, every time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.intervals.has(slot) {
		return ErrDuplicateInterval
	}
	if every <= 0 {
		e.log.Warn("non-positive slot interval, using 1s", zap.String("slot", slot))
		every = time.Second
	}
	r := startRepeater(every, func() { e.onSlotTick(slot) })
	_ = e.intervals.add(slot, r)
	e.log.Debug("slot interval registered", zap.String("slot", slot), zap.Duration("every", every))
	return nil
}

// CancelInterval снимает и останавливает интервал слота.
func (e *Engine) CancelInterval(slot string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, err := e.intervals.remove(slot)
	if err != nil {
		return err
	}
	r.cancel()
	e.log.Debug("slot interval cancelled", zap.String("slot", slot))
	return nil
}

func (e *Engine) onSlotTick(slot string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// Тик мог гоняться с CancelInterval/Close — перепроверяем реестр.
	if e.closed || !e.intervals.has(slot) {
		return
	}
	e.scheduleLocked(&task{slot: slot, done: newCompletion()})
}

// scheduleLocked — ядро: буферизовать или отправить сразу.
func (e *Engine) scheduleLocked(t *task) {
	if e.isBufferingLocked() {
		e.buffer.append(t)
		e.log.Debug("task buffered", zap.String("slot", t.slot), zap.Int("buffered", e.buffer.len()))
		if e.mech[MechanismBarrier].enabled && e.buffer.len() == e.barrierCount {
			e.flushLocked(triggerBarrier)
			if e.barrierOneShot {
				// one-shot: барьер самоликвидируется после первого срабатывания
				e.mech[MechanismBarrier].installed = false
				e.barrierCount = 0
				e.reprioritizeLocked()
			}
		}
		return
	}
	e.enqueueLocked(dispatchJob{slots: []string{t.slot}, trigger: triggerImmediate}, []*task{t})
}

// flushLocked отправляет содержимое буфера одним батчем и обнуляет его.
func (e *Engine) flushLocked(trigger string) {
	tasks := e.buffer.drain()
	if len(tasks) == 0 {
		return
	}
	slots := make([]string, len(tasks))
	for i, t := range tasks {
		slots[i] = t.slot
	}
	e.enqueueLocked(dispatchJob{slots: slots, trigger: trigger}, tasks)
}

// enqueueLocked ставит вызов диспетчеру и резолвит completion-хендлы:
// с точки зрения движка отправка на этом поставлена.
func (e *Engine) enqueueLocked(j dispatchJob, tasks []*task) {
	if !e.closed {
		e.jobs <- j
	}
	for _, t := range tasks {
		t.done.resolve()
	}
	e.log.Debug("batch dispatched",
		zap.String("trigger", j.trigger),
		zap.Bool("all", j.all),
		zap.Strings("slots", j.slots))
}

func (e *Engine) onFlushTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.mech[MechanismInterval].enabled {
		return
	}
	e.flushLocked(triggerInterval)
}

func (e *Engine) onRefreshTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.mech[MechanismRefresh].enabled {
		return
	}
	// Sweep накрывает все слоты; буфер затираем nil-ами, сохраняя длину,
	// чтобы параллельный барьер продолжал считать к своему порогу.
	swept := e.buffer.blank()
	e.enqueueLocked(dispatchJob{all: true, trigger: triggerRefresh}, swept)
}

// --- конфигурация механизмов ---

// SetBufferInterval устанавливает задержку сброса буфера и пересчитывает
// приоритеты; при активном механизме таймер перезапускается с новым периодом.
func (e *Engine) SetBufferInterval(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d <= 0 {
		e.log.Warn("non-positive buffer interval, using 1s", zap.Duration("value", d))
		d = time.Second
	}
	e.bufferInterval = d
	e.mech[MechanismInterval].installed = true
	e.reprioritizeLocked()
	if e.mech[MechanismInterval].enabled {
		e.startFlushTimerLocked()
	}
}

func (e *Engine) ClearBufferInterval() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mech[MechanismInterval].installed {
		e.log.Warn("clear buffer interval: nothing configured")
		return
	}
	e.mech[MechanismInterval].installed = false
	e.bufferInterval = 0
	e.reprioritizeLocked()
}

func (e *Engine) BufferInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bufferInterval
}

func (e *Engine) HasBufferInterval() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[MechanismInterval].installed
}

func (e *Engine) BufferIntervalEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[MechanismInterval].enabled
}

// SetBufferBarrier устанавливает порог буфера. oneShot=true — барьер
// снимается после первого срабатывания; false — живёт между сбросами.
func (e *Engine) SetBufferBarrier(count int, oneShot bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if count <= 0 {
		e.log.Warn("non-positive barrier count, using 1", zap.Int("value", count))
		count = 1
	}
	e.barrierCount = count
	e.barrierOneShot = oneShot
	e.mech[MechanismBarrier].installed = true
	e.reprioritizeLocked()
}

func (e *Engine) ClearBufferBarrier() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mech[MechanismBarrier].installed {
		e.log.Warn("clear buffer barrier: nothing configured")
		return
	}
	e.mech[MechanismBarrier].installed = false
	e.barrierCount = 0
	e.reprioritizeLocked()
}

func (e *Engine) BufferBarrier() (count int, oneShot bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.barrierCount, e.barrierOneShot
}

func (e *Engine) HasBufferBarrier() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[MechanismBarrier].installed
}

func (e *Engine) BufferBarrierEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[MechanismBarrier].enabled
}

// SetRefreshInterval устанавливает период глобального sweep и сразу
// (пере)запускает его таймер, если механизм активен по приоритетам.
func (e *Engine) SetRefreshInterval(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d <= 0 {
		e.log.Warn("non-positive refresh interval, using 1s", zap.Duration("value", d))
		d = time.Second
	}
	e.refreshInterval = d
	e.mech[MechanismRefresh].installed = true
	e.reprioritizeLocked()
	if e.mech[MechanismRefresh].enabled {
		e.startRefreshTimerLocked()
	}
}

func (e *Engine) ClearRefreshInterval() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mech[MechanismRefresh].installed {
		e.log.Warn("clear refresh interval: nothing configured")
		return
	}
	e.mech[MechanismRefresh].installed = false
	e.refreshInterval = 0
	e.reprioritizeLocked()
}

func (e *Engine) RefreshInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refreshInterval
}

func (e *Engine) HasRefreshInterval() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[MechanismRefresh].installed
}

func (e *Engine) RefreshIntervalEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[MechanismRefresh].enabled
}

// SetPriority задаёт вес механизма и пересчитывает активный набор.
func (e *Engine) SetPriority(m Mechanism, weight float64) error {
	if !m.valid() {
		return ErrInvalidOption
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ErrInvalidPriority
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mech[m].weight = weight
	e.reprioritizeLocked()
	return nil
}

func (e *Engine) Priority(m Mechanism) (float64, error) {
	if !m.valid() {
		return 0, ErrInvalidOption
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[m].weight, nil
}

// Has — механизм сконфигурирован; IsEnabled — активен по приоритетам.
func (e *Engine) Has(m Mechanism) (bool, error) {
	if !m.valid() {
		return false, ErrInvalidOption
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[m].installed, nil
}

func (e *Engine) IsEnabled(m Mechanism) (bool, error) {
	if !m.valid() {
		return false, ErrInvalidOption
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mech[m].enabled, nil
}

// IsBuffering — заявки сейчас копятся, а не уходят сразу.
func (e *Engine) IsBuffering() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isBufferingLocked()
}

func (e *Engine) isBufferingLocked() bool {
	return e.mech[MechanismInterval].enabled || e.mech[MechanismBarrier].enabled
}

// reprioritizeLocked применяет selectEnabled и отрабатывает переходы
// enable/disable через таблицу механизмов.
func (e *Engine) reprioritizeLocked() {
	var installed [mechanismCount]bool
	var weights [mechanismCount]float64
	for m := Mechanism(0); m < mechanismCount; m++ {
		installed[m] = e.mech[m].installed
		weights[m] = e.mech[m].weight
	}
	want := selectEnabled(installed, weights)
	for m := Mechanism(0); m < mechanismCount; m++ {
		if want[m] == e.mech[m].enabled {
			continue
		}
		e.mech[m].enabled = want[m]
		if want[m] {
			mechTable[m].enable(e)
		} else {
			mechTable[m].disable(e)
		}
		e.log.Debug("mechanism toggled", zap.Stringer("mechanism", m), zap.Bool("enabled", want[m]))
	}
}

// --- таймеры механизмов ---

func (e *Engine) startFlushTimerLocked() {
	if e.flushTimer != nil {
		e.flushTimer.cancel()
	}
	e.flushTimer = startRepeater(e.bufferInterval, e.onFlushTick)
}

func (e *Engine) stopFlushTimerLocked() {
	if e.flushTimer != nil {
		e.flushTimer.cancel()
		e.flushTimer = nil
	}
}

func (e *Engine) startRefreshTimerLocked() {
	if e.refreshTimer != nil {
		e.refreshTimer.cancel()
	}
	e.refreshTimer = startRepeater(e.refreshInterval, e.onRefreshTick)
}

func (e *Engine) stopRefreshTimerLocked() {
	if e.refreshTimer != nil {
		e.refreshTimer.cancel()
		e.refreshTimer = nil
	}
}

// --- снапшот состояния для транспорта и тестов ---

type MechanismStatus struct {
	Installed bool    `json:"installed"`
	Enabled   bool    `json:"enabled"`
	Weight    float64 `json:"weight"`
}

type Status struct {
	Mechanisms map[string]MechanismStatus `json:"mechanisms"`
	Buffering  bool                       `json:"buffering"`
	Buffered   int                        `json:"buffered"`
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := Status{
		Mechanisms: make(map[string]MechanismStatus, mechanismCount),
		Buffering:  e.isBufferingLocked(),
		Buffered:   e.buffer.len(),
	}
	for m := Mechanism(0); m < mechanismCount; m++ {
		st.Mechanisms[m.String()] = MechanismStatus{
			Installed: e.mech[m].installed,
			Enabled:   e.mech[m].enabled,
			Weight:    e.mech[m].weight,
		}
	}
	return st
}
