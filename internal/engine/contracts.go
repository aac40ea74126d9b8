package engine

import (
	"context"
	"time"
)

//go:generate mockgen -source=contracts.go -destination=mock_contracts.go -package=engine

// Dispatcher — порт к реальному вызову рефреша (ad server).
// Оба метода fire-and-forget с точки зрения движка: completion-хендлы
// задач резолвятся в момент постановки вызова, не по ответу сети.
type Dispatcher interface {
	// DispatchAll refreshes every known slot (argument-less sweep).
	DispatchAll(ctx context.Context) error
	// DispatchBatch refreshes the given slots as one batch, in order.
	DispatchBatch(ctx context.Context, slots []string) error
}

// CoordinatorPort — срез движка, который видит транспорт.
type CoordinatorPort interface {
	RequestRefresh(slot string) *Completion
	RequestRefreshEvery(slot string, every time.Duration) error
	CancelInterval(slot string) error

	SetBufferInterval(d time.Duration)
	ClearBufferInterval()
	SetBufferBarrier(count int, oneShot bool)
	ClearBufferBarrier()
	SetRefreshInterval(d time.Duration)
	ClearRefreshInterval()
	SetPriority(m Mechanism, weight float64) error

	Status() Status
}
