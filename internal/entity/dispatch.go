package entity

import "time"

// DispatchRecord — одна выполненная отправка: sweep ("all") или батч.
type DispatchRecord struct {
	Scope string    `json:"scope"` // "all" | "batch"
	Slots []string  `json:"slots,omitempty"`
	TS    time.Time `json:"ts"`
}

const (
	ScopeAll   = "all"
	ScopeBatch = "batch"
)

type RefreshRequest struct {
	Every any `json:"every,omitempty"` // строка ("30s") или число миллисекунд
}

type ConfigValueRequest struct {
	Value any `json:"value"`
}

type BarrierRequest struct {
	Count   int   `json:"count"`
	OneShot *bool `json:"oneShot,omitempty"` // default true
}

type PriorityRequest struct {
	Weight *float64 `json:"weight"`
}

type DispatchLogRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type DispatchLogResponse struct {
	Dispatches []DispatchRecord `json:"dispatches"`
}
