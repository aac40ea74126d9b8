package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dayanaadylkhanova/slot-refresh/internal/entity"
	"go.uber.org/zap"
)

// JournalWriter — порт для фиксации выполненных отправок.
type JournalWriter interface {
	RecordDispatch(ctx context.Context, rec entity.DispatchRecord) error
}

// Webhook реализует engine.Dispatcher: пробрасывает батчи POST-ом на
// ad server и пишет каждую отправку в журнал. Ошибки доставки и журнала
// остаются заботой адаптера — движок их не видит.
type Webhook struct {
	log     *zap.Logger
	client  *http.Client
	url     string
	journal JournalWriter
}

func NewWebhook(log *zap.Logger, url string, journal JournalWriter) *Webhook {
	return &Webhook{
		log:     log,
		client:  &http.Client{Timeout: 10 * time.Second},
		url:     url,
		journal: journal,
	}
}

type refreshPayload struct {
	All   bool     `json:"all,omitempty"`
	Slots []string `json:"slots,omitempty"`
}

// DispatchAll implements engine.Dispatcher
func (w *Webhook) DispatchAll(ctx context.Context) error {
	w.record(ctx, entity.DispatchRecord{Scope: entity.ScopeAll, TS: time.Now().UTC()})
	return w.post(ctx, refreshPayload{All: true})
}

// DispatchBatch implements engine.Dispatcher
func (w *Webhook) DispatchBatch(ctx context.Context, slots []string) error {
	w.record(ctx, entity.DispatchRecord{Scope: entity.ScopeBatch, Slots: slots, TS: time.Now().UTC()})
	return w.post(ctx, refreshPayload{Slots: slots})
}

func (w *Webhook) post(ctx context.Context, p refreshPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("ad server returned %s", resp.Status)
	}
	return nil
}

func (w *Webhook) record(ctx context.Context, rec entity.DispatchRecord) {
	if w.journal == nil {
		return
	}
	if err := w.journal.RecordDispatch(ctx, rec); err != nil {
		w.log.Warn("journal write failed", zap.String("scope", rec.Scope), zap.Error(err))
	}
}
