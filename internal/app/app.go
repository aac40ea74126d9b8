package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/dayanaadylkhanova/slot-refresh/internal/adapter/dispatch"
	"github.com/dayanaadylkhanova/slot-refresh/internal/adapter/store/postgres"
	http_server "github.com/dayanaadylkhanova/slot-refresh/internal/adapter/transport/http"
	"github.com/dayanaadylkhanova/slot-refresh/internal/engine"
	"github.com/dayanaadylkhanova/slot-refresh/pkg/config"
	"go.uber.org/zap"
)

type AppInfo struct {
	Name      string
	BuildTime string
	Commit    string
	Release   string
}

type App struct {
	cfg  config.Config
	info *AppInfo
	log  *zap.Logger

	store  *postgres.Store
	eng    *engine.Engine
	server *http_server.Server
}

func New(cfg config.Config, info *AppInfo, log *zap.Logger) (*App, error) {
	// 1) Журнал отправок (Postgres)
	st, err := postgres.New(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if err := st.Init(context.Background()); err != nil {
		return nil, err
	}

	// 2) Диспетчер (webhook на ad server) и движок
	disp := dispatch.NewWebhook(log, cfg.AdServerURL, st)
	eng := engine.New(log, disp)

	// 3) Предустановки механизмов из конфига
	if cfg.BufferInterval > 0 {
		eng.SetBufferInterval(cfg.BufferInterval)
	}
	if cfg.BufferBarrier > 0 {
		eng.SetBufferBarrier(cfg.BufferBarrier, cfg.BarrierOneShot)
	}
	if cfg.RefreshInterval > 0 {
		eng.SetRefreshInterval(cfg.RefreshInterval)
	}

	// 4) HTTP (ports: CoordinatorPort + JournalReader)
	srv := http_server.NewServer(log, cfg.ListenAddr, eng, st)

	return &App{
		cfg:    cfg,
		info:   info,
		log:    log,
		store:  st,
		eng:    eng,
		server: srv,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- a.server.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		// graceful
		runErr = ErrAppShutdownNormal
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = ErrAppStartup
		} else {
			runErr = ErrAppShutdownNormal
		}
	}

	// Graceful shutdown: транспорт, затем все таймеры движка, затем журнал
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.cfg.ShutdownWait)
	defer cancelShutdown()
	_ = a.server.Shutdown(shutdownCtx)
	a.eng.Close()
	a.store.Close()

	return runErr
}
