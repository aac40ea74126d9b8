package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dayanaadylkhanova/slot-refresh/pkg/duration"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	AdServerURL string
	LogLevel    string

	// Предустановки механизмов; нулевые значения — механизм не ставится.
	BufferInterval  time.Duration
	BufferBarrier   int
	BarrierOneShot  bool
	RefreshInterval time.Duration

	MaxCPU       int
	ShutdownWait time.Duration
}

func Parse() (*Config, error) {
	var errs []error
	c := &Config{}
	c.ListenAddr = getenv("LISTEN_ADDR", ":3000")
	c.DatabaseURL = getenv("DATABASE_URL", "")
	c.AdServerURL = getenv("AD_SERVER_URL", "")
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.BufferInterval = optionalInterval("BUFFER_INTERVAL", &errs)
	c.BufferBarrier = mustInt(getenv("BUFFER_BARRIER", "0"))
	c.BarrierOneShot = getenv("BARRIER_ONE_SHOT", "true") != "false"
	c.RefreshInterval = optionalInterval("REFRESH_INTERVAL", &errs)
	c.MaxCPU = mustInt(getenv("MAX_CPU", "0"))
	c.ShutdownWait = mustDuration(getenv("SHUTDOWN_WAIT", "5s"))
	if c.DatabaseURL == "" {
		errs = append(errs, fmt.Errorf("DATABASE_URL is required"))
	}
	if c.AdServerURL == "" {
		errs = append(errs, fmt.Errorf("AD_SERVER_URL is required"))
	}
	if c.BufferBarrier < 0 {
		errs = append(errs, fmt.Errorf("BUFFER_BARRIER must be >= 0"))
	}
	if len(errs) > 0 {
		return nil, joinErrs(errs)
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func mustInt(s string) int { n, _ := strconv.Atoi(s); return n }
func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	if d <= 0 {
		return time.Second
	}
	return d
}

// optionalInterval разбирает интервал в формате движка ("500", "2s", "5min").
func optionalInterval(k string, errs *[]error) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return 0
	}
	d, err := duration.Parse(v)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: bad interval %q", k, v))
		return 0
	}
	return d
}

func joinErrs(errs []error) error {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Error()
	}
	return fmt.Errorf(msg)
}
