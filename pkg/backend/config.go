package backend

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Driver names accepted by BACKEND_DRIVER.
const (
	DriverNone     = "none"
	DriverPostgres = "postgres"
	DriverREST     = "rest"
)

type Config struct {
	Driver  string        `env:"BACKEND_DRIVER" envDefault:"none"`
	URL     string        `env:"BACKEND_URL"`
	AnonKey string        `env:"BACKEND_ANON_KEY"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

// NewFromConfig picks the driver named by cfg. The pool is only used by the
// postgres driver and may be nil otherwise.
func NewFromConfig(cfg Config, pool *pgxpool.Pool, log *slog.Logger) (*Client, error) {
	var driver Driver
	switch cfg.Driver {
	case "", DriverNone:
	case DriverPostgres:
		if pool == nil {
			return nil, ErrMissingPool
		}
		driver = NewPostgresDriver(pool)
	case DriverREST:
		d, err := NewRESTDriver(cfg.URL, cfg.AnonKey, WithTimeout(cfg.Timeout))
		if err != nil {
			return nil, err
		}
		driver = d
	default:
		return nil, ErrUnknownDriver
	}
	return New(driver, WithLogger(log)), nil
}
