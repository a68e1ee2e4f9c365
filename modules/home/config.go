package home

import "time"

// Config holds the home page settings, read from HOME_* variables.
type Config struct {
	Delay          time.Duration `env:"HOME_DELAY" envDefault:"1s"`                                            // Delay before the simulated async failure.
	NetworkURL     string        `env:"HOME_NETWORK_URL" envDefault:"https://nonexistent-api.example.com/data"` // NetworkURL is fetched by the network demo.
	HTTPTimeout    time.Duration `env:"HOME_HTTP_TIMEOUT" envDefault:"10s"`                                    // HTTPTimeout bounds the network demo request.
	NotifyFailures bool          `env:"HOME_NOTIFY_FAILURES" envDefault:"false"`                               // NotifyFailures shows an error toast when a demo fails.
	ToastDuration  time.Duration `env:"HOME_TOAST_DURATION" envDefault:"5s"`                                   // ToastDuration is how long a toast stays visible.
	ToastLimit     int           `env:"HOME_TOAST_LIMIT" envDefault:"0"`                                       // ToastLimit caps visible toasts, 0 for no cap.
	QueueSize      int           `env:"HOME_QUEUE_SIZE" envDefault:"16"`                                       // QueueSize is the number of demo runs that may wait.
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Delay:         time.Second,
		NetworkURL:    "https://nonexistent-api.example.com/data",
		HTTPTimeout:   10 * time.Second,
		ToastDuration: 5 * time.Second,
		QueueSize:     16,
	}
}
