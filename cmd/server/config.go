package main

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"Starter Kit"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type errorLogConfig struct {
	Key            string `env:"ERROR_LOG_KEY" envDefault:"errors:log"`
	Max            int64  `env:"ERROR_LOG_MAX" envDefault:"1000"`
	MemoryCapacity int    `env:"ERROR_LOG_MEMORY" envDefault:"100"`
}
