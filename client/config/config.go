package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	BackendAddress string        `yaml:"backend_address" env:"BACKEND_ADDRESS" env-default:"http://localhost:8080"`
	BackendTimeout time.Duration `yaml:"backend_timeout" env:"BACKEND_TIMEOUT" env-default:"5s"`
	DailyTarget    float64       `yaml:"daily_target" env:"DAILY_TARGET" env-default:"50"`
}

func MustLoad(configPath string) Config {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
		return cfg
	}

	// try the file, fall back to env when it is absent
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatalf("cannot read env: %s", err)
			}
			return cfg
		}
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}

	return cfg
}
