package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	LogFile   string        `yaml:"log_file" env:"LOG_FILE" env-default:""`
	Address   string        `yaml:"address" env:"ADDRESS" env-default:":8080"`
	Timeout   time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"5s"`
	DBAddress string        `yaml:"db_address" env:"DB_ADDRESS" env-required:"true"`
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
