package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"TICTACTOE_SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
}

// Game - rules of the rounds served by this instance.
type Game struct {
	AIMark    string        `yaml:"ai-mark" env:"TICTACTOE_GAME_AI_MARK" env-default:"O"`
	FirstMove string        `yaml:"first-move" env:"TICTACTOE_GAME_FIRST_MOVE" env-default:"random"`
	Seed      uint64        `yaml:"seed" env:"TICTACTOE_GAME_SEED" env-default:"0"`
	RoundTTL  time.Duration `yaml:"round-ttl" env:"TICTACTOE_GAME_ROUND_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
