package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	Services   Services
	Breaker    Breaker
	Cache      Cache
	Purge      Purge
}

type HttpServer struct {
	Port        string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

// Limiter is the shared admission policy for the confirmation-code endpoints.
type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT JWTConfig
}

type JWTConfig struct {
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	ServiceTokenTTL time.Duration `env:"JWT_SERVICE_TOKEN_TTL" env-default:"5m"`
}

// Services holds base URLs of the downstream collaborators and the per-call
// timeout budget their HTTP clients run under.
type Services struct {
	UserServiceURL  string        `env:"URL_SERVICE_USER" env-required:"true"`
	EmailServiceURL string        `env:"URL_SERVICE_EMAIL" env-required:"true"`
	AuthServiceURL  string        `env:"URL_SERVICE_AUTH" env-required:"true"`
	ClientTimeout   time.Duration `env:"SERVICE_CLIENT_TIMEOUT" env-default:"10s"`
}

// Breaker configures every downstream circuit breaker.
type Breaker struct {
	MaxRequests      uint32        `env:"BREAKER_MAX_REQUESTS" env-default:"3" env-description:"probes allowed in half-open state"`
	Interval         time.Duration `env:"BREAKER_INTERVAL" env-default:"60s"`
	Timeout          time.Duration `env:"BREAKER_TIMEOUT" env-default:"30s" env-description:"open state duration before half-open"`
	FailureThreshold uint32        `env:"BREAKER_FAILURE_THRESHOLD" env-default:"5"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

// Purge schedules the expired-code cleanup job.
type Purge struct {
	Schedule string `env:"PURGE_SCHEDULE" env-default:"@every 1h"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
