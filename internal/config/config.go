package config

import "os"

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr string
	GRPCAddr string

	MySQLDSN       string
	RedisAddr      string
	MigrationsPath string

	// StoreBackend selects where the storefront documents live:
	// "redis" or "file".
	StoreBackend string
	StoreDir     string
}

func Load() Config {
	return Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:       getEnv("GRPC_ADDR", ":50051"),
		MySQLDSN:       getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/luxestore?parseTime=true"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./internal/adapter/storage/migrations"),
		StoreBackend:   getEnv("STORE_BACKEND", "redis"),
		StoreDir:       getEnv("STORE_DIR", "./data"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
