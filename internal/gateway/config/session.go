package config

// Поддерживаемые виды хранилища токенов.
const (
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// SessionConfig представляет конфигурацию хранилища сессии.
type SessionConfig struct {
	Store    string `yaml:"store" env:"GATEWAY_SESSION_STORE" env-default:"file"`
	FilePath string `yaml:"file_path" env:"GATEWAY_SESSION_FILE_PATH" env-default:".finledger/tokens.json"`
}
