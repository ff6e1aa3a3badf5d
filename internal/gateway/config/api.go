package config

import (
	"strings"
	"time"
)

// APIConfig представляет конфигурацию удаленного finance API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"GATEWAY_API_BASE_URL" env-default:"http://127.0.0.1:8000/api"`
	Version string        `yaml:"version" env:"GATEWAY_API_VERSION" env-default:"v1"`
	Timeout time.Duration `yaml:"timeout" env:"GATEWAY_API_TIMEOUT" env-default:"10s"`
}

// GetEndpointBase возвращает базовый URL версионированного API.
func (c *APIConfig) GetEndpointBase() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + c.Version
}
