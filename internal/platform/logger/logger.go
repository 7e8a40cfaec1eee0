package logger

import (
	"go.uber.org/zap"
)

// New builds a zap logger appropriate for the environment: human-readable
// development config for "development", production JSON otherwise.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed builds a logger via New and names it after the service.
func NewNamed(appEnv, service string) (*zap.Logger, error) {
	log, err := New(appEnv)
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
