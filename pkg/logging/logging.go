// Package logging wraps zap behind the narrow surface pagekv's components
// actually call, so cores never import zap directly.
package logging

import "go.uber.org/zap"

// Logger is the *zap.SugaredLogger surface used across the module.
type Logger interface {
	Debugw(msg string, kv ...any)
	Infow(msg string, kv ...any)
	Warnw(msg string, kv ...any)
	Errorw(msg string, kv ...any)
	Sync() error
}

// New builds a dev or prod zap logger depending on env, matching the
// donor's split between zap.NewDevelopment and zap.NewProduction.
func New(env string) (Logger, error) {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case "prod":
		l, err = zap.NewProduction()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}

// Nop returns a Logger that discards everything, for tests that don't
// care about log output but still need to satisfy the interface.
func Nop() Logger {
	return zap.NewNop().Sugar()
}
