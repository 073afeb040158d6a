package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilTarget is returned when Load receives a nil pointer.
var ErrNilTarget = errors.New("config target must be a non-nil pointer")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> cached value
)

// Load parses environment variables into cfg. The first call for a type
// parses the environment; later calls copy the cached value.
// A .env file in the working directory is loaded once, without overriding
// variables that are already set.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilTarget
	}

	dotenvOnce.Do(func() {
		// Missing .env is fine.
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return err
	}

	actual, _ := cache.LoadOrStore(typ, parsed)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure. Use it during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops all cached configurations. Intended for tests.
func Reset() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
