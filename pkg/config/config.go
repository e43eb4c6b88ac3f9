package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrNilPointer    = errors.New("nil pointer provided to config loader")
)

var (
	mu     sync.RWMutex
	loaded = make(map[string]any)

	dotenvOnce sync.Once
)

// Load populates the config struct from environment variables using its
// `env` field tags. The first call loads a .env file if one exists.
// Each config type is parsed once per process; later calls return the
// cached value, so packages can load their own config independently
// without re-reading the environment.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is normal outside development.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeName[T]()

	mu.RLock()
	cached, ok := loaded[key]
	mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	mu.Lock()
	// A concurrent loader may have won; keep the first parsed value so
	// every caller observes the same config.
	if cached, ok := loaded[key]; ok {
		*v = cached.(T)
	} else {
		loaded[key] = *v
	}
	mu.Unlock()

	return nil
}

// MustLoad is Load for configs the application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
