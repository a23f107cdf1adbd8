package state

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mqc/config"
	"mqc/mixin"
	"mqc/mq"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

func buildEngine(cfg *config.Config, log *zap.Logger) (*mixin.Engine, error) {
	if cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}
	if log == nil {
		log = zap.NewNop()
	}

	reg, err := cfg.Registry(log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare breakpoints: %w", err)
	}
	if err := reg.Validate(); err != nil {
		// unresolvable breakpoints are reported when used
		log.Warn("Breakpoints registry has problems", zap.Error(err))
	}

	opts, err := cfg.MediaQuery.Options()
	if err != nil {
		return nil, err
	}
	composer, err := mq.NewComposer(log, reg, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare media query composer: %w", err)
	}
	return mixin.New(log, composer, cfg.Output.MixinOptions()), nil
}
