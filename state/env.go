// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mqc/config"
	"mqc/mixin"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	engine        *mixin.Engine
	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Engine returns stylesheet engine for current configuration, building it on
// first use.
func (e *LocalEnv) Engine() (*mixin.Engine, error) {
	if e.engine != nil {
		return e.engine, nil
	}
	eng, err := buildEngine(e.Cfg, e.Log)
	if err != nil {
		return nil, err
	}
	e.engine = eng
	return eng, nil
}

// Reset drops cached engine, next call to Engine rereads breakpoint files.
func (e *LocalEnv) Reset() {
	e.engine = nil
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
