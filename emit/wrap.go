package emit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mqc/state"
)

// Wrap places stylesheet under media query composed from command line
// request. With --watch output is regenerated whenever source or
// configured breakpoint files change.
func Wrap(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("wrap")

	src, dst := cmd.Args().Get(0), cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	fromFile := len(src) > 0 && src != "-"
	if cmd.Bool("watch") && !fromFile {
		return errors.New("watching requires SOURCE file")
	}

	style, err := outputStyle(cmd, env)
	if err != nil {
		return err
	}
	req := request(cmd)

	run := func() error {
		eng, err := env.Engine()
		if err != nil {
			return err
		}
		data, err := readSource(cmd, src)
		if err != nil {
			return err
		}
		if fromFile {
			if err := env.Rpt.StoreCopy("input/"+filepath.Base(src), src); err != nil {
				log.Warn("Unable to store source in the report", zap.Error(err))
			}
		}
		sheet, err := eng.MQText(req, data)
		if err != nil {
			return fmt.Errorf("unable to wrap stylesheet: %w", err)
		}
		if err := writeOutput(cmd, dst, sheet, style); err != nil {
			return err
		}
		if len(dst) > 0 {
			env.Rpt.Store("output/"+filepath.Base(dst), dst)
		}
		log.Debug("Stylesheet wrapped", zap.String("source", src), zap.String("destination", dst))
		return nil
	}

	if !cmd.Bool("watch") {
		return run()
	}
	if err := run(); err != nil {
		log.Error("Unable to wrap stylesheet, waiting for changes", zap.Error(err))
	}

	files := []string{src}
	for _, f := range []string{env.Cfg.Breakpoints.File, env.Cfg.Tweakpoints.File} {
		if len(f) > 0 {
			files = append(files, f)
		}
	}
	source, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	return watch(ctx, log, files, func(name string) error {
		if name != source {
			// breakpoints changed
			env.Reset()
		}
		return run()
	})
}
