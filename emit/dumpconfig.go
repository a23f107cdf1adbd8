package emit

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mqc/config"
	"mqc/state"
)

// DumpConfig writes default embedded or actual configuration.
func DumpConfig(ctx context.Context, cmd *cli.Command) (err error) {

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dumpconfig")

	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		what = "actual"
	)
	if cmd.Bool("default") {
		what = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	var out io.Writer = cmd.Root().Writer
	fname := cmd.Args().Get(0)
	if len(fname) > 0 {
		f, er := os.Create(fname)
		if er != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, er)
		}
		defer func() {
			if er := f.Close(); er != nil && err == nil {
				err = er
			}
		}()
		out = f
	} else {
		fname = "STDOUT"
	}
	log.Info("Writing configuration", zap.String("state", what), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
