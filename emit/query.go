package emit

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mqc/state"
)

// Query prints media query composed from command line request.
func Query(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("query")

	if cmd.Args().Len() > 0 {
		log.Warn("Malformed command line, unexpected arguments", zap.Strings("ignoring", cmd.Args().Slice()))
	}

	eng, err := env.Engine()
	if err != nil {
		return err
	}
	q, err := eng.Composer().Compose(request(cmd))
	if err != nil {
		return fmt.Errorf("unable to compose media query: %w", err)
	}
	if q.IsEmpty() {
		log.Debug("Request produced empty media query")
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, q.String())
	return err
}
