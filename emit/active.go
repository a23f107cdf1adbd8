package emit

import (
	"context"
	"errors"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mqc/state"
)

// Active emits declarations naming breakpoint active for selector before,
// during and after composed media query.
func Active(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("active")

	selector := cmd.Args().Get(0)
	if len(selector) == 0 {
		return errors.New("no selector has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	style, err := outputStyle(cmd, env)
	if err != nil {
		return err
	}
	eng, err := env.Engine()
	if err != nil {
		return err
	}
	sheet, err := eng.ActiveBreakpoint(request(cmd), selector, cmd.String("inherited"))
	if err != nil {
		return err
	}
	return writeOutput(cmd, dst, sheet, style)
}
