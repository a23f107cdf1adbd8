package emit

import (
	"context"
	"fmt"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mqc/mq"
	"mqc/state"
)

// Export renders length breakpoints into stylesheet readable by scripts, or
// prints snapshot of a single tier.
func Export(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	dst := cmd.Args().Get(0)
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	eng, err := env.Engine()
	if err != nil {
		return err
	}

	if tier := cmd.String("snapshot"); len(tier) > 0 {
		snap, err := mq.NewSnapshot(eng.Composer().Registry(), tier)
		if err != nil {
			return fmt.Errorf("unable to prepare snapshot: %w", err)
		}
		_, err = fmt.Fprintln(cmd.Root().Writer, snap.String())
		return err
	}

	style, err := outputStyle(cmd, env)
	if err != nil {
		return err
	}
	sheet, err := eng.ExportLengths(cmd.String("selector"))
	if err != nil {
		return fmt.Errorf("unable to export breakpoints: %w", err)
	}
	if err := writeOutput(cmd, dst, sheet, style); err != nil {
		return err
	}
	if len(dst) > 0 {
		env.Rpt.Store("output/"+filepath.Base(dst), dst)
	}
	log.Debug("Breakpoints exported", zap.Int("blocks", len(sheet.Items)))
	return nil
}
