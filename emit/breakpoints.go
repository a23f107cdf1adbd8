package emit

import (
	"context"
	"fmt"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"mqc/state"
	"mqc/units"
)

// Breakpoints shows effective registry: tree dump by default, YAML which
// could be used as breakpoints file, or sorted length tiers.
func Breakpoints(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("breakpoints")

	eng, err := env.Engine()
	if err != nil {
		return err
	}
	reg := eng.Composer().Registry()
	out := cmd.Root().Writer

	if cmd.Bool("validate") {
		if err := reg.Validate(); err != nil {
			return fmt.Errorf("breakpoints are not valid: %w", err)
		}
		log.Info("Breakpoints are valid", zap.Int("lengths", len(reg.LengthNames())), zap.Int("features", len(reg.FeatureNames())))
	}

	switch {
	case cmd.Bool("yaml"):
		data, err := yaml.Marshal(reg)
		if err != nil {
			return fmt.Errorf("unable to marshal breakpoints: %w", err)
		}
		_, err = out.Write(data)
		return err

	case cmd.Bool("tiers"):
		tiers, err := reg.Tiers()
		if err != nil {
			return err
		}
		conv, err := units.NewConverter(log, eng.Composer().Options().BaseFontSize)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, tier := range tiers {
			em, err := conv.ToEm(tier.Length, true)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", tier.Name, tier.Raw, em)
		}
		return tw.Flush()

	case cmd.Bool("validate"):
		return nil

	default:
		_, err := fmt.Fprint(out, reg.Dump())
		return err
	}
}
