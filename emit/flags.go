// Package emit implements program subcommands: composing queries, wrapping
// stylesheets, exporting breakpoints and inspecting the registry.
package emit

import (
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"

	"mqc/common"
	"mqc/css"
	"mqc/mq"
	"mqc/state"
)

// RequestFlags describe media query request on command line. Commands using
// them must set DisableSliceFlagSeparator, raw conditions may contain commas.
func RequestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "from", Aliases: []string{"f"}, Usage: "lower bound: breakpoint `NAME` or length (320px, 20em)"},
		&cli.StringFlag{Name: "until", Aliases: []string{"u"}, Usage: "upper bound: breakpoint `NAME` or length, named bounds are exclusive"},
		&cli.StringSliceFlag{Name: "and", Aliases: []string{"a"}, Usage: "additional `CONDITION`: feature breakpoint name or raw media feature, may be repeated"},
		&cli.StringFlag{Name: "media-type", Aliases: []string{"t"}, Usage: "media `TYPE` (screen, print...)"},
	}
}

// StyleFlag overrides configured output style.
func StyleFlag() cli.Flag {
	return &cli.StringFlag{Name: "style", Aliases: []string{"s"},
		Usage: "output `STYLE` (supported styles: " + strings.Join(common.OutputStyleNames(), ", ") + ")"}
}

func request(cmd *cli.Command) mq.Request {
	req := mq.Request{
		From:      mq.ParseBound(cmd.String("from")),
		Until:     mq.ParseBound(cmd.String("until")),
		MediaType: cmd.String("media-type"),
	}
	for _, c := range cmd.StringSlice("and") {
		req.Misc = append(req.Misc, mq.ParseCondition(c))
	}
	return req
}

func outputStyle(cmd *cli.Command, env *state.LocalEnv) (common.OutputStyle, error) {
	if !cmd.IsSet("style") {
		return env.Cfg.Output.Style, nil
	}
	style, err := common.ParseOutputStyle(cmd.String("style"))
	if err != nil {
		return style, fmt.Errorf("bad output style: %w", err)
	}
	return style, nil
}

// readSource reads stylesheet from file, or from standard input when name
// is empty or "-".
func readSource(cmd *cli.Command, src string) ([]byte, error) {
	if len(src) == 0 || src == "-" {
		data, err := io.ReadAll(cmd.Root().Reader)
		if err != nil {
			return nil, fmt.Errorf("unable to read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}
	return data, nil
}

// writeOutput renders sheet to destination file, or to standard output when
// name is empty.
func writeOutput(cmd *cli.Command, dst string, sheet *css.Stylesheet, style common.OutputStyle) error {
	if len(dst) == 0 {
		return sheet.Render(cmd.Root().Writer, style)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
	}
	if err := sheet.Render(out, style); err != nil {
		out.Close()
		return fmt.Errorf("unable to write destination file '%s': %w", dst, err)
	}
	return out.Close()
}
