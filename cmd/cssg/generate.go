package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssg/css"
	"cssg/markup"
	"cssg/presets"
	"cssg/state"
)

// buildSheet assembles the configured catalogs into a fresh sheet.
func buildSheet(env *state.LocalEnv) (*css.StyleSheet, error) {
	opts := css.Options{
		Normalize: env.Cfg.Sheet.Normalize,
		Logger:    env.Log,
	}
	if path := env.Cfg.Sheet.PreamblePath; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read preamble '%s': %w", path, err)
		}
		opts.Preamble = string(data)
	}
	sheet := css.NewStyleSheet(opts)

	breakpoints := make([]presets.Breakpoint, 0, len(env.Cfg.Grid.Breakpoints))
	for _, bp := range env.Cfg.Grid.Breakpoints {
		breakpoints = append(breakpoints, presets.Breakpoint{
			Name:     bp.Name,
			MaxWidth: bp.MaxWidth,
			Columns:  bp.Columns,
		})
	}
	if err := presets.FluidGrid(sheet, env.Cfg.Grid.Columns, breakpoints); err != nil {
		return nil, fmt.Errorf("unable to build grid: %w", err)
	}

	palette := make(map[string]css.Color, len(env.Cfg.Buttons.Palette))
	for name, hex := range env.Cfg.Buttons.Palette {
		color, err := css.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("button color %q: %w", name, err)
		}
		palette[name] = color
	}
	if err := presets.Buttons(sheet, palette); err != nil {
		return nil, fmt.Errorf("unable to build buttons: %w", err)
	}

	ts := env.Cfg.TextScale
	if err := presets.TextScale(sheet, ts.From, ts.To, ts.Steps); err != nil {
		return nil, fmt.Errorf("unable to build text scale: %w", err)
	}
	return sheet, nil
}

func generateStyles(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	sheet, err := buildSheet(env)
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if len(path) == 0 {
		path = env.Cfg.Output.Path
	}
	dynamic := env.Cfg.Output.Dynamic || cmd.Bool("dynamic")

	if err := sheet.RenderFile(path, dynamic); err != nil {
		return fmt.Errorf("unable to render stylesheet: %w", err)
	}
	env.Log.Info("Stylesheet written", zap.String("file", path), zap.Bool("dynamic", dynamic))
	return nil
}

func generateDemo(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	sheet, err := buildSheet(env)
	if err != nil {
		return err
	}

	doc := markup.NewDocument("cssg demo", sheet)
	body := doc.Body()

	grid, err := sheet.Get("grid")
	if err != nil {
		return err
	}
	row := body.Child("div", grid)
	half, err := sheet.Get(fmt.Sprintf("span_%d", max(1, env.Cfg.Grid.Columns/2)))
	if err != nil {
		return err
	}
	row.Child("div", half).Text("left")
	row.Child("div", half).Text("right")

	base, err := sheet.Get("btn")
	if err != nil {
		return err
	}
	names := make([]string, 0, len(env.Cfg.Buttons.Palette))
	for name := range env.Cfg.Buttons.Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		variant, err := sheet.Get("btn_" + slug.Make(name))
		if err != nil {
			return err
		}
		body.Child("button", base, variant).Text(name)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		fname = "demo.html"
	}
	if err := doc.RenderFile(fname); err != nil {
		return fmt.Errorf("unable to render demo page: %w", err)
	}
	env.Log.Info("Demo page written", zap.String("file", fname))
	return nil
}
