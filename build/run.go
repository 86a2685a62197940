// Package build turns selector definition files into stylesheets.
package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssel/archive"
	"cssel/css"
	"cssel/selector"
	"cssel/state"
)

// Run is the action of "build" subcommand.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.ToStdout = cmd.Bool("overwrite"), cmd.Bool("stdout")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, env, log)
}

// process handles the core logic independently of CLI framework.
func process(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("unable to access source: %w", err)
	}
	if !fi.IsDir() {
		if isArchive(src) {
			return processArchive(ctx, src, dst, env, log)
		}
		return processFile(ctx, src, dst, env, log)
	}

	var errs error
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		var perr error
		switch {
		case isDefinition(path):
			perr = processFile(ctx, path, dst, env, log)
		case isArchive(path):
			perr = processArchive(ctx, path, dst, env, log)
		default:
			return nil
		}
		if perr != nil {
			// keep going, report everything at the end
			log.Error("Unable to build stylesheet", zap.String("file", path), zap.Error(perr))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, perr))
		}
		return nil
	})
	return multierr.Append(err, errs)
}

func isDefinition(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// dumpSelectors describes structure of every selector in the stylesheet.
func dumpSelectors(src string, sheet *css.Stylesheet) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", src)
	for _, item := range sheet.Items {
		rules, prefix := []css.Rule{}, ""
		switch {
		case item.Rule != nil:
			rules = append(rules, *item.Rule)
		case item.MediaBlock != nil:
			rules, prefix = item.MediaBlock.Rules, "@media "+item.MediaBlock.Query+" "
		}
		for _, rule := range rules {
			for _, sel := range rule.Selectors {
				fmt.Fprintf(&sb, "%s%s\n", prefix, selector.Stringify(sel))
				sb.WriteString(selector.Dump(sel))
			}
		}
	}
	return []byte(sb.String())
}

func isArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// processArchive builds every definition packed into zip archive, errors are
// collected for all entries.
func processArchive(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	if err := env.Rpt.StoreCopy(filepath.Join("source", filepath.Base(src)), src); err != nil {
		log.Warn("Unable to store archive in report", zap.String("file", src), zap.Error(err))
	}

	var errs error
	err := archive.Walk(src, isDefinition, func(name string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processData(name, data, dst, env, log); err != nil {
			log.Error("Unable to build stylesheet", zap.String("archive", src), zap.String("entry", name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return nil
	})
	return multierr.Append(err, errs)
}

func processFile(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read definition: %w", err)
	}
	if err := env.Rpt.StoreCopy(filepath.Join("source", filepath.Base(src)), src); err != nil {
		log.Warn("Unable to store definition in report", zap.String("file", src), zap.Error(err))
	}
	return processData(src, data, dst, env, log)
}

// processData builds stylesheet from definition content, src names the
// definition and is used to derive output name.
func processData(src string, data []byte, dst string, env *state.LocalEnv, log *zap.Logger) error {
	sheet, err := Load(data)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		env.Rpt.AppendData("selectors.txt", dumpSelectors(src, sheet))
	}
	if sheet.Order, err = css.ParsePropertyOrder(env.Cfg.Output.PropertyOrder); err != nil {
		log.Warn("Unknown property order requested, switching to natural", zap.Error(err))
	}

	text := []byte(sheet.String())
	if env.Cfg.Output.Lint {
		for _, w := range css.NewLinter(log).Lint(text, src) {
			log.Warn("Generated CSS problem", zap.String("file", src), zap.Stringer("warning", w))
		}
	}

	if env.ToStdout {
		_, err = os.Stdout.Write(text)
		return err
	}

	out := outputPath(src, dst, env.Cfg.Output.Extension, env.Cfg.Output.Transliterate)
	if _, err := os.Stat(out); err == nil && !env.Overwrite {
		return fmt.Errorf("output file already exists: %s", out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(out, text, 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	log.Debug("Stylesheet written", zap.String("source", src), zap.String("output", out), zap.Int("items", len(sheet.Items)))
	return nil
}
