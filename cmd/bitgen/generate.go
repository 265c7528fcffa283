package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexhholmes/bitlayout/internal/codegen"
	"github.com/alexhholmes/bitlayout/internal/config"
)

func newGenerateCommand(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate FILE...",
		Short: "Generate Pack and Unpack code",
		Long: `Generate writes FILE_bits.go next to every input, holding the Pack,
Unpack and conversion functions of each bit field struct.

With --check nothing is written; generate prints a unified diff for every
output that differs from the file on disk and fails if there is one.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return generate(ctx, cfg, args, stdout)
		},
	}
	cfg.GenerateFlags(cmd.Flags())
	return cmd
}

// generated is the outcome for one input
type generated struct {
	path string // output file, empty when the input has no bit field structs
	diff string // unified diff against the file on disk, check mode only
}

func generate(ctx context.Context, cfg *config.Config, paths []string, stdout io.Writer) error {
	results := make([]generated, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := generateFile(cfg, path)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stale := 0
	for _, r := range results {
		switch {
		case r.path == "":
		case cfg.Check && r.diff != "":
			stale++
			fmt.Fprint(stdout, r.diff)
		case !cfg.Check:
			fmt.Fprintf(stdout, "wrote %s\n", r.path)
		}
	}
	if stale > 0 {
		return errors.Errorf("%d generated file(s) out of date", stale)
	}
	return nil
}

func generateFile(cfg *config.Config, path string) (generated, error) {
	src, err := load(path)
	if err != nil {
		return generated{}, err
	}
	if len(src.layouts) == 0 {
		codegen.Logger().Warn("no bit field structs", zap.String("file", path))
		return generated{}, nil
	}

	gen := codegen.NewGenerator(src.layouts, codegen.Options{
		Package:  src.pkg,
		Source:   filepath.Base(path),
		Overflow: cfg.Policy(),
	})
	code, err := gen.Generate()
	if err != nil {
		return generated{}, errors.Wrap(err, path)
	}

	out := outputPath(path, cfg.Suffix)
	if cfg.Check {
		old, err := os.ReadFile(out)
		if err != nil && !os.IsNotExist(err) {
			return generated{}, err
		}
		r := generated{path: out}
		if !bytes.Equal(old, code) {
			r.diff = unifiedDiff(out, string(old), string(code))
		}
		return r, nil
	}

	if err := os.WriteFile(out, code, 0o644); err != nil {
		return generated{}, errors.Wrap(err, "writing generated code")
	}
	codegen.Logger().Info("generated", zap.String("input", path), zap.String("output", out),
		zap.Int("structs", len(src.layouts)))
	return generated{path: out}, nil
}

// outputPath places the generated file next to its input
// wire/header.go → wire/header_bits.go
func outputPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix + ".go"
}

func unifiedDiff(path, have, want string) string {
	edits := myers.ComputeEdits(span.URIFromPath(path), have, want)
	return fmt.Sprint(gotextdiff.ToUnified(path, path+" (generated)", have, edits))
}
