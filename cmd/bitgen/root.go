package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexhholmes/bitlayout/internal/analyzer"
	"github.com/alexhholmes/bitlayout/internal/codegen"
	"github.com/alexhholmes/bitlayout/internal/config"
)

func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()

	rc := &cobra.Command{
		Use:   "bitgen",
		Short: "bitgen packs named fields into a single unsigned integer.",
		Long: `bitgen packs named fields into a single unsigned integer.

Layouts are read from Go source, where structs carry a @bitfield annotation
and bits struct tags, or from YAML, TOML and JSON schema files. bitgen
generates Pack and Unpack code for them, prints their bit placement, and packs
or unpacks words from the command line.

Options are read from flags, BITGEN_* environment variables and a TOML
configuration file, in that order of priority.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SetAll(viper.New(), cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := cfg.Logger(stderr)
			if err != nil {
				return err
			}
			analyzer.SetLogger(log)
			codegen.SetLogger(log)
			return nil
		},
	}
	cfg.GlobalFlags(rc.PersistentFlags())

	rc.AddCommand(newGenerateCommand(&cfg, stdout, stderr))
	rc.AddCommand(newInspectCommand(stdout))
	rc.AddCommand(newPackCommand(stdout))
	rc.AddCommand(newUnpackCommand(stdout))

	rc.SetIn(stdin)
	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}
