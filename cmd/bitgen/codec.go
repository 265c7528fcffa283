package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/alexhholmes/bitlayout/internal/analyzer"
	"github.com/alexhholmes/bitlayout/internal/codec"
	"github.com/alexhholmes/bitlayout/internal/schema"
)

func newPackCommand(stdout io.Writer) *cobra.Command {
	var truncate bool
	cmd := &cobra.Command{
		Use:   "pack FILE TYPE NAME=VALUE...",
		Short: "Pack field values into a word",
		Long: `Pack folds NAME=VALUE pairs into the storage word of TYPE and prints
it in hex and decimal. Values are decimal, 0x hex, 0b binary, negative, or
true and false. Fields not named pack as zero.
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadLayout(args[0], args[1])
			if err != nil {
				return err
			}

			values, err := parseValues(args[2:])
			if err != nil {
				return err
			}

			c := codec.New(l)
			if truncate {
				c = c.WithPolicy(schema.Truncate)
			}
			word, err := c.Pack(values)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "0x%0*x %d\n", int(l.Width)/4, word, word)
			return nil
		},
	}
	cmd.Flags().BoolVar(&truncate, "truncate", false, "Truncate oversized values even if the struct rejects them.")
	return cmd
}

func newUnpackCommand(stdout io.Writer) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "unpack FILE TYPE WORD",
		Short: "Unpack a word into field values",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadLayout(args[0], args[1])
			if err != nil {
				return err
			}

			word, err := strconv.ParseUint(args[2], 0, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid word %q", args[2])
			}
			if word&^l.WordMask() != 0 {
				return errors.Errorf("word %#x does not fit in %s", word, l.Width.GoType())
			}

			values := codec.New(l).Unpack(word)
			if asJSON {
				out := make(map[string]interface{}, len(l.Regions))
				for _, r := range l.Regions {
					out[r.Field.Name] = typedValue(r, values)
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "%s\n", data)
				return nil
			}
			for _, r := range l.Regions {
				fmt.Fprintf(stdout, "%s = %v\n", r.Field.Name, typedValue(r, values))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print values as a JSON object.")
	return cmd
}

func loadLayout(path, name string) (*analyzer.Layout, error) {
	src, err := load(path)
	if err != nil {
		return nil, err
	}
	return src.layout(name)
}

// parseValues parses NAME=VALUE arguments
func parseValues(args []string) (codec.Values, error) {
	values := make(codec.Values, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, errors.Errorf("expected NAME=VALUE, got %q", arg)
		}
		if _, dup := values[name]; dup {
			return nil, errors.Errorf("field %s given twice", name)
		}

		switch {
		case value == "true":
			values.SetBool(name, true)
		case value == "false":
			values.SetBool(name, false)
		case strings.HasPrefix(value, "-"):
			n, err := strconv.ParseInt(value, 0, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "field %s", name)
			}
			values.SetInt(name, n)
		default:
			n, err := strconv.ParseUint(value, 0, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "field %s", name)
			}
			values.Set(name, n)
		}
	}
	return values, nil
}

// typedValue returns the value of a field as its Go kind would print it
func typedValue(r analyzer.Region, values codec.Values) interface{} {
	name := r.Field.Name
	switch r.Field.Kind.Class {
	case schema.Bool:
		return values.Bool(name)
	case schema.Int:
		return values.Int(name, r.Field.Kind.Width)
	default:
		return values.Uint(name)
	}
}
