package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/alexhholmes/bitlayout/internal/analyzer"
)

func newInspectCommand(stdout io.Writer) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect FILE [TYPE...]",
		Short: "Print the bit placement of each field",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := load(args[0])
			if err != nil {
				return err
			}

			layouts := src.layouts
			if len(args) > 1 {
				layouts = nil
				for _, name := range args[1:] {
					l, err := src.layout(name)
					if err != nil {
						return err
					}
					layouts = append(layouts, l)
				}
			}

			if asJSON {
				return writeLayoutsJSON(stdout, layouts)
			}
			for i, l := range layouts {
				if i > 0 {
					fmt.Fprintln(stdout)
				}
				writeLayoutTable(stdout, l)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print layouts as JSON.")
	return cmd
}

func writeLayoutTable(w io.Writer, l *analyzer.Layout) {
	fmt.Fprintf(w, "%s (%s, %d of %d bits used, overflow %s)\n", l.Name, l.Width.GoType(), l.Used, l.Width, l.Overflow)

	digits := int(l.Width) / 4
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Type", "Offset", "Bits", "Mask", "Extension", "Ext Mask"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range l.Regions {
		ext, extMask := "", ""
		if r.Extended() {
			ext = fmt.Sprintf("%d:%d", r.ExtOffset, r.ExtBits)
			if r.Keep() {
				ext += " keep"
			}
			extMask = fmt.Sprintf("0x%0*x", digits, r.ExtMask)
		}
		table.Append([]string{
			r.Field.Name,
			r.Field.HostType(),
			fmt.Sprint(r.Offset),
			fmt.Sprint(r.Bits),
			fmt.Sprintf("0x%0*x", digits, r.Mask),
			ext,
			extMask,
		})
	}
	table.Render()
}

type layoutJSON struct {
	Name     string       `json:"name"`
	Storage  string       `json:"storage"`
	Used     int          `json:"used"`
	Overflow string       `json:"overflow"`
	Fields   []regionJSON `json:"fields"`
}

type regionJSON struct {
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Offset    int            `json:"offset"`
	Bits      int            `json:"bits"`
	Mask      uint64         `json:"mask"`
	Extension *extensionJSON `json:"extension,omitempty"`
}

type extensionJSON struct {
	Offset int    `json:"offset"`
	Bits   int    `json:"bits"`
	Mask   uint64 `json:"mask"`
	Keep   bool   `json:"keep"`
}

func toJSON(l *analyzer.Layout) layoutJSON {
	out := layoutJSON{
		Name:     l.Name,
		Storage:  l.Width.GoType(),
		Used:     l.Used,
		Overflow: l.Overflow.String(),
		Fields:   make([]regionJSON, 0, len(l.Regions)),
	}
	for _, r := range l.Regions {
		rj := regionJSON{
			Name:   r.Field.Name,
			Type:   r.Field.HostType(),
			Offset: r.Offset,
			Bits:   r.Bits,
			Mask:   r.Mask,
		}
		if r.Extended() {
			rj.Extension = &extensionJSON{Offset: r.ExtOffset, Bits: r.ExtBits, Mask: r.ExtMask, Keep: r.Keep()}
		}
		out.Fields = append(out.Fields, rj)
	}
	return out
}

func writeLayoutsJSON(w io.Writer, layouts []*analyzer.Layout) error {
	out := make([]layoutJSON, 0, len(layouts))
	for _, l := range layouts {
		out = append(out, toJSON(l))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
