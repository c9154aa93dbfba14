package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/tmplexpr"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Show the particles of a template expression",
	Long: `Parse a template expression and print its particles.

Examples:
  wsterm parse 'hello\n${name}'
  wsterm parse '${byteRange(0x41, 0x5a)}' --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var escapeCmd = &cobra.Command{
	Use:   "escape <text>",
	Short: "Escape text for use in a template expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), tmplexpr.Escape(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(escapeCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "text", "output format (text, json, yaml)")
}

// particleView is the serialized form of a particle
type particleView struct {
	Kind   string   `json:"kind" yaml:"kind"`
	Source string   `json:"source" yaml:"source"`
	Value  any      `json:"value,omitempty" yaml:"value,omitempty"`
	Args   []uint64 `json:"args,omitempty" yaml:"args,omitempty"`
}

func viewParticles(expr tmplexpr.TemplateExpression) []particleView {
	views := make([]particleView, 0, len(expr.Particles))
	for _, p := range expr.Particles {
		v := particleView{Kind: p.Kind().String(), Source: p.String()}
		switch p := p.(type) {
		case tmplexpr.Text:
			v.Value = p.Value
		case tmplexpr.Byte:
			v.Value = p.Value
		case tmplexpr.Codepoint:
			v.Value = p.Value
		case tmplexpr.Variable:
			v.Value = p.Name
		case tmplexpr.FunctionCall:
			v.Value = p.Name
			v.Args = p.Values()
		}
		views = append(views, v)
	}
	return views
}

func runParse(cmd *cobra.Command, args []string) error {
	expr, err := tmplexpr.Parse(args[0])
	if err != nil {
		return err
	}
	return writeParticles(cmd.OutOrStdout(), viewParticles(expr), parseFormat)
}

func writeParticles(w io.Writer, views []particleView, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		for _, v := range views {
			fmt.Fprintf(w, "%-10s %s\n", v.Kind, v.Source)
		}
		return nil
	default:
		return wsterror.Newf("unknown format %q", format).
			WithCode(wsterror.CodeInvalidInput).
			WithOperation("cmd.parse")
	}
}
