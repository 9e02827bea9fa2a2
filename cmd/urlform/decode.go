package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tomasbasham/urlform"
)

func newDecodeCmd(r *runner) *cobra.Command {
	var (
		group       bool
		output      = newChoice(outputJSON, outputJSON, outputYAML)
		compression = newChoice(compressionNone, compressionNone, compressionGzip, compressionZstd)
	)

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "print the pairs of a form body",
		Long: `Decode reads a form-urlencoded body and prints its pairs in order, each as
a [key, value] array. With --group, it prints an object mapping each key to
all of its values instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			body, err := readBody(in, compression.value)
			if err != nil {
				return err
			}
			r.log.Debug("read form body",
				zap.Int("bytes", len(body)),
				zap.String("compression", compression.value),
			)

			var v interface{}
			if group {
				var values map[string][]string
				if err := urlform.Unmarshal(body, &values); err != nil {
					return err
				}
				r.log.Debug("decoded form", zap.Int("keys", len(values)))
				v = values
			} else {
				var pairs [][2]string
				if err := urlform.Unmarshal(body, &pairs); err != nil {
					return err
				}
				r.log.Debug("decoded form", zap.Int("pairs", len(pairs)))
				v = pairs
			}
			return writeOutput(cmd.OutOrStdout(), output.value, v)
		},
	}
	cmd.Flags().BoolVar(&group, string(flagGroup), false, "group the values of repeated keys")
	addOutputFlag(cmd.Flags(), output)
	addCompressionFlag(cmd.Flags(), compression)
	return cmd
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}
