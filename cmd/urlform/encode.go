package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tomasbasham/urlform"
)

func newEncodeCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "encode a JSON object as a form body",
		Long: `Encode reads a JSON object and prints it form-urlencoded, keeping the
order of its members. Array members become one pair per element and null
members are left out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			pairs, err := readObject(in)
			if err != nil {
				return err
			}
			r.log.Debug("read JSON object", zap.Int("members", len(pairs)))

			s, err := urlform.EncodeToString(pairs)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
	return cmd
}

// readObject reads a single JSON object as an ordered list of members.
func readObject(r io.Reader) ([]urlform.Pair[string, interface{}], error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("json: expected an object, found %v", tok)
	}

	pairs := []urlform.Pair[string, interface{}]{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		pairs = append(pairs, urlform.Pair[string, interface{}]{Key: tok.(string), Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return pairs, nil
}
