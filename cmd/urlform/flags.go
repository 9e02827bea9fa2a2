package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

type flagName string

const (
	flagCompression flagName = "compression"
	flagGroup       flagName = "group"
	flagOutput      flagName = "output"
	flagVerbose     flagName = "verbose"
)

// choice is a string flag restricted to a fixed set of values.
type choice struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*choice)(nil)

func newChoice(def string, allowed ...string) *choice {
	return &choice{value: def, allowed: allowed}
}

func (c *choice) String() string { return c.value }

func (c *choice) Set(s string) error {
	for _, a := range c.allowed {
		if s == a {
			c.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(c.allowed, ", "))
}

func (c *choice) Type() string { return "string" }

const (
	compressionNone = "none"
	compressionGzip = "gzip"
	compressionZstd = "zstd"

	outputJSON = "json"
	outputYAML = "yaml"
)

func addCompressionFlag(fs *pflag.FlagSet, c *choice) {
	fs.Var(c, string(flagCompression), "decompress input: "+strings.Join(c.allowed, ", "))
}

func addOutputFlag(fs *pflag.FlagSet, c *choice) {
	fs.VarP(c, string(flagOutput), "o", "output format: "+strings.Join(c.allowed, ", "))
}
