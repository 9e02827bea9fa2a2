package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// runner holds the state shared by all subcommands.
type runner struct {
	verbose bool
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	r := &runner{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "urlform",
		Short:         "convert between form-urlencoded data and JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if r.verbose {
				r.log = newLogger(cmd.ErrOrStderr())
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = r.log.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&r.verbose, string(flagVerbose), "v", false, "log progress to stderr")

	cmd.AddCommand(
		newDecodeCmd(r),
		newEncodeCmd(r),
	)
	return cmd
}

// newLogger returns a human readable debug logger writing to w.
func newLogger(w io.Writer) *zap.Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)
	return zap.New(core)
}

// openInput opens the named file, or standard input when args is empty.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}
