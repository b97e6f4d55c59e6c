// Command textnorm normalizes and splits text from the command line.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/book-expert/logger"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

const (
	cliLogFile  = "textnorm-cli.log"
	flagFile    = "file"
	flagLogDir  = "log-dir"
	stdinMarker = "-"
)

// NewRootCmd builds the textnorm command tree.
func NewRootCmd() *cobra.Command {
	var logDir string

	cmd := &cobra.Command{
		Use:           "textnorm",
		Short:         "Normalize multilingual text into a speakable form",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logDir, flagLogDir, os.TempDir(), "Directory for the CLI log file")

	cmd.AddCommand(newNormalizeCmd(&logDir))
	cmd.AddCommand(newSplitCmd())
	cmd.AddCommand(newLanguagesCmd())

	return cmd
}

func newLogger(logDir string) (*logger.Logger, error) {
	log, err := logger.New(logDir, cliLogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return log, nil
}

// readInput returns the positional arguments joined by spaces, or the
// contents of file ("-" for stdin), or stdin when neither is given. The text
// is NFC-normalized.
func readInput(cmd *cobra.Command, file string, args []string) (string, error) {
	if len(args) > 0 {
		if file != "" {
			return "", errArgsAndFile
		}

		return norm.NFC.String(strings.Join(args, " ")), nil
	}

	var (
		data []byte
		err  error
	)

	if file == "" || file == stdinMarker {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}

	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return norm.NFC.String(string(data)), nil
}

func main() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
