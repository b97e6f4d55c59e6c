package main

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/book-expert/text-normalizer/internal/paragraph"
	"github.com/spf13/cobra"
)

var errBadDelimiter = errors.New("delimiter must be a single character")

func newSplitCmd() *cobra.Command {
	var (
		file      string
		maxLength int
		delimiter string
	)

	cmd := &cobra.Command{
		Use:   "split [text...]",
		Short: "Split text into length-bounded chunks, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if utf8.RuneCountInString(delimiter) != 1 {
				return fmt.Errorf("%w: %q", errBadDelimiter, delimiter)
			}

			text, err := readInput(cmd, file, args)
			if err != nil {
				return err
			}

			delim, _ := utf8.DecodeRuneInString(delimiter)

			return printLines(cmd, paragraph.Split(text, delim, maxLength))
		},
	}

	cmd.Flags().StringVarP(&file, flagFile, "f", "", "Read text from file (- for stdin)")
	cmd.Flags().IntVarP(&maxLength, "max-length", "n", paragraph.DefaultMaxLength, "Maximum chunk length in characters")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", string(paragraph.DefaultDelimiter), "Preferred split character")

	return cmd
}
