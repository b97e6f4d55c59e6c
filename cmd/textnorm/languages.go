package main

import (
	"fmt"

	"github.com/book-expert/text-normalizer/internal/lexicon"
	"github.com/spf13/cobra"
)

const languageLineFormat = "%s\tterminator=%q\ttranslate_dates=%t\tnative_cardinals=%t\n"

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, code := range lexicon.Codes() {
				language, err := lexicon.Lookup(code)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), languageLineFormat,
					language.Code, language.Terminator, language.TranslateDates, language.NativeCardinals)
				if err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}

			return nil
		},
	}
}
