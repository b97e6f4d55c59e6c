package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/book-expert/text-normalizer/internal/core"
	"github.com/book-expert/text-normalizer/internal/paragraph"
	"github.com/book-expert/text-normalizer/internal/spoken"
	"github.com/book-expert/text-normalizer/internal/textnorm"
	"github.com/book-expert/text-normalizer/internal/translate"
	"github.com/spf13/cobra"
)

const (
	defaultLanguage   = "en"
	defaultCacheSize  = 1024
	skippedLineFormat = "skipped %q: %s\n"
)

var errArgsAndFile = errors.New("cannot give both text arguments and --file")

type normalizeOptions struct {
	lang          string
	file          string
	translatorURL string
	apiKey        string
	timeout       time.Duration
	maxRetries    int
	split         int
}

// newNormalizeCmd reads logDir when the command runs, after flag parsing.
func newNormalizeCmd(logDir *string) *cobra.Command {
	var opts normalizeOptions

	cmd := &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Print the speakable form of text",
		Long: "Normalize text for a language. Text is read from the arguments, " +
			"from --file, or from stdin. Numerals that could not be expanded are " +
			"listed on stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, opts, *logDir, args)
		},
	}

	cmd.Flags().StringVarP(&opts.lang, "lang", "l", defaultLanguage, "Target language code")
	cmd.Flags().StringVarP(&opts.file, flagFile, "f", "", "Read text from file (- for stdin)")
	cmd.Flags().StringVar(&opts.translatorURL, "translator-url", "", "Translation API base URL")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Translation API key")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", translate.DefaultTimeout, "Translation request timeout")
	cmd.Flags().IntVar(&opts.maxRetries, "max-retries", translate.DefaultMaxRetries, "Translation retries")
	cmd.Flags().IntVar(&opts.split, "split", 0, "Split the result into chunks of at most this many characters")

	return cmd
}

func runNormalize(cmd *cobra.Command, opts normalizeOptions, logDir string, args []string) error {
	text, err := readInput(cmd, opts.file, args)
	if err != nil {
		return err
	}

	log, err := newLogger(logDir)
	if err != nil {
		return err
	}
	defer log.Close()

	var translator core.Translator

	if opts.translatorURL != "" {
		client, clientErr := translate.NewClient(translate.ClientConfig{
			BaseURL:       opts.translatorURL,
			APIKey:        opts.apiKey,
			Timeout:       opts.timeout,
			MaxRetries:    opts.maxRetries,
			RetryInterval: 0,
		}, log)
		if clientErr != nil {
			return clientErr
		}

		cached, cacheErr := translate.NewCached(client, defaultCacheSize)
		if cacheErr != nil {
			return cacheErr
		}

		translator = cached
	}

	normalizer := textnorm.New(translator, spoken.NewDateVerbalizer(), log)

	result, err := normalizer.NormalizeDetailed(cmd.Context(), text, opts.lang)
	if err != nil {
		log.Error("Normalization failed for %s: %v", opts.lang, err)

		return err
	}

	for _, skipped := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), skippedLineFormat, skipped.Literal, skipped.Reason)
	}

	if opts.split > 0 {
		return printLines(cmd, paragraph.NewSplitter(opts.split).Split(result.Text))
	}

	return printLines(cmd, []string{result.Text})
}

func printLines(cmd *cobra.Command, lines []string) error {
	for _, line := range lines {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), line)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return nil
}
