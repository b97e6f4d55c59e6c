// main package for the text-normalizer service
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/book-expert/logger"
	"github.com/book-expert/text-normalizer/internal/config"
	"github.com/book-expert/text-normalizer/internal/core"
	"github.com/book-expert/text-normalizer/internal/objectstore"
	"github.com/book-expert/text-normalizer/internal/spoken"
	"github.com/book-expert/text-normalizer/internal/textnorm"
	"github.com/book-expert/text-normalizer/internal/translate"
	"github.com/book-expert/text-normalizer/internal/worker"
	"github.com/nats-io/nats.go"
)

const (
	serviceName        = "text-normalizer"
	bootstrapLogFile   = "textnorm-service-bootstrap.log"
	serviceLogFile     = "textnorm-service.log"
	logFmtListening    = "Text normalizer initialized. Listening for jobs on subject: %s"
	logNoTranslator    = "No translator configured; numerals and dates for non-native languages will not be translated."
	logFmtTranslator   = "Translator at %s (cache size %d, max retries %d)"
	logFmtStoreBuckets = "Reading text from bucket %s, writing chunks to bucket %s"
)

func setupLogger(logPath, fileName string) (*logger.Logger, error) {
	log, err := logger.New(logPath, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func run() error {
	bootstrapLog, err := setupLogger(os.TempDir(), bootstrapLogFile)
	if err != nil {
		// Without a bootstrap logger only stderr is left.
		fmt.Fprintf(os.Stderr, "FATAL: Failed to create bootstrap logger: %v\n", err)

		return err
	}

	bootstrapLog.Info("Bootstrap logger created.")

	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return fmt.Errorf("failed to load configuration: %w", err)
	}

	bootstrapLog.Info("Configuration loaded successfully.")

	finalLog, err := setupLogger(cfg.Paths.BaseLogsDir, serviceLogFile)
	if err != nil {
		bootstrapLog.Error("Failed to create final logger: %v", err)

		return fmt.Errorf("failed to create final logger: %w", err)
	}

	defer func() {
		closeErr := finalLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing final logger: %v\n", closeErr)
		}
	}()

	natsConnection, err := nats.Connect(cfg.NATS.URL, nats.Name(serviceName))
	if err != nil {
		finalLog.Error("Failed to connect to NATS at %s: %v", cfg.NATS.URL, err)

		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer natsConnection.Close()

	jetstreamContext, err := natsConnection.JetStream()
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	textStore, err := objectstore.New(jetstreamContext, cfg.NATS.TextObjectStoreBucket)
	if err != nil {
		return fmt.Errorf("failed to open text object store: %w", err)
	}

	chunkStore, err := objectstore.New(jetstreamContext, cfg.NATS.ChunkObjectStoreBucket)
	if err != nil {
		return fmt.Errorf("failed to open chunk object store: %w", err)
	}

	finalLog.Info(logFmtStoreBuckets, textStore.Bucket(), chunkStore.Bucket())

	translator, err := newTranslator(cfg, finalLog)
	if err != nil {
		return err
	}

	normalizer := textnorm.New(translator, spoken.NewDateVerbalizer(), finalLog)

	natsWorker, err := worker.NewNatsWorker(
		natsConnection,
		textStore,
		chunkStore,
		normalizer,
		worker.Options{
			Subject:           cfg.NATS.NormalizationRequestedSubject,
			QueueGroup:        cfg.NATS.QueueGroup,
			MaxChunkLength:    cfg.Normalizer.MaxChunkLength,
			UploadConcurrency: cfg.Normalizer.UploadConcurrency,
			Timeout:           cfg.JobTimeout(),
		},
		finalLog,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	finalLog.System(logFmtListening, cfg.NATS.NormalizationRequestedSubject)

	err = natsWorker.Run(ctx)
	if err != nil {
		finalLog.Error("Worker stopped with error: %v", err)

		return fmt.Errorf("worker failed: %w", err)
	}

	finalLog.System("Text normalizer stopped.")

	return nil
}

// newTranslator returns nil when no translator is configured.
func newTranslator(cfg *config.Config, log *logger.Logger) (core.Translator, error) {
	if cfg.Translator.BaseURL == "" {
		log.Warn(logNoTranslator)

		return nil, nil
	}

	client, err := translate.NewClient(translate.ClientConfig{
		BaseURL:       cfg.Translator.BaseURL,
		APIKey:        cfg.Translator.APIKey,
		Timeout:       cfg.TranslateTimeout(),
		MaxRetries:    cfg.Translator.MaxRetries,
		RetryInterval: 0,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}

	cached, err := translate.NewCached(client, cfg.Translator.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator cache: %w", err)
	}

	log.Info(logFmtTranslator, cfg.Translator.BaseURL, cfg.Translator.CacheSize, cfg.Translator.MaxRetries)

	return cached, nil
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service exited with error: %v\n", err)
		os.Exit(1)
	}
}
