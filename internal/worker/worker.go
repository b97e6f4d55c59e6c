// Package worker provides a NATS worker that processes text normalization jobs.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/book-expert/events"
	"github.com/book-expert/logger"
	"github.com/book-expert/text-normalizer/internal/core"
	"github.com/book-expert/text-normalizer/internal/lexicon"
	"github.com/book-expert/text-normalizer/internal/paragraph"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultHandleMessageTimeout = 60 * time.Second
	defaultUploadConcurrency    = 4
	chunkKeySuffix              = ".txt"
)

// Log messages.
const (
	logFmtJobReceived      = "Normalizing %s (%s) for workflow %s"
	logFmtJobDone          = "Workflow %s: %d chunks uploaded, %d numerals skipped"
	logFmtJobFailed        = "Workflow %s failed (%s): %v"
	logFmtReplyFailed      = "Failed to publish reply for workflow %s: %v"
	logFmtCleanupFailed    = "Failed to delete chunk %s after failed job: %v"
	logFmtNoReplySubject   = "Workflow %s has no reply subject, result dropped"
	logFmtSkippedNumeral   = "Workflow %s: numeral %q left unexpanded: %s"
	errFmtSubscribe        = "failed to subscribe to subject %s: %w"
	errFmtDrain            = "failed to drain subscription: %w"
	errFmtUnmarshal        = "%w: failed to unmarshal event: %v"
	errFmtDownload         = "failed to download text data for key '%s': %w"
	errFmtNormalize        = "failed to normalize text '%s': %w"
	errFmtUploadChunk      = "failed to upload chunk %d as '%s': %w"
	errFmtMarshalReply     = "failed to marshal reply event: %w"
	errFmtPublishReply     = "failed to publish reply event: %w"
	errFmtNegativeMaxChunk = "%w: got %d"
)

var (
	// ErrInvalidRequest marks jobs that can never succeed as sent.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTextKeyEmpty indicates that the request names no text object.
	ErrTextKeyEmpty = fmt.Errorf("%w: text_key cannot be empty", ErrInvalidRequest)
	// ErrLanguageEmpty indicates that the request names no language.
	ErrLanguageEmpty = fmt.Errorf("%w: language cannot be empty", ErrInvalidRequest)
	// ErrMaxChunkLengthNegative indicates a negative chunk length override.
	ErrMaxChunkLengthNegative = fmt.Errorf("%w: max_chunk_length cannot be negative", ErrInvalidRequest)
	// ErrTextNotUTF8 indicates a text object that is not valid UTF-8.
	ErrTextNotUTF8 = fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidRequest)
)

// Options tunes job processing. Zero values select the defaults.
type Options struct {
	Subject           string
	QueueGroup        string
	MaxChunkLength    int
	UploadConcurrency int
	Timeout           time.Duration
}

// NatsWorker listens for normalization jobs on a NATS subject and processes them.
type NatsWorker struct {
	natsConnection *nats.Conn
	textStore      core.ObjectStore
	chunkStore     core.ObjectStore
	normalizer     core.TextNormalizer
	options        Options
	log            *logger.Logger
}

// NewNatsWorker creates a new instance of a NATS worker. Raw text is read
// from textStore and chunks are written to chunkStore; both may be the same
// store.
func NewNatsWorker(
	natsConnection *nats.Conn,
	textStore core.ObjectStore,
	chunkStore core.ObjectStore,
	normalizer core.TextNormalizer,
	options Options,
	log *logger.Logger,
) (*NatsWorker, error) {
	if options.MaxChunkLength < 1 {
		options.MaxChunkLength = paragraph.DefaultMaxLength
	}

	if options.UploadConcurrency < 1 {
		options.UploadConcurrency = defaultUploadConcurrency
	}

	if options.Timeout <= 0 {
		options.Timeout = defaultHandleMessageTimeout
	}

	return &NatsWorker{
		natsConnection: natsConnection,
		textStore:      textStore,
		chunkStore:     chunkStore,
		normalizer:     normalizer,
		options:        options,
		log:            log,
	}, nil
}

// Run starts the worker and begins listening for messages. It blocks until
// ctx is done and then drains the subscription.
func (w *NatsWorker) Run(ctx context.Context) error {
	var (
		sub *nats.Subscription
		err error
	)

	if w.options.QueueGroup != "" {
		sub, err = w.natsConnection.QueueSubscribe(w.options.Subject, w.options.QueueGroup, w.handleMessage)
	} else {
		sub, err = w.natsConnection.Subscribe(w.options.Subject, w.handleMessage)
	}

	if err != nil {
		return fmt.Errorf(errFmtSubscribe, w.options.Subject, err)
	}

	<-ctx.Done()

	drainErr := sub.Drain()
	if drainErr != nil {
		return fmt.Errorf(errFmtDrain, drainErr)
	}

	return nil
}

func (w *NatsWorker) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), w.options.Timeout)
	defer cancel()

	event, err := w.parseAndValidateEvent(msg)
	if err != nil {
		var header events.EventHeader
		if event != nil {
			header = event.Header
		}

		w.fail(msg, header, err)

		return
	}

	w.log.Info(logFmtJobReceived, event.TextKey, event.Language, event.Header.WorkflowID)

	reply, err := w.processJob(ctx, event)
	if err != nil {
		w.fail(msg, event.Header, err)

		return
	}

	w.log.Info(logFmtJobDone, event.Header.WorkflowID, reply.ChunkCount, len(reply.Skipped))

	w.respond(msg, event.Header.WorkflowID, reply)
}

// processJob downloads the text, normalizes and splits it and uploads the
// chunks in reading order.
func (w *NatsWorker) processJob(
	ctx context.Context,
	event *core.NormalizationRequestedEvent,
) (*core.TextNormalizedEvent, error) {
	raw, err := w.textStore.Download(ctx, event.TextKey)
	if err != nil {
		return nil, fmt.Errorf(errFmtDownload, event.TextKey, err)
	}

	if !utf8.Valid(raw) {
		return nil, ErrTextNotUTF8
	}

	text := norm.NFC.String(string(raw))

	result, err := w.normalizer.NormalizeDetailed(ctx, text, event.Language)
	if err != nil {
		return nil, fmt.Errorf(errFmtNormalize, event.TextKey, err)
	}

	for _, skipped := range result.Skipped {
		w.log.Warn(logFmtSkippedNumeral, event.Header.WorkflowID, skipped.Literal, skipped.Reason)
	}

	var chunks []string
	if result.Text != "" {
		maxLength := event.MaxChunkLength
		if maxLength == 0 {
			maxLength = w.options.MaxChunkLength
		}

		chunks = paragraph.NewSplitter(maxLength).Split(result.Text)
	}

	keys, err := w.uploadChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	return &core.TextNormalizedEvent{
		Header:     replyHeader(event.Header),
		Language:   event.Language,
		ChunkKeys:  keys,
		ChunkCount: len(keys),
		Skipped:    result.Skipped,
	}, nil
}

// uploadChunks stores every chunk under a fresh key. The returned keys keep
// the order of chunks. On failure the chunks already written are removed.
func (w *NatsWorker) uploadChunks(ctx context.Context, chunks []string) ([]string, error) {
	keys := make([]string, len(chunks))
	for i := range chunks {
		keys[i] = uuid.NewString() + chunkKeySuffix
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(w.options.UploadConcurrency)

	for i, chunk := range chunks {
		group.Go(func() error {
			err := w.chunkStore.Upload(groupCtx, keys[i], []byte(chunk))
			if err != nil {
				return fmt.Errorf(errFmtUploadChunk, i, keys[i], err)
			}

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		w.cleanup(keys)

		return nil, err
	}

	return keys, nil
}

func (w *NatsWorker) cleanup(keys []string) {
	ctx, cancel := context.WithTimeout(context.Background(), w.options.Timeout)
	defer cancel()

	for _, key := range keys {
		err := w.chunkStore.Delete(ctx, key)
		if err != nil {
			w.log.Warn(logFmtCleanupFailed, key, err)
		}
	}
}

func (w *NatsWorker) fail(msg *nats.Msg, header events.EventHeader, err error) {
	code := FailureCode(err)

	w.log.Error(logFmtJobFailed, header.WorkflowID, code, err)

	w.respond(msg, header.WorkflowID, &core.NormalizationFailedEvent{
		Header: replyHeader(header),
		Code:   code,
		Reason: err.Error(),
	})
}

func (w *NatsWorker) respond(msg *nats.Msg, workflowID string, reply any) {
	if msg.Reply == "" {
		w.log.Warn(logFmtNoReplySubject, workflowID)

		return
	}

	err := publishReplyEvent(msg, reply)
	if err != nil {
		w.log.Error(logFmtReplyFailed, workflowID, err)
	}
}

// publishReplyEvent marshals and responds with the reply event.
func publishReplyEvent(msg *nats.Msg, replyEvent any) error {
	replyData, err := json.Marshal(replyEvent)
	if err != nil {
		return fmt.Errorf(errFmtMarshalReply, err)
	}

	err = msg.Respond(replyData)
	if err != nil {
		return fmt.Errorf(errFmtPublishReply, err)
	}

	return nil
}

// parseAndValidateEvent returns the decoded event even when validation fails
// so the failure reply can carry its header.
func (w *NatsWorker) parseAndValidateEvent(msg *nats.Msg) (*core.NormalizationRequestedEvent, error) {
	var event core.NormalizationRequestedEvent

	err := json.Unmarshal(msg.Data, &event)
	if err != nil {
		return nil, fmt.Errorf(errFmtUnmarshal, ErrInvalidRequest, err)
	}

	if event.TextKey == "" {
		return &event, ErrTextKeyEmpty
	}

	if event.Language == "" {
		return &event, ErrLanguageEmpty
	}

	_, err = lexicon.Lookup(event.Language)
	if err != nil {
		return &event, err
	}

	if event.MaxChunkLength < 0 {
		return &event, fmt.Errorf(errFmtNegativeMaxChunk, ErrMaxChunkLengthNegative, event.MaxChunkLength)
	}

	return &event, nil
}

// replyHeader keeps the workflow identity of the request under a new event ID.
func replyHeader(request events.EventHeader) events.EventHeader {
	return events.EventHeader{
		Timestamp:  time.Now(),
		WorkflowID: request.WorkflowID,
		EventID:    uuid.NewString(),
		UserID:     request.UserID,
		TenantID:   request.TenantID,
	}
}

// FailureCode maps a job error to the code carried by NormalizationFailedEvent.
func FailureCode(err error) string {
	switch {
	case errors.Is(err, core.ErrUnsupportedLanguage):
		return core.FailureUnsupportedLanguage
	case errors.Is(err, core.ErrTranslationFailure):
		return core.FailureTranslation
	case errors.Is(err, ErrInvalidRequest):
		return core.FailureInvalidRequest
	default:
		return core.FailureInternal
	}
}
