// Package classify enriches unrolled conversations with LLM-extracted
// metadata: taxonomy labels, quality scores and named entities. Each input
// file gains an llm_meta block and is written to the output directory under
// the same month folder. Files already present in the output are skipped, so
// interrupted runs resume where they left off.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"chatwrapped/internal/config"
	"chatwrapped/internal/pkg/async"
	"chatwrapped/internal/record"
)

// maxTranscriptChars caps the conversation text sent to the model.
const maxTranscriptChars = 500_000

// ErrMissingAPIKey is returned when no OpenAI credential is configured.
var ErrMissingAPIKey = errors.New("classify: OPENAI_API_KEY is not set")

// Classifier drives the enrichment stage.
type Classifier struct {
	client      openai.Client
	model       string
	concurrency int
	maxRetries  int
	logger      *slog.Logger
}

// Result is the classification accounting.
type Result struct {
	Classified      int
	SkippedExisting int
	Failures        map[string]error
}

// New builds a classifier from configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Classifier, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client:      openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
		model:       cfg.ClassifierModel,
		concurrency: cfg.ClassifierConcurrency,
		maxRetries:  cfg.ClassifierMaxRetries,
		logger:      logger,
	}, nil
}

// Run classifies every conversation under inputDir into outputDir. Per-file
// failures are collected, not fatal: one bad conversation must not lose an
// expensive multi-hour run.
func (c *Classifier) Run(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	var relPaths []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		relPaths = append(relPaths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("classify: walking %s: %w", inputDir, err)
	}

	result := &Result{Failures: map[string]error{}}
	var tasks []async.Task[struct{}]
	for _, rel := range relPaths {
		outPath := filepath.Join(outputDir, rel)
		if _, err := os.Stat(outPath); err == nil {
			result.SkippedExisting++
			continue
		}
		rel := rel
		tasks = append(tasks, async.Task[struct{}]{
			Name: rel,
			Execute: func(ctx context.Context) (struct{}, error) {
				return struct{}{}, c.classifyFile(ctx, filepath.Join(inputDir, rel), outPath)
			},
		})
	}

	c.logger.Info("classification starting",
		"pending", len(tasks), "skipped_existing", result.SkippedExisting, "model", c.model)

	results := async.NewPool[struct{}](c.concurrency).Execute(ctx, tasks)
	for name, r := range results {
		if r.Err != nil {
			result.Failures[name] = r.Err
			c.logger.Error("classification failed", "file", name, "error", r.Err)
			continue
		}
		result.Classified++
	}

	c.logger.Info("classification finished",
		"classified", result.Classified, "failed", len(result.Failures))
	return result, nil
}

func (c *Classifier) classifyFile(ctx context.Context, inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	meta, err := c.classify(ctx, &rec)
	if err != nil {
		return err
	}

	// Merge into the raw document so fields outside the known schema
	// survive the round trip.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding raw document: %w", err)
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	doc["llm_meta"] = encoded

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

func (c *Classifier) classify(ctx context.Context, rec *record.Record) (*record.LLMMeta, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "ConversationMetadata",
			Schema:      classificationSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Conversation metadata JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:        c.model,
		Instructions: openai.String(systemPrompt()),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(userPrompt(rec), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{Format: format},
	}

	resp, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var cl classification
	output := strings.TrimSpace(resp.OutputText())
	if err := json.Unmarshal([]byte(output), &cl); err != nil {
		return nil, fmt.Errorf("decoding model output: %w (prefix=%q)", err, truncate(output, 200))
	}
	return cl.toLLMMeta(), nil
}

// callWithRetry retries transient API failures with a growing backoff. Rate
// limits get a longer first wait than server errors.
func (c *Classifier) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		resp, err := c.client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt == c.maxRetries || !isRetryable(err) {
			break
		}

		wait := time.Duration(attempt+1) * 5 * time.Second
		if isRateLimit(err) {
			wait = time.Duration(attempt+1) * 30 * time.Second
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("classify: request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func isRateLimit(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "rate limit") || strings.Contains(s, "429")
}

func isRetryable(err error) bool {
	if isRateLimit(err) {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, marker := range []string{"500", "502", "503", "504", "timeout", "connection reset"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
