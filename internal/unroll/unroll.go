// Package unroll splits a raw conversations.json export into one enriched
// file per conversation, organized into MM-YYYY month folders. Enrichment
// computes the meta block (message, token, media and duration stats) that the
// aggregation stage later consumes; the original message tree is passed
// through untouched.
package unroll

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"chatwrapped/internal/record"
)

// rawConversation is one element of the export array. The mapping is kept
// raw so unknown per-message fields survive the round trip.
type rawConversation struct {
	ID               string          `json:"id"`
	ConversationID   string          `json:"conversation_id"`
	Title            string          `json:"title"`
	CreateTime       *float64        `json:"create_time"`
	UpdateTime       *float64        `json:"update_time"`
	DefaultModelSlug string          `json:"default_model_slug"`
	Voice            *string         `json:"voice"`
	IsArchived       bool            `json:"is_archived"`
	IsStarred        *bool           `json:"is_starred"`
	Mapping          json.RawMessage `json:"mapping"`
	SafeURLs         []string        `json:"safe_urls"`
	GizmoID          *string         `json:"gizmo_id"`
}

// enrichedConversation is the per-conversation output document.
type enrichedConversation struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Timestamps record.Timestamps `json:"timestamps"`
	Meta       *record.Meta      `json:"meta"`
	IsArchived bool              `json:"is_archived"`
	IsStarred  *bool             `json:"is_starred,omitempty"`
	Mapping    json.RawMessage   `json:"mapping"`
	SafeURLs   []string          `json:"safe_urls,omitempty"`
	GizmoID    *string           `json:"gizmo_id,omitempty"`
}

// Result is the unroll accounting.
type Result struct {
	Processed int
	Skipped   int
	PerMonth  map[string]int
}

// Run reads the export at inputPath and writes one enriched JSON file per
// conversation under outputDir. Conversations without a creation time cannot
// be placed in a month folder and are skipped.
func Run(inputPath, outputDir string, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("unroll: opening export: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("unroll: reading export: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("unroll: export must be a JSON array, got %v", tok)
	}

	result := &Result{PerMonth: map[string]int{}}
	for dec.More() {
		var raw rawConversation
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("unroll: decoding conversation %d: %w", result.Processed+result.Skipped, err)
		}

		if raw.CreateTime == nil || *raw.CreateTime == 0 {
			logger.Warn("skipping conversation without create_time", "id", conversationID(&raw))
			result.Skipped++
			continue
		}

		enriched, err := enrich(&raw)
		if err != nil {
			return nil, fmt.Errorf("unroll: enriching %s: %w", conversationID(&raw), err)
		}

		month := monthFolder(*raw.CreateTime)
		if err := writeConversation(outputDir, month, enriched); err != nil {
			return nil, err
		}
		result.Processed++
		result.PerMonth[month]++
	}

	logger.Info("unroll finished",
		"processed", result.Processed, "skipped", result.Skipped, "months", len(result.PerMonth))
	return result, nil
}

func conversationID(raw *rawConversation) string {
	if raw.ID != "" {
		return raw.ID
	}
	if raw.ConversationID != "" {
		return raw.ConversationID
	}
	return "unknown"
}

// monthFolder names the output folder for a unix creation time.
func monthFolder(unix float64) string {
	t := time.Unix(int64(unix), 0).UTC()
	return fmt.Sprintf("%02d-%d", int(t.Month()), t.Year())
}

func isoTimestamp(unix *float64) string {
	if unix == nil || *unix == 0 {
		return ""
	}
	sec := int64(*unix)
	nsec := int64((*unix - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format("2006-01-02T15:04:05.999999")
}

func enrich(raw *rawConversation) (*enrichedConversation, error) {
	var mapping map[string]record.Node
	if len(raw.Mapping) > 0 {
		if err := json.Unmarshal(raw.Mapping, &mapping); err != nil {
			return nil, fmt.Errorf("decoding mapping: %w", err)
		}
	}

	meta := computeMeta(mapping)
	meta.PrimaryModel = raw.DefaultModelSlug
	meta.IsVoiceConversation = raw.Voice != nil
	meta.VoiceName = raw.Voice

	rawMapping := raw.Mapping
	if len(rawMapping) == 0 {
		rawMapping = json.RawMessage("{}")
	}

	return &enrichedConversation{
		ID:    conversationID(raw),
		Title: raw.Title,
		Timestamps: record.Timestamps{
			CreatedAt:   isoTimestamp(raw.CreateTime),
			UpdatedAt:   isoTimestamp(raw.UpdateTime),
			CreatedUnix: raw.CreateTime,
			UpdatedUnix: raw.UpdateTime,
		},
		Meta:       meta,
		IsArchived: raw.IsArchived,
		IsStarred:  raw.IsStarred,
		Mapping:    rawMapping,
		SafeURLs:   raw.SafeURLs,
		GizmoID:    raw.GizmoID,
	}, nil
}

// computeMeta flattens the message tree and tallies the conversation stats.
// Visually hidden messages and empty text messages do not count.
func computeMeta(mapping map[string]record.Node) *record.Meta {
	meta := &record.Meta{
		MessagesByRole: map[string]int{},
		TokensByRole:   map[string]int{},
		ModelsUsed:     []string{},
	}

	models := map[string]bool{}
	var firstTime, lastTime float64

	for _, node := range mapping {
		msg := node.Message
		if msg == nil || msg.Metadata.IsVisuallyHidden {
			continue
		}

		text := extractText(msg.Content.Parts)
		if text == "" && msg.Content.ContentType == "text" {
			continue
		}

		role := msg.Author.Role
		if role == "" {
			role = "unknown"
		}
		tokens := estimateTokens(text)

		meta.TotalMessages++
		meta.MessagesByRole[role]++
		meta.TokensByRole[role] += tokens
		meta.TotalTokens += tokens
		switch role {
		case "user":
			meta.UserTokens += tokens
		case "assistant":
			meta.AssistantTokens += tokens
		}

		if slug := msg.Metadata.ModelSlug; slug != "" {
			models[slug] = true
		}

		for _, part := range msg.Content.Parts {
			if part.IsText() {
				continue
			}
			switch part.ContentType {
			case "image_asset_pointer":
				meta.HasImages = true
				meta.ImageCount++
			case "audio_transcription":
				meta.HasAudio = true
				meta.AudioCount++
			}
		}

		if msg.CreateTime != nil && *msg.CreateTime > 0 {
			at := *msg.CreateTime
			if firstTime == 0 || at < firstTime {
				firstTime = at
			}
			if at > lastTime {
				lastTime = at
			}
		}

		meta.WordCount += len(strings.Fields(text))
	}

	for slug := range models {
		meta.ModelsUsed = append(meta.ModelsUsed, slug)
	}
	sort.Strings(meta.ModelsUsed)

	if firstTime > 0 && lastTime > 0 {
		duration := lastTime - firstTime
		meta.DurationSeconds = &duration
		human := formatDuration(duration)
		meta.DurationHuman = &human
	}
	return meta
}

// extractText joins plain string parts and audio transcriptions, one per
// line, mirroring how a transcript reads.
func extractText(parts []record.Part) string {
	var texts []string
	for _, part := range parts {
		if part.IsText() {
			texts = append(texts, part.Text)
		} else if part.ContentType == "audio_transcription" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// estimateTokens approximates tokens as one per four characters.
func estimateTokens(text string) int {
	return len(text) / 4
}

func formatDuration(seconds float64) string {
	s := int(seconds)
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	default:
		return fmt.Sprintf("%dh %dm", s/3600, (s%3600)/60)
	}
}

func writeConversation(outputDir, month string, conv *enrichedConversation) error {
	dir := filepath.Join(outputDir, month)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unroll: creating %s: %w", dir, err)
	}

	name := conv.ID
	if name == "" {
		name = "unknown"
	}

	path := filepath.Join(dir, name+".json")
	for i := 1; fileExists(path); i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.json", name, i))
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("unroll: encoding %s: %w", conv.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unroll: writing %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
