package record

import (
	"encoding/json"
	"sort"
	"strings"
)

// Node is one entry in the conversation message tree.
type Node struct {
	ID       string   `json:"id,omitempty"`
	Parent   *string  `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
	Message  *Message `json:"message,omitempty"`
}

// Message is a single message inside a mapping node.
type Message struct {
	ID         string          `json:"id,omitempty"`
	Author     Author          `json:"author"`
	CreateTime *float64        `json:"create_time"`
	Content    Content         `json:"content"`
	Metadata   MessageMetadata `json:"metadata,omitempty"`
}

// Author identifies who produced a message.
type Author struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
}

// Content is the payload of a message.
type Content struct {
	ContentType string `json:"content_type"`
	Parts       []Part `json:"parts,omitempty"`
}

// MessageMetadata carries the export metadata flags the pipeline reads.
type MessageMetadata struct {
	ModelSlug        string `json:"model_slug,omitempty"`
	IsVisuallyHidden bool   `json:"is_visually_hidden_from_conversation,omitempty"`
	VoiceModeMessage bool   `json:"voice_mode_message,omitempty"`
}

// Part is one element of a content parts array. The export mixes plain
// strings with typed objects (audio transcriptions, image pointers), so
// decoding is custom.
type Part struct {
	Text        string
	ContentType string
	isString    bool
}

// UnmarshalJSON accepts either a JSON string or an object carrying
// content_type and text. Other shapes (null, numbers) decode to an empty
// part, mirroring the permissive contract of the export format.
func (p *Part) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		p.isString = true
		return json.Unmarshal(data, &p.Text)
	}
	var obj struct {
		ContentType string `json:"content_type"`
		Text        string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	p.ContentType = obj.ContentType
	p.Text = obj.Text
	return nil
}

// MarshalJSON re-emits string parts as strings and typed parts as objects.
func (p Part) MarshalJSON() ([]byte, error) {
	if p.isString {
		return json.Marshal(p.Text)
	}
	return json.Marshal(struct {
		ContentType string `json:"content_type,omitempty"`
		Text        string `json:"text,omitempty"`
	}{ContentType: p.ContentType, Text: p.Text})
}

// IsText reports whether the part is a plain string part.
func (p Part) IsText() bool {
	return p.isString
}

// TextPart builds a plain string part, used by tests and fixtures.
func TextPart(text string) Part {
	return Part{Text: text, isString: true}
}

// TypedPart builds an object part with a content type.
func TypedPart(contentType, text string) Part {
	return Part{ContentType: contentType, Text: text}
}

// MessageText is one extracted user or assistant message with its word count.
type MessageText struct {
	Text       string
	WordCount  int
	CreateTime float64
}

// messagesByRole walks the mapping and collects plain-text message parts for
// the given role, ordered by create time. Each non-empty string part counts
// as one message, matching how the enrichment stage counts prompts.
func (r *Record) messagesByRole(role string) []MessageText {
	type timed struct {
		msg  MessageText
		time float64
		key  string
		part int
	}
	var collected []timed

	for nodeKey, node := range r.Mapping {
		msg := node.Message
		if msg == nil || msg.Author.Role != role {
			continue
		}
		if msg.Content.ContentType != "text" {
			continue
		}
		createTime := 0.0
		if msg.CreateTime != nil {
			createTime = *msg.CreateTime
		}
		for i, part := range msg.Content.Parts {
			if !part.IsText() || strings.TrimSpace(part.Text) == "" {
				continue
			}
			collected = append(collected, timed{
				msg: MessageText{
					Text:       part.Text,
					WordCount:  len(strings.Fields(part.Text)),
					CreateTime: createTime,
				},
				time: createTime,
				key:  nodeKey,
				part: i,
			})
		}
	}

	// Ties on create time fall back to node key so map iteration order can
	// never leak into the output.
	sort.SliceStable(collected, func(i, j int) bool {
		if collected[i].time != collected[j].time {
			return collected[i].time < collected[j].time
		}
		if collected[i].key != collected[j].key {
			return collected[i].key < collected[j].key
		}
		return collected[i].part < collected[j].part
	})

	messages := make([]MessageText, len(collected))
	for i, c := range collected {
		messages[i] = c.msg
	}
	return messages
}

// UserMessages returns the user-authored message texts in time order.
func (r *Record) UserMessages() []MessageText {
	return r.messagesByRole("user")
}

// AssistantMessages returns the assistant-authored message texts in time order.
func (r *Record) AssistantMessages() []MessageText {
	return r.messagesByRole("assistant")
}

// TotalWords sums the word counts of a message list.
func TotalWords(messages []MessageText) int {
	total := 0
	for _, m := range messages {
		total += m.WordCount
	}
	return total
}
