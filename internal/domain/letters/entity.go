package letters

import (
	"sort"
	"strings"
	"time"
)

// MessageID tipe untuk Message
type MessageID string

// Category enum — closed list, mirrors the prompt contract
type Category string

const (
	CategoryComplaint   Category = "Официальная жалоба"
	CategoryInfoRequest Category = "Запрос информации"
	CategoryUrgent      Category = "Срочный запрос"
	CategoryRegulatory  Category = "Регуляторный запрос"
	CategoryPartnership Category = "Партнёрство"
	CategorySpam        Category = "Спам"
	CategoryGeneral     Category = "Общее письмо"

	// CategoryUndetermined is the sentinel used when the generation
	// service produced output we could not classify.
	CategoryUndetermined Category = "undetermined"
)

// SLATier enum
type SLATier string

const (
	SLALow      SLATier = "low"
	SLAMedium   SLATier = "medium"
	SLAHigh     SLATier = "high"
	SLACritical SLATier = "critical"
)

// Tone enum
type Tone string

const (
	ToneNeutral      Tone = "neutral"
	ToneCorporate    Tone = "corporate"
	ToneFormal       Tone = "formal"
	ToneStrictFormal Tone = "strict-formal"
	ToneSemiFormal   Tone = "semi-formal"
)

// Sentinel values for fields the pipeline could not determine.
// Every Analysis field is always populated; consumers never branch on
// missing data.
const (
	DefaultValue   = "undetermined"
	DefaultSummary = "no summary"
)

// Analysis value object — one canonical shape across schema revisions.
// New fields are strictly additive with defined fallbacks, so a consumer
// of {category, reply_draft} stays valid against the full shape.
type Analysis struct {
	Category   Category          `json:"category"`
	SLA        SLATier           `json:"time_to_reply"`
	Tone       Tone              `json:"reply_style"`
	Parameters map[string]string `json:"parameters"`
	ReplyDraft string            `json:"reply_draft"`
	Summary    string            `json:"summary"`
	Department string            `json:"department"`
	Risks      string            `json:"risks"`
	Degraded   bool              `json:"degraded"`
}

// Aggregate Root: Message — one persisted analysis record.
// Created once per analyze call, immutable afterwards.
type Message struct {
	ID        MessageID `json:"id"`
	InputText string    `json:"input_text"`
	Analysis  Analysis  `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}

// AllCategories in prompt order.
func AllCategories() []Category {
	return []Category{
		CategoryComplaint,
		CategoryInfoRequest,
		CategoryUrgent,
		CategoryRegulatory,
		CategoryPartnership,
		CategorySpam,
		CategoryGeneral,
	}
}

// NormalizeCategory maps free text onto the closed enum,
// case-insensitively. Unknown text falls back to CategoryGeneral.
func NormalizeCategory(s string) Category {
	t := strings.TrimSpace(s)
	for _, c := range AllCategories() {
		if strings.EqualFold(t, string(c)) {
			return c
		}
	}
	if strings.EqualFold(t, DefaultValue) {
		return CategoryUndetermined
	}
	return CategoryGeneral
}

// NormalizeSLA maps free text onto the tier enum; unknown text falls
// back to the category lookup.
func NormalizeSLA(s string, category Category) SLATier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SLALow):
		return SLALow
	case string(SLAMedium):
		return SLAMedium
	case string(SLAHigh):
		return SLAHigh
	case string(SLACritical):
		return SLACritical
	}
	return DetectSLA(category)
}

// NormalizeTone maps free text onto the tone enum, default neutral.
func NormalizeTone(s string) Tone {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ToneCorporate):
		return ToneCorporate
	case string(ToneFormal):
		return ToneFormal
	case string(ToneStrictFormal):
		return ToneStrictFormal
	case string(ToneSemiFormal):
		return ToneSemiFormal
	}
	return ToneNeutral
}

// EncodeParameters serializes extracted parameters as
// "key: value; key: value". Keys and values are sanitized first so the
// encoding stays trivially re-parseable: raw colons, quotes, semicolons
// and newlines are stripped per the prompt contract.
func EncodeParameters(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	// Stable order for storage and tests
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(SanitizeParameter(k))
		b.WriteString(": ")
		b.WriteString(SanitizeParameter(params[k]))
	}
	return b.String()
}

// DecodeParameters parses the "key: value; key: value" form.
// Malformed segments are skipped; the result is never nil.
func DecodeParameters(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.Index(pair, ":")
		if idx <= 0 {
			continue
		}
		k := strings.TrimSpace(pair[:idx])
		v := strings.TrimSpace(pair[idx+1:])
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// SanitizeParameter strips the characters the parameter contract
// forbids inside keys and values.
func SanitizeParameter(s string) string {
	s = strings.NewReplacer(
		":", " ",
		";", " ",
		"\"", "",
		"'", "",
		"\n", " ",
		"\r", " ",
	).Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
