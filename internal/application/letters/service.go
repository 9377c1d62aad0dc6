package letters

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/avdeyev/mailtriage/internal/domain/letters"
)

// Clock abstraction so time is injectable in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TextExtractor port — yields plain text from an uploaded document.
type TextExtractor interface {
	ExtractText(filename, contentType string, data []byte) (string, error)
}

// UploadArchive port — keeps the original uploaded document for audit.
type UploadArchive interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service implements the analysis use-cases. Safe for concurrent use:
// the only shared state is the wiring set at construction.
//
// Gen == nil means the generation service was not configured at
// startup; every analysis then takes the heuristic path. Generation or
// extraction failures degrade to a placeholder result — the output
// contract (every field populated) holds on every terminal path.
type Service struct {
	Repo      domain.Repository
	Gen       domain.Generator
	Prompt    domain.PromptBuilder
	Extractor TextExtractor
	Archive   UploadArchive
	Clock     Clock
}

// AnalyzeCommand is one orchestration request.
type AnalyzeCommand struct {
	Text       string
	SenderRole string
}

// Analyze runs the full pipeline for raw text and appends the record
// to the ledger. The only caller-visible failures are empty input and
// ledger errors.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.Message, error) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	analysis := s.analyzeText(ctx, text, cmd.SenderRole)

	msg := &domain.Message{
		ID:        domain.MessageID(uuid.New().String()),
		InputText: text,
		Analysis:  analysis,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// UploadCommand carries one uploaded document.
type UploadCommand struct {
	Filename    string
	ContentType string
	Data        []byte
	SenderRole  string
}

// AnalyzeUpload extracts text from a document, archives the original
// when an archive is wired, and runs the same pipeline. Extraction
// failures surface to the caller as client-input errors; archive
// failures are logged and never fail the analysis.
func (s *Service) AnalyzeUpload(ctx context.Context, cmd UploadCommand) (*domain.Message, error) {
	text, err := s.Extractor.ExtractText(cmd.Filename, cmd.ContentType, cmd.Data)
	if err != nil {
		return nil, err
	}

	msg, err := s.Analyze(ctx, AnalyzeCommand{Text: text, SenderRole: cmd.SenderRole})
	if err != nil {
		return nil, err
	}

	if s.Archive != nil {
		key := string(msg.ID) + "/" + cmd.Filename
		if url, aerr := s.Archive.Store(ctx, key, cmd.Data, cmd.ContentType); aerr != nil {
			log.Printf("upload archive failed for %s: %v", msg.ID, aerr)
		} else {
			log.Printf("original document archived: id=%s url=%s", msg.ID, url)
		}
	}
	return msg, nil
}

// History returns the most recent records, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*domain.Message, error) {
	return s.Repo.Latest(ctx, limit)
}

// Get returns a single record by id.
func (s *Service) Get(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	return s.Repo.Get(ctx, id)
}

// analyzeText picks the generation path or the heuristic path and
// always returns a fully populated analysis.
func (s *Service) analyzeText(ctx context.Context, text, role string) domain.Analysis {
	if s.Gen == nil {
		return s.heuristicAnalysis(text, role)
	}

	raw, err := s.Gen.Complete(ctx, s.Prompt.Build(text))
	if err != nil {
		log.Printf("generation call failed, degrading: %v", err)
		return s.placeholderAnalysis()
	}

	fields, err := domain.ExtractJSON(raw, s.Prompt.ExpectedKeys())
	if err != nil {
		// The error already carries a truncated raw-output snippet.
		log.Printf("generation output unusable, degrading: %v", err)
		return s.placeholderAnalysis()
	}

	category := domain.NormalizeCategory(fields["category"])
	return domain.Analysis{
		Category:   category,
		SLA:        domain.NormalizeSLA(fields["time_to_reply"], category),
		Tone:       domain.NormalizeTone(fields["reply_style"]),
		Parameters: domain.DecodeParameters(fields["parameters"]),
		ReplyDraft: fields["reply_draft"],
		Summary:    fields["summary"],
		Department: orDefault(fields["department"], domain.RouteDepartment(category)),
		Risks:      orDefault(fields["risks"], domain.DefaultValue),
		Degraded:   false,
	}
}

// heuristicAnalysis is the no-model path: deterministic keyword
// classification plus canned drafts.
func (s *Service) heuristicAnalysis(text, role string) domain.Analysis {
	category := domain.Classify(text)
	return domain.Analysis{
		Category:   category,
		SLA:        domain.DetectSLA(category),
		Tone:       domain.DetectTone(role),
		Parameters: map[string]string{},
		ReplyDraft: domain.CannedReply(category),
		Summary:    excerpt(text, 160),
		Department: domain.RouteDepartment(category),
		Risks:      domain.DefaultValue,
		Degraded:   true,
	}
}

// placeholderAnalysis is the degraded completion after a generation or
// parse failure: the category is explicitly undetermined and the draft
// tells the operator the assistant was unavailable.
func (s *Service) placeholderAnalysis() domain.Analysis {
	return domain.Analysis{
		Category:   domain.CategoryUndetermined,
		SLA:        domain.DetectSLA(domain.CategoryUndetermined),
		Tone:       domain.ToneNeutral,
		Parameters: map[string]string{},
		ReplyDraft: "Автоматическая обработка временно недоступна. Письмо будет рассмотрено сотрудником.",
		Summary:    domain.DefaultSummary,
		Department: domain.RouteDepartment(domain.CategoryUndetermined),
		Risks:      domain.DefaultValue,
		Degraded:   true,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// excerpt truncates at a word boundary for the heuristic summary.
func excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	truncated := string(runes[:max])
	if idx := strings.LastIndex(truncated, " "); idx > 0 {
		truncated = truncated[:idx]
	}
	return truncated + "..."
}
