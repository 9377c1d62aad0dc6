package letters

import "context"

// Repository port — append-only ledger of analysis records.
type Repository interface {
	Save(ctx context.Context, m *Message) error
	Get(ctx context.Context, id MessageID) (*Message, error)
	Latest(ctx context.Context, limit int) ([]*Message, error)
	Paginate(ctx context.Context, page, pageSize int) ([]*Message, error)
}

// Generator port — the sole boundary to the external text-generation
// service. One instruction+data prompt in, one free-text completion
// out; the completion is not guaranteed to be valid structured data.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PromptBuilder port — assembles the instruction template plus the
// raw text into one request payload and names the output keys the
// extractor validates against.
type PromptBuilder interface {
	Build(text string) string
	ExpectedKeys() []string
}
