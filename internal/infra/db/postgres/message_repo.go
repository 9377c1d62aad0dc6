package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/avdeyev/mailtriage/internal/domain/letters"
)

// MessageRepository mirrors the mysql adapter for deployments backed
// by PostgreSQL (the original service ran against Postgres).
type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, input_text, category, reply_draft, summary,
       reply_style, time_to_reply, parameters, department, risks,
       degraded, created_at`

// Save appends an analysis record; records are immutable.
func (r *MessageRepository) Save(ctx context.Context, m *domain.Message) error {
	const q = `
INSERT INTO messages
  (id, input_text, category, reply_draft, summary,
   reply_style, time_to_reply, parameters, department, risks,
   degraded, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO NOTHING;
`
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.InputText,
		m.Analysis.Category, m.Analysis.ReplyDraft, m.Analysis.Summary,
		m.Analysis.Tone, m.Analysis.SLA,
		domain.EncodeParameters(m.Analysis.Parameters),
		m.Analysis.Department, m.Analysis.Risks,
		m.Analysis.Degraded, createdAt,
	)
	return err
}

func (r *MessageRepository) Get(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	const q = `
SELECT ` + messageColumns + `
FROM messages
WHERE id=$1 LIMIT 1;
`
	return scanMessage(r.db.QueryRowContext(ctx, q, id))
}

func (r *MessageRepository) Latest(ctx context.Context, limit int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT ` + messageColumns + `
FROM messages
ORDER BY created_at DESC, id DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func (r *MessageRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Message, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT ` + messageColumns + `
FROM messages
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var m domain.Message
	var params string
	var created time.Time
	if err := row.Scan(
		&m.ID, &m.InputText,
		&m.Analysis.Category, &m.Analysis.ReplyDraft, &m.Analysis.Summary,
		&m.Analysis.Tone, &m.Analysis.SLA, &params,
		&m.Analysis.Department, &m.Analysis.Risks,
		&m.Analysis.Degraded, &created,
	); err != nil {
		return nil, err
	}
	m.Analysis.Parameters = domain.DecodeParameters(params)
	m.CreatedAt = created
	return &m, nil
}

func collectMessages(rows *sql.Rows) ([]*domain.Message, error) {
	var out []*domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
