package store

import (
	"context"

	"github.com/uptrace/bun"
)

// Sessions is the read/write surface for practice-session records
type Sessions interface {
	Create(ctx context.Context, record *Session) (*Session, error)
	ByUser(ctx context.Context, userID int64) ([]*Session, error)
}

type sessions struct {
	db *bun.DB
}

var _ Sessions = (*sessions)(nil)

// NewSessions returns the bun-backed Sessions repository
func NewSessions(db *bun.DB) Sessions {
	return &sessions{db: db}
}

func (r *sessions) Create(ctx context.Context, record *Session) (*Session, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *sessions) ByUser(ctx context.Context, userID int64) ([]*Session, error) {
	var records []*Session
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("date DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}
