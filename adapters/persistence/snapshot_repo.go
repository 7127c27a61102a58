package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/howlerhq/howler-api/internal/domain/state"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

// The whole in-memory model is persisted as a single JSONB row; the
// library is bounded, so the snapshot stays small.
const snapshotSchema = `
CREATE TABLE IF NOT EXISTS howler_snapshots (
	id INT PRIMARY KEY,
	data JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const snapshotRowID = 1

var psqlSnapshot = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresSnapshotRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSnapshotRepo(db *pgxpool.Pool, log logger.Logger) (state.Repository, error) {
	if _, err := db.Exec(context.Background(), snapshotSchema); err != nil {
		return nil, apperror.NewInternal("failed to ensure snapshot table", err)
	}
	return &postgresSnapshotRepo{db: db, logger: log}, nil
}

func (r *postgresSnapshotRepo) Load(ctx context.Context) (*state.Snapshot, error) {
	query, args, err := psqlSnapshot.Select("data").
		From("howler_snapshots").
		Where(sq.Eq{"id": snapshotRowID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build snapshot query", err)
	}

	var raw []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to load snapshot", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, apperror.NewInternal("failed to decode snapshot", err)
	}
	return &snap, nil
}

func (r *postgresSnapshotRepo) Save(ctx context.Context, snap *state.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return apperror.NewInternal("failed to encode snapshot", err)
	}

	query, args, err := psqlSnapshot.Insert("howler_snapshots").
		Columns("id", "data", "updated_at").
		Values(snapshotRowID, raw, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build snapshot upsert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save snapshot", err)
	}
	return nil
}
