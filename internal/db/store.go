package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/heroic-planner/internal/models"
)

// Store wraps database access helpers for the telescope catalog.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const listTelescopesSQL = `
    SELECT id, name, kind, metadata, updated_at
    FROM heroic.telescopes
    ORDER BY id
`

const listInstrumentsSQL = `
    SELECT id, telescope_id, name
    FROM heroic.instruments
    ORDER BY telescope_id, position, id
`

// ListTelescopes returns every telescope with its instruments in catalog order.
func (s *Store) ListTelescopes(ctx context.Context) ([]models.Telescope, error) {
	rows, err := s.pool.Query(ctx, listTelescopesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	telescopes := make([]models.Telescope, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			tel       models.Telescope
			kind      string
			updatedAt time.Time
		)
		if err := rows.Scan(&tel.ID, &tel.Name, &kind, &tel.Metadata, &updatedAt); err != nil {
			return nil, err
		}
		tel.Kind = models.TelescopeKind(kind)
		tel.UpdatedAt = &updatedAt
		tel.Instruments = []models.Instrument{}
		index[tel.ID] = len(telescopes)
		telescopes = append(telescopes, tel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	instRows, err := s.pool.Query(ctx, listInstrumentsSQL)
	if err != nil {
		return nil, err
	}
	defer instRows.Close()

	for instRows.Next() {
		var inst models.Instrument
		var telescopeID string
		if err := instRows.Scan(&inst.ID, &telescopeID, &inst.Name); err != nil {
			return nil, err
		}
		if i, ok := index[telescopeID]; ok {
			telescopes[i].Instruments = append(telescopes[i].Instruments, inst)
		}
	}
	return telescopes, instRows.Err()
}

// UpsertTelescopes inserts/updates telescope and instrument records.
func (s *Store) UpsertTelescopes(ctx context.Context, telescopes []models.Telescope) error {
	if len(telescopes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	telescopeQuery := `INSERT INTO heroic.telescopes (id, name, kind, metadata, created_at, updated_at)
VALUES ($1,$2,$3,$4,NOW(),NOW())
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    kind = EXCLUDED.kind,
    metadata = EXCLUDED.metadata,
    updated_at = NOW()`

	instrumentQuery := `INSERT INTO heroic.instruments (id, telescope_id, name, position, created_at, updated_at)
VALUES ($1,$2,$3,$4,NOW(),NOW())
ON CONFLICT (id) DO UPDATE
SET telescope_id = EXCLUDED.telescope_id,
    name = EXCLUDED.name,
    position = EXCLUDED.position,
    updated_at = NOW()`

	queued := 0
	for _, t := range telescopes {
		metadata := t.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}
		batch.Queue(telescopeQuery, t.ID, t.Name, string(t.Kind), metadata)
		queued++
		for pos, inst := range t.Instruments {
			batch.Queue(instrumentQuery, inst.ID, t.ID, inst.Name, pos)
			queued++
		}
	}

	res := s.pool.SendBatch(ctx, batch)
	defer res.Close()

	for i := 0; i < queued; i++ {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}
