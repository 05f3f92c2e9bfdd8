package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

const shiftColumns = `id, user_id, store_id, start_time, start_cash, end_time, expected_cash, actual_cash, variance, status, close_mode`

// ShiftRepo persistencia de turnos de caja.
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create abre un turno.
func (r *ShiftRepo) Create(ctx context.Context, s *entity.CashShift) error {
	query := `INSERT INTO cash_shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.StoreID, s.StartTime, s.StartCash, s.EndTime,
		s.ExpectedCash, s.ActualCash, s.Variance, s.Status, nullIfEmpty(s.CloseMode),
	)
	if err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// GetByID obtiene un turno; nil, nil si no existe.
func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*entity.CashShift, error) {
	return r.getOne(ctx, `SELECT `+shiftColumns+` FROM cash_shifts WHERE id = $1`, id)
}

// GetForUpdate obtiene el turno bloqueando la fila; serializa cierres concurrentes.
func (r *ShiftRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashShift, error) {
	return r.getOne(ctx, `SELECT `+shiftColumns+` FROM cash_shifts WHERE id = $1 FOR UPDATE`, id)
}

// Close persiste los campos de cierre.
func (r *ShiftRepo) Close(ctx context.Context, s *entity.CashShift) error {
	query := `
		UPDATE cash_shifts
		SET end_time = $2, expected_cash = $3, actual_cash = $4, variance = $5, status = $6, close_mode = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.EndTime, s.ExpectedCash, s.ActualCash, s.Variance, s.Status, nullIfEmpty(s.CloseMode),
	)
	if err != nil {
		return fmt.Errorf("close shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("turno %s", s.ID)
	}
	return nil
}

// ListOpenStartedBefore turnos abiertos iniciados antes de before, más antiguos primero.
func (r *ShiftRepo) ListOpenStartedBefore(ctx context.Context, before time.Time) ([]*entity.CashShift, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+shiftColumns+` FROM cash_shifts
		WHERE status = $1 AND start_time < $2
		ORDER BY start_time`, entity.ShiftStatusOpen, before)
	if err != nil {
		return nil, fmt.Errorf("list open shifts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashShift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *ShiftRepo) getOne(ctx context.Context, query string, args ...any) (*entity.CashShift, error) {
	s, err := scanShift(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return s, nil
}

func scanShift(row pgx.Row) (*entity.CashShift, error) {
	var (
		s         entity.CashShift
		closeMode *string
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.StoreID, &s.StartTime, &s.StartCash, &s.EndTime,
		&s.ExpectedCash, &s.ActualCash, &s.Variance, &s.Status, &closeMode,
	)
	if err != nil {
		return nil, err
	}
	s.CloseMode = derefString(closeMode)
	return &s, nil
}
