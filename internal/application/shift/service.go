package shift

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/domain/shift"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta fn con repositorios atados a una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// Service ciclo de vida del turno de caja: apertura, cierre manual (conteo ciego) y automático.
type Service struct {
	txRunner  TxRunner
	repos     repository.Repositories
	publisher ports.EventPublisher
	reporter  ports.ShiftReporter
	tolerance decimal.Decimal
	log       zerolog.Logger
	now       func() time.Time
}

// NewService construye el servicio. tolerance <= 0 usa shift.DefaultTolerance.
func NewService(
	txRunner TxRunner,
	repos repository.Repositories,
	publisher ports.EventPublisher,
	reporter ports.ShiftReporter,
	tolerance decimal.Decimal,
	log zerolog.Logger,
) *Service {
	if !tolerance.IsPositive() {
		tolerance = shift.DefaultTolerance
	}
	return &Service{
		txRunner:  txRunner,
		repos:     repos,
		publisher: publisher,
		reporter:  reporter,
		tolerance: tolerance,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// StartShift abre un turno. No impide varios turnos abiertos del mismo cajero.
func (s *Service) StartShift(ctx context.Context, userID, storeID string, in dto.StartShiftRequest) (*dto.ShiftResponse, error) {
	if userID == "" || storeID == "" {
		return nil, domain.Invalidf("user_id y store_id son obligatorios")
	}
	if in.OpeningCash.IsNegative() {
		return nil, domain.Invalidf("el efectivo inicial no puede ser negativo")
	}
	sh := &entity.CashShift{
		ID:        uuid.New().String(),
		UserID:    userID,
		StoreID:   storeID,
		StartTime: s.now(),
		StartCash: in.OpeningCash,
		Status:    entity.ShiftStatusOpen,
	}
	if err := s.repos.Shifts.Create(ctx, sh); err != nil {
		return nil, err
	}
	s.publish(ctx, sh)
	return toShiftResponse(sh), nil
}

// EndShift cierre manual: esperado = inicial + ventas de la tienda desde el inicio del turno;
// diferencia = contado - esperado; FLAGGED si supera la tolerancia. La verificación de estado
// se hace con la fila bloqueada, así un turno no puede cerrarse dos veces.
func (s *Service) EndShift(ctx context.Context, shiftID string, in dto.EndShiftRequest) (*dto.ShiftResponse, error) {
	if in.ClosingCash.IsNegative() {
		return nil, domain.Invalidf("el efectivo contado no puede ser negativo")
	}
	return s.close(ctx, shiftID, func(sh *entity.CashShift, expected decimal.Decimal, at time.Time) error {
		return shift.Close(sh, expected, in.ClosingCash, s.tolerance, at)
	})
}

// AutoEndShift cierre desatendido: el contado se fuerza al esperado, diferencia 0, siempre CLOSED.
func (s *Service) AutoEndShift(ctx context.Context, shiftID string) (*dto.ShiftResponse, error) {
	return s.close(ctx, shiftID, func(sh *entity.CashShift, expected decimal.Decimal, at time.Time) error {
		return shift.AutoClose(sh, expected, at)
	})
}

// GetShift obtiene un turno por ID.
func (s *Service) GetShift(ctx context.Context, shiftID string) (*dto.ShiftResponse, error) {
	sh, err := s.repos.Shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.NotFoundf("turno %s", shiftID)
	}
	return toShiftResponse(sh), nil
}

// AutoCloseStale cierra automáticamente los turnos abiertos hace más de maxOpen.
// Un turno que otro proceso cerró mientras tanto se ignora.
func (s *Service) AutoCloseStale(ctx context.Context, maxOpen time.Duration) (int, error) {
	stale, err := s.repos.Shifts.ListOpenStartedBefore(ctx, s.now().Add(-maxOpen))
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, sh := range stale {
		if _, err := s.AutoEndShift(ctx, sh.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return closed, err
		}
		closed++
	}
	return closed, nil
}

type closeFunc func(sh *entity.CashShift, expected decimal.Decimal, at time.Time) error

func (s *Service) close(ctx context.Context, shiftID string, apply closeFunc) (*dto.ShiftResponse, error) {
	var closed *entity.CashShift
	err := s.txRunner.Run(ctx, func(repos repository.Repositories) error {
		sh, err := repos.Shifts.GetForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}
		if sh == nil || !sh.IsOpen() {
			return domain.NotFoundf("turno abierto %s", shiftID)
		}
		sales, err := repos.Sales.SumGrandTotalSince(ctx, sh.StoreID, sh.StartTime)
		if err != nil {
			return err
		}
		if err := apply(sh, shift.ExpectedCash(sh.StartCash, sales), s.now()); err != nil {
			return err
		}
		if err := repos.Shifts.Close(ctx, sh); err != nil {
			return err
		}
		closed = sh
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := s.log.Info()
	if closed.Status == entity.ShiftStatusFlagged {
		ev = s.log.Warn()
	}
	ev.Str("shift_id", closed.ID).Str("store_id", closed.StoreID).Str("status", closed.Status).
		Str("variance", closed.Variance.StringFixed(2)).Msg("turno cerrado")

	s.publish(ctx, closed)
	if s.reporter != nil {
		if err := s.reporter.SendShiftReport(ctx, closed); err != nil {
			s.log.Warn().Err(err).Str("shift_id", closed.ID).Msg("no se pudo enviar el reporte de fin de turno")
		}
	}
	return toShiftResponse(closed), nil
}

func (s *Service) publish(ctx context.Context, sh *entity.CashShift) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, entity.EventShiftUpdate, sh.StoreID, toShiftResponse(sh)); err != nil {
		s.log.Warn().Err(err).Str("shift_id", sh.ID).Msg("no se pudo publicar shift-update")
	}
}

func toShiftResponse(sh *entity.CashShift) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID:           sh.ID,
		UserID:       sh.UserID,
		StoreID:      sh.StoreID,
		StartTime:    sh.StartTime,
		StartCash:    sh.StartCash,
		EndTime:      sh.EndTime,
		ExpectedCash: sh.ExpectedCash,
		ActualCash:   sh.ActualCash,
		Variance:     sh.Variance,
		Status:       sh.Status,
		CloseMode:    sh.CloseMode,
	}
}
