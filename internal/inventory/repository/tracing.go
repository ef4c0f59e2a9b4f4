package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormInventoryRepositoryWithTracing wraps GormInventoryRepository with
// spans on the mutating hot paths.
type GormInventoryRepositoryWithTracing struct {
	*GormInventoryRepository
}

// NewGormInventoryRepositoryWithTracing creates a new repository with tracing
func NewGormInventoryRepositoryWithTracing(db *gorm.DB) *GormInventoryRepositoryWithTracing {
	return &GormInventoryRepositoryWithTracing{
		GormInventoryRepository: NewGormInventoryRepository(db),
	}
}

// CreateUnits with tracing
func (r *GormInventoryRepositoryWithTracing) CreateUnitsWithContext(ctx context.Context, units []*domain.Unit, entry *domain.AdjustmentEntry) error {
	_, span := tracer.Start(ctx, "repository.CreateUnits",
		trace.WithAttributes(
			attribute.Int("units.count", len(units)),
			attribute.Int64("product.id", int64(entry.ProductID)),
		),
	)
	defer span.End()

	err := r.GormInventoryRepository.CreateUnits(units, entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("entry.id", entry.ID))
	return nil
}

// ClaimUnit with tracing
func (r *GormInventoryRepositoryWithTracing) ClaimUnitWithContext(ctx context.Context, unitID uint, stamp domain.SaleStamp, entry *domain.AdjustmentEntry) error {
	_, span := tracer.Start(ctx, "repository.ClaimUnit",
		trace.WithAttributes(
			attribute.Int64("unit.id", int64(unitID)),
			attribute.Int64("order.id", int64(stamp.OrderID)),
		),
	)
	defer span.End()

	err := r.GormInventoryRepository.ClaimUnit(unitID, stamp, entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// Reconcile with tracing
func (r *GormInventoryRepositoryWithTracing) ReconcileWithContext(ctx context.Context, removeUnitIDs []uint, addUnits []*domain.Unit, entry *domain.AdjustmentEntry) error {
	_, span := tracer.Start(ctx, "repository.Reconcile",
		trace.WithAttributes(
			attribute.Int("units.removed", len(removeUnitIDs)),
			attribute.Int("units.added", len(addUnits)),
			attribute.Int64("product.id", int64(entry.ProductID)),
		),
	)
	defer span.End()

	err := r.GormInventoryRepository.Reconcile(removeUnitIDs, addUnits, entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// CountAvailable with tracing
func (r *GormInventoryRepositoryWithTracing) CountAvailableWithContext(ctx context.Context, productID uint) (int64, error) {
	_, span := tracer.Start(ctx, "repository.CountAvailable",
		trace.WithAttributes(
			attribute.Int64("product.id", int64(productID)),
		),
	)
	defer span.End()

	count, err := r.GormInventoryRepository.CountAvailable(productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

// FindUnitBySerial with tracing
func (r *GormInventoryRepositoryWithTracing) FindUnitBySerialWithContext(ctx context.Context, serial string) (*domain.Unit, error) {
	_, span := tracer.Start(ctx, "repository.FindUnitBySerial",
		trace.WithAttributes(
			attribute.String("unit.serial", serial),
		),
	)
	defer span.End()

	unit, err := r.GormInventoryRepository.FindUnitBySerial(serial)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int64("unit.id", int64(unit.ID)))
	return unit, nil
}
