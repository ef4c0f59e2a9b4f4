package domain

import "time"

// Adjustment entry types.
const (
	AdjustmentImport = "import"
	AdjustmentExport = "export"
	AdjustmentManual = "adjustment"
	AdjustmentReturn = "return"
)

// AdjustmentEntry is one append-only audit row for a quantity change. Rows
// are never updated or deleted; quantity_change is always derived from
// before/after so the sign can not be supplied inconsistently.
type AdjustmentEntry struct {
	ID             string    `json:"id" gorm:"size:36;primaryKey"`
	ProductID      uint      `json:"product_id" gorm:"not null;index:idx_adjustments_product_created,priority:1"`
	UnitID         *uint     `json:"unit_id" gorm:"index"`
	Type           string    `json:"type" gorm:"not null;index"`
	QuantityBefore int64     `json:"quantity_before" gorm:"not null"`
	QuantityAfter  int64     `json:"quantity_after" gorm:"not null"`
	QuantityChange int64     `json:"quantity_change" gorm:"not null"`
	Reason         string    `json:"reason"`
	ActorUserID    uint      `json:"actor_user_id" gorm:"index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;index:idx_adjustments_product_created,priority:2"`
}

// TableName specifies the table name
func (AdjustmentEntry) TableName() string {
	return "adjustment_entries"
}

// NewAdjustmentEntry builds an entry with the change derived from the
// before/after pair.
func NewAdjustmentEntry(productID uint, unitID *uint, entryType string, before, after int64, reason string, actorID uint) *AdjustmentEntry {
	return &AdjustmentEntry{
		ProductID:      productID,
		UnitID:         unitID,
		Type:           entryType,
		QuantityBefore: before,
		QuantityAfter:  after,
		QuantityChange: after - before,
		Reason:         reason,
		ActorUserID:    actorID,
	}
}

// ValidAdjustmentType reports whether t names a known entry type.
func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentImport, AdjustmentExport, AdjustmentManual, AdjustmentReturn:
		return true
	}
	return false
}

// TransactionFilter narrows ListEntries. Zero values mean "no constraint".
type TransactionFilter struct {
	ProductID uint
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
