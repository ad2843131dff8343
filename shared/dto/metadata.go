package dto

import (
	"time"

	"hotel/shared/constant"
	"hotel/shared/model"
	"hotel/shared/timezone"
)

// Metadata is the audit trail every ledger resource carries: who created and
// last changed it, with timestamps on the hotel clock.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  formatStamp(source.CreatedAt),
		ModifiedAt: formatStamp(source.ModifiedAt),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}
}

// formatStamp leaves never-set timestamps empty instead of rendering year one.
func formatStamp(at time.Time) string {
	if at.IsZero() {
		return constant.Empty
	}

	return timezone.Format(at, constant.DateFormat)
}
