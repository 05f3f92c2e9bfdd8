package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de fidelización (derivados de TotalSpent).
const (
	TierStandard = "STANDARD"
	TierSilver   = "SILVER"
	TierGold     = "GOLD"
	TierPlatinum = "PLATINUM"
)

// Customer cliente de una tienda con su acumulado de compras y puntos.
// Tier es caché de loyalty.TierFor(TotalSpent) y se reescribe en cada actualización.
type Customer struct {
	ID            string
	StoreID       string
	Name          string
	Email         string
	Phone         string
	TotalSpent    decimal.Decimal
	LoyaltyPoints int64
	Tier          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
