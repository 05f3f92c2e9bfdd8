package loyalty

import (
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Umbrales de nivel sobre el gasto acumulado.
var (
	SilverThreshold   = decimal.NewFromInt(1000)
	GoldThreshold     = decimal.NewFromInt(5000)
	PlatinumThreshold = decimal.NewFromInt(10000)
)

var pointUnit = decimal.NewFromInt(100)

// TierFor nivel en función exclusiva del gasto acumulado (función escalonada monótona).
func TierFor(totalSpent decimal.Decimal) string {
	switch {
	case totalSpent.GreaterThanOrEqual(PlatinumThreshold):
		return entity.TierPlatinum
	case totalSpent.GreaterThanOrEqual(GoldThreshold):
		return entity.TierGold
	case totalSpent.GreaterThanOrEqual(SilverThreshold):
		return entity.TierSilver
	default:
		return entity.TierStandard
	}
}

// PointsFor puntos que otorga una venta: floor(total / 100).
func PointsFor(grandTotal decimal.Decimal) int64 {
	if grandTotal.IsNegative() {
		return 0
	}
	return grandTotal.Div(pointUnit).Floor().IntPart()
}

// ApplySpent suma delta (puede ser negativo) al gasto y recalcula el nivel.
func ApplySpent(c *entity.Customer, delta decimal.Decimal) {
	c.TotalSpent = c.TotalSpent.Add(delta)
	c.Tier = TierFor(c.TotalSpent)
}

// ApplyPoints suma delta a los puntos. Con clamp los puntos no bajan de cero.
func ApplyPoints(c *entity.Customer, delta int64, clamp bool) {
	c.LoyaltyPoints += delta
	if clamp && c.LoyaltyPoints < 0 {
		c.LoyaltyPoints = 0
	}
	c.Tier = TierFor(c.TotalSpent)
}
