// Package geo contains the distance and delivery pricing math used by the
// checkout and fulfillment flows. Pure functions, no state.
package geo

import (
	"math"

	"github.com/shopspring/decimal"
)

// radioTierraKm is the mean Earth radius used by the haversine formula.
const radioTierraKm = 6371.0

// DistanciaKm returns the great-circle distance in kilometers between two
// coordinates using the haversine formula. Total over valid doubles: callers
// are responsible for supplying real coordinates.
func DistanciaKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := aRadianes(lat2 - lat1)
	dLon := aRadianes(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(aRadianes(lat1))*math.Cos(aRadianes(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radioTierraKm * c
}

// CostoDelivery computes distanciaKm × precioPorKm rounded to 2 decimal
// places, half-up. Only meaningful when the bodega has delivery enabled.
func CostoDelivery(distanciaKm float64, precioPorKm decimal.Decimal) decimal.Decimal {
	return precioPorKm.Mul(decimal.NewFromFloat(distanciaKm)).Round(2)
}

func aRadianes(grados float64) float64 {
	return grados * math.Pi / 180
}
