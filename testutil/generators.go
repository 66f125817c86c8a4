// Package testutil provides random order generators for load tests and
// benchmarks.
package testutil

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/Sharply-Tech/metch-orderbook/models"
)

// OrderSpec is the raw input of one generated place operation.
type OrderSpec struct {
	ClientID int64
	Side     models.Side
	Price    decimal.Decimal
	Size     decimal.Decimal
	Tag      models.OrderTag
}

var tags = []models.OrderTag{
	models.TagMarket,
	models.TagStop,
	models.TagLimit,
	models.TagGTC,
	models.TagDay,
}

// RandomSide picks bid or ask with equal probability.
func RandomSide(rng *rand.Rand) models.Side {
	if rng.Intn(2) == 0 {
		return models.SideBid
	}
	return models.SideAsk
}

// RandomTag picks one of the order tags.
func RandomTag(rng *rand.Rand) models.OrderTag {
	return tags[rng.Intn(len(tags))]
}

// RandomDecimal returns a positive decimal in (0, max] with two fractional
// digits.
func RandomDecimal(rng *rand.Rand, max int) decimal.Decimal {
	cents := rng.Int63n(int64(max)*100) + 1
	return decimal.New(cents, -2)
}

// RandomOrderSpec generates one order for a client in [1, clients]. Prices
// cluster in a narrow band so generated flows actually cross and trade.
func RandomOrderSpec(rng *rand.Rand, clients int) OrderSpec {
	return OrderSpec{
		ClientID: rng.Int63n(int64(clients)) + 1,
		Side:     RandomSide(rng),
		Price:    RandomDecimal(rng, 100),
		Size:     RandomDecimal(rng, 1000),
		Tag:      RandomTag(rng),
	}
}
