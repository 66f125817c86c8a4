package engine

import (
	"math/rand"
	"testing"

	"github.com/Sharply-Tech/metch-orderbook/models"
	"github.com/Sharply-Tech/metch-orderbook/testutil"
)

func BenchmarkPlace(b *testing.B) {
	me := NewMatchingEngine("BTC-USD", nil)
	rng := rand.New(rand.NewSource(1))
	specs := make([]testutil.OrderSpec, b.N)
	for i := range specs {
		specs[i] = testutil.RandomOrderSpec(rng, 50)
	}

	b.ResetTimer()
	for _, spec := range specs {
		_, _ = me.Place(spec.ClientID, spec.Side, spec.Price, spec.Size, spec.Tag)
	}
}

func BenchmarkMixedOperations(b *testing.B) {
	me := NewMatchingEngine("BTC-USD", nil)
	rng := rand.New(rand.NewSource(1))

	var live []int64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		switch {
		case len(live) > 0 && rng.Intn(10) == 0:
			idx := rng.Intn(len(live))
			_, _ = me.Cancel(live[idx])
			live = append(live[:idx], live[idx+1:]...)
		case len(live) > 0 && rng.Intn(10) == 0:
			idx := rng.Intn(len(live))
			_, _ = me.Update(live[idx], testutil.RandomDecimal(rng, 100), testutil.RandomDecimal(rng, 1000))
		default:
			spec := testutil.RandomOrderSpec(rng, 50)
			order, err := me.Place(spec.ClientID, spec.Side, spec.Price, spec.Size, spec.Tag)
			if err == nil {
				if _, resting := me.FindByID(order.ID); resting {
					live = append(live, order.ID)
				}
			}
		}
	}
}

func BenchmarkBestBids(b *testing.B) {
	me := NewMatchingEngine("BTC-USD", nil)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		spec := testutil.RandomOrderSpec(rng, 50)
		_, _ = me.Place(spec.ClientID, spec.Side, spec.Price, spec.Size, spec.Tag)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = me.BestBids(10)
	}
}

func BenchmarkScanBest(b *testing.B) {
	me := NewMatchingEngine("BTC-USD", nil)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		spec := testutil.RandomOrderSpec(rng, 50)
		_, _ = me.Place(spec.ClientID, spec.Side, spec.Price, spec.Size, spec.Tag)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		depth := 0
		me.ScanBest(models.SideAsk, func(models.Order) bool {
			depth++
			return depth < 10
		})
	}
}
