package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewOrderDefaults(t *testing.T) {
	order := NewOrder(1, 42, SideBid, decimal.NewFromInt(30), decimal.NewFromInt(100), TagDay)

	if order.ID != 1 {
		t.Errorf("Expected id 1, got %d", order.ID)
	}
	if order.ClientID != 42 {
		t.Errorf("Expected client id 42, got %d", order.ClientID)
	}
	if !order.Filled.IsZero() {
		t.Errorf("Expected zero fill, got %s", order.Filled)
	}
	if !order.CreatedAt.Equal(order.ModifiedAt) {
		t.Error("Expected createdAt == modifiedAt on a fresh order")
	}
	if !order.Remaining().Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected remaining 100, got %s", order.Remaining())
	}
	if order.IsFilled() {
		t.Error("Fresh order should not be filled")
	}
}

func TestOrderFillStates(t *testing.T) {
	order := NewOrder(1, 1, SideAsk, decimal.NewFromInt(10), decimal.NewFromInt(100), TagLimit)

	partial := order.WithFilled(decimal.NewFromInt(40))
	if !partial.IsPartiallyFilled() {
		t.Error("Order filled 40/100 should be partially filled")
	}
	if partial.IsFilled() {
		t.Error("Order filled 40/100 should not be filled")
	}
	if !partial.Remaining().Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected remaining 60, got %s", partial.Remaining())
	}

	full := order.WithFilled(decimal.NewFromInt(100))
	if !full.IsFilled() {
		t.Error("Order filled 100/100 should be filled")
	}
	if !full.Remaining().IsZero() {
		t.Errorf("Expected remaining 0, got %s", full.Remaining())
	}
}

func TestWithHelpersProduceCopies(t *testing.T) {
	order := NewOrder(1, 1, SideBid, decimal.NewFromInt(30), decimal.NewFromInt(100), TagGTC)

	time.Sleep(time.Millisecond)
	updated := order.WithPrice(decimal.NewFromInt(35))

	if !order.Price.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Original order price changed, got %s", order.Price)
	}
	if !updated.Price.Equal(decimal.NewFromInt(35)) {
		t.Errorf("Expected price 35 on copy, got %s", updated.Price)
	}
	if !updated.ModifiedAt.After(order.ModifiedAt) {
		t.Error("WithPrice should refresh modifiedAt")
	}
	if !updated.CreatedAt.Equal(order.CreatedAt) {
		t.Error("WithPrice should preserve createdAt")
	}
}

func TestOrderIsValid(t *testing.T) {
	valid := NewOrder(1, 1, SideBid, decimal.NewFromInt(30), decimal.NewFromInt(100), TagDay)
	if !valid.IsValid() {
		t.Error("Expected valid order")
	}

	zeroPrice := valid
	zeroPrice.Price = decimal.Zero
	if zeroPrice.IsValid() {
		t.Error("Zero price should be invalid")
	}

	negativeSize := valid
	negativeSize.Size = decimal.NewFromInt(-1)
	if negativeSize.IsValid() {
		t.Error("Negative size should be invalid")
	}

	overFilled := valid.WithFilled(decimal.NewFromInt(150))
	if overFilled.IsValid() {
		t.Error("Filled above size should be invalid")
	}

	badSide := valid
	badSide.Side = Side("hold")
	if badSide.IsValid() {
		t.Error("Unknown side should be invalid")
	}
}

func TestSideOpposite(t *testing.T) {
	if SideBid.Opposite() != SideAsk {
		t.Error("Opposite of bid should be ask")
	}
	if SideAsk.Opposite() != SideBid {
		t.Error("Opposite of ask should be bid")
	}
}
