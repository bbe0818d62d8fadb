package core

import "log"

// ReorderNotifier receives the reorder-point signal emitted after a
// committed transaction leaves an item at or below its reorder point.
// The signal is observational only and never affects the outcome of
// the transaction that triggered it.
type ReorderNotifier interface {
	ReorderPointReached(item *Item)
}

// ReorderNotifierFunc adapts a function to the ReorderNotifier
// interface.
type ReorderNotifierFunc func(item *Item)

func (f ReorderNotifierFunc) ReorderPointReached(item *Item) { f(item) }

// LogReorderNotifier writes a warning line for ops tooling to pick up.
type LogReorderNotifier struct{}

func (LogReorderNotifier) ReorderPointReached(item *Item) {
	log.Printf("WARN item %s has reached its reorder point: quantity %s <= %s (reorder %s)",
		item.SKU, item.Quantity.String(), item.ReorderPoint.String(), item.ReorderQuantity.String())
}
