package catalog

import "fmt"

type StockLevel string

const (
	StockLow    StockLevel = "low"
	StockMedium StockLevel = "medium"
	StockHigh   StockLevel = "high"
)

// LowStockThreshold is inclusive.
const LowStockThreshold = 5

// Classify buckets a stock quantity for display only.
func Classify(quantity int) StockLevel {
	switch {
	case quantity <= LowStockThreshold:
		return StockLow
	case quantity <= 20:
		return StockMedium
	default:
		return StockHigh
	}
}

func IsLowStock(quantity int) bool { return quantity <= LowStockThreshold }

func lowStockMessage(name string, quantity int) string {
	return fmt.Sprintf("Low stock alert: %s has only %d items left", name, quantity)
}
