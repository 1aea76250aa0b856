package food

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

var ErrUnknownMenuItem = errors.New("food: order references unknown menu item")

// ComputeTotal derives an order total from current menu prices. It is the only way a
// total is ever produced; client supplied totals are never read.
func ComputeTotal(lines []models.OrderLine, prices map[string]float64) (float64, error) {
	var total float64
	for _, l := range lines {
		price, ok := prices[l.MenuItemID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownMenuItem, l.MenuItemID)
		}
		total += price * float64(l.Quantity)
	}
	return total, nil
}

// DropUnavailable keeps only the lines whose menu item still has a price. Lines go
// stale when a menu reseed removes an item an open cart references.
func DropUnavailable(lines []models.OrderLine, prices map[string]float64) ([]models.OrderLine, int) {
	kept := make([]models.OrderLine, 0, len(lines))
	for _, l := range lines {
		if _, ok := prices[l.MenuItemID]; ok {
			kept = append(kept, l)
		}
	}
	return kept, len(lines) - len(kept)
}

func PriceIndex(items []models.MenuItem) map[string]float64 {
	idx := make(map[string]float64, len(items))
	for _, it := range items {
		idx[it.ID] = it.Price
	}
	return idx
}

func LineItemIDs(lines []models.OrderLine) []string {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.MenuItemID] {
			seen[l.MenuItemID] = true
			ids = append(ids, l.MenuItemID)
		}
	}
	return ids
}
