package game

import (
	"errors"
	"testing"

	"github.com/decker502/farmvale/pkg/types"
)

// TestInventoryItems 测试物品增减
func TestInventoryItems(t *testing.T) {
	inv := NewInventory(50)
	for _, item := range types.AllItems {
		if inv.ItemCount(item) != 0 {
			t.Errorf("%s should start at 0", item)
		}
	}
	inv.AddItem(types.ItemApple, 2)
	if err := inv.RemoveItem(types.ItemApple, 3); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("RemoveItem() beyond stock = %v, want ErrOutOfStock", err)
	}
	if err := inv.RemoveItem(types.ItemApple, 2); err != nil {
		t.Fatalf("RemoveItem(): %v", err)
	}
	if inv.ItemCount(types.ItemApple) != 0 {
		t.Errorf("apples = %d, want 0", inv.ItemCount(types.ItemApple))
	}
	if inv.Money != 50 {
		t.Errorf("Money = %d, want 50", inv.Money)
	}
}
