package accessor

import (
	"fmt"

	inventoryfb "github.com/cbodonnell/stoneworks/flatbuffers/inventory"
	"github.com/cbodonnell/stoneworks/pkg/world"
	flatbuffers "github.com/google/flatbuffers/go"
)

// SerializeInventory encodes container contents as a flatbuffer.
func SerializeInventory(items []world.ItemStack) []byte {
	builder := flatbuffers.NewBuilder(0)

	itemOffsets := make([]flatbuffers.UOffsetT, len(items))
	for i, item := range items {
		typ := builder.CreateString(item.Type)
		inventoryfb.ItemStackStart(builder)
		inventoryfb.ItemStackAddSlot(builder, item.Slot)
		inventoryfb.ItemStackAddType(builder, typ)
		inventoryfb.ItemStackAddCount(builder, item.Count)
		itemOffsets[i] = inventoryfb.ItemStackEnd(builder)
	}

	inventoryfb.InventoryStartItemsVector(builder, len(items))
	for i := len(itemOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(itemOffsets[i])
	}
	itemsVector := builder.EndVector(len(items))

	inventoryfb.InventoryStart(builder)
	inventoryfb.InventoryAddItems(builder, itemsVector)
	inventoryOffset := inventoryfb.InventoryEnd(builder)
	builder.Finish(inventoryOffset)

	return builder.FinishedBytes()
}

// DeserializeInventory decodes a buffer written by SerializeInventory.
// Corrupt input is reported as an error.
func DeserializeInventory(b []byte) (items []world.ItemStack, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("inventory buffer too short: %d bytes", len(b))
	}
	if root := flatbuffers.GetUOffsetT(b); int(root) >= len(b) {
		return nil, fmt.Errorf("inventory root offset %d out of range", root)
	}

	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("corrupt inventory buffer: %v", r)
		}
	}()

	inv := inventoryfb.GetRootAsInventory(b, 0)
	n := inv.ItemsLength()
	if n < 0 || n > len(b) {
		return nil, fmt.Errorf("corrupt inventory buffer: %d items", n)
	}
	items = make([]world.ItemStack, 0, n)
	item := &inventoryfb.ItemStack{}
	for i := 0; i < n; i++ {
		if !inv.Items(item, i) {
			return nil, fmt.Errorf("failed to read item %d", i)
		}
		items = append(items, world.ItemStack{
			Slot:  item.Slot(),
			Type:  string(item.Type()),
			Count: item.Count(),
		})
	}
	return items, nil
}
