package inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/listing"
)

var stock = []Item{
	{ID: "1", Name: "TP-Link Archer", Category: "router", Brand: "TP-Link", Quantity: 3, MinQuantity: 5, UnitPrice: 4500},
	{ID: "2", Name: "Cat6 Cable", Category: "cable", Quantity: 200, MinQuantity: 50, UnitPrice: 40},
	{ID: "3", Name: "Huawei ONT", Category: "modem", Brand: "Huawei", SerialNumber: "HW-991", Quantity: 5, MinQuantity: 5, UnitPrice: 6000},
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(stock)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 2, s.LowStockItems)
	assert.InDelta(t, 3*4500+200*40+5*6000, s.TotalValue, 0.001)
	assert.Equal(t, 3, s.Categories)
}

func TestIsLowStockIncludesEquality(t *testing.T) {
	assert.True(t, Item{Quantity: 5, MinQuantity: 5}.IsLowStock())
	assert.False(t, Item{Quantity: 6, MinQuantity: 5}.IsLowStock())
}

func TestSearchFilters(t *testing.T) {
	got := Search(stock, Filter{Stock: "low"}, listing.Sort{Key: "quantity", Dir: listing.Desc})
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)

	got = Search(stock, Filter{Search: "hw-99"}, listing.Sort{})
	require.Len(t, got, 1)
	assert.Equal(t, "Huawei ONT", got[0].Name)

	got = Search(stock, Filter{Category: "cable", Stock: "normal"}, listing.Sort{})
	require.Len(t, got, 1)

	assert.Len(t, Search(stock, Filter{Category: "all", Stock: "all"}, listing.Sort{}), 3)
}

func TestDecodeListShapes(t *testing.T) {
	wrapped, err := decodeList(json.RawMessage(`{"inventory":[{"id":"a","name":"Router"}]}`))
	require.NoError(t, err)
	require.Len(t, wrapped, 1)
	assert.Equal(t, "Router", wrapped[0].Name)

	bare, err := decodeList(json.RawMessage(`[{"id":"a"},{"id":"b"}]`))
	require.NoError(t, err)
	assert.Len(t, bare, 2)

	empty, err := decodeList(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
