package customers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/listing"
)

func TestRefineSearchesFetchedPage(t *testing.T) {
	page := []Customer{
		{Name: "Zain", Mobile: "03001111111", NationalID: "35202", Plan: PlanRef{Name: "Gold"}},
		{Name: "amna", Mobile: "03002222222", Username: "amna.k", Plan: PlanRef{Name: "Basic"}},
		{Name: "Bilal", Email: "bilal@isp.pk", Plan: PlanRef{Name: "Silver"}, IsActive: true},
	}

	got := Refine(page, "35202", listing.Sort{})
	require.Len(t, got, 1)
	assert.Equal(t, "Zain", got[0].Name)

	got = Refine(page, "", listing.Sort{Key: "plan.name", Dir: listing.Asc})
	assert.Equal(t, []string{"amna", "Zain", "Bilal"}, []string{got[0].Name, got[1].Name, got[2].Name})

	got = Refine(page, "", listing.Sort{Key: "isActive", Dir: listing.Desc})
	assert.Equal(t, "Bilal", got[0].Name)
}

func TestCustomerDecodesLooseShapes(t *testing.T) {
	var c Customer
	raw := `{"id":"c1","plan":"pkg-9","connectionType":{"id":"ct-1","name":"Fiber"},"connectionStartDate":"1709164800","addedBy":{"id":"emp-7"}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, "pkg-9", c.Plan.ID)
	assert.Equal(t, "Fiber", c.ConnectionType.Name)
	assert.Equal(t, "2024-02-29", c.ActivationDate())
	assert.Equal(t, "emp-7", c.AddedBy.String())
}

func TestSummarizeCountsPageRowsAgainstEnvelopeTotal(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	rows := []Customer{
		{Name: "Zain", IsActive: true, RegistrationDate: "2024-03-02T09:00:00Z"},
		{Name: "Hira", IsActive: false, ConnectionStartDate: float64(1709164800)},
		{Name: "Omar", IsActive: true},
	}
	cards := Summarize(rows, 40, now)
	require.Len(t, cards, 4)
	assert.Equal(t, StatCard{Title: "Total Customers", Value: 40, Filter: "all", Tone: "info"}, cards[0])
	assert.Equal(t, 2, cards[1].Value)
	assert.Equal(t, "active", cards[1].Filter)
	assert.Equal(t, 1, cards[2].Value)
	assert.Equal(t, "inactive", cards[2].Filter)
	assert.Equal(t, 1, cards[3].Value)
	assert.Equal(t, "new", cards[3].Filter)

	assert.Equal(t, 3, Summarize(rows, 0, now)[0].Value)
}
