package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageDecodesEnvelope(t *testing.T) {
	raw := `{"success":true,"data":[{"id":"1"},{"id":"2"}],"pagination":{"currentPage":2,"totalPages":5,"totalCount":48,"limit":10,"hasNextPage":true,"hasPrevPage":true}}`
	var page Page[map[string]string]
	require.NoError(t, json.Unmarshal([]byte(raw), &page))

	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	p := page.Pagination.Pagination()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 48, p.Total)
}

func TestPageInfoAcceptsLegacyShape(t *testing.T) {
	var info PageInfo
	require.NoError(t, json.Unmarshal([]byte(`{"page":3,"total":25,"limit":10}`), &info))

	assert.Equal(t, 3, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.False(t, info.HasNextPage)
	assert.True(t, info.HasPrevPage)
}

func TestPageInfoMissingCountsKeepsPageCount(t *testing.T) {
	var info PageInfo
	require.NoError(t, json.Unmarshal([]byte(`{"currentPage":1,"totalPages":4}`), &info))
	assert.Equal(t, 4, info.Pagination().TotalPages)
}

func TestMetricPathDropsIDs(t *testing.T) {
	assert.Equal(t, "/customers", metricPath("/customers/status/42"))
	assert.Equal(t, "/dashboard", metricPath("dashboard"))
	assert.Equal(t, "/", metricPath(""))
}

func TestRefAcceptsBareAndPopulatedIDs(t *testing.T) {
	var out struct {
		A Ref `json:"a"`
		B Ref `json:"b"`
		C Ref `json:"c"`
		D Ref `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a":"u1","b":{"id":"u2","firstName":"Ali"},"c":17,"d":null}`), &out)
	require.NoError(t, err)
	assert.Equal(t, Ref("u1"), out.A)
	assert.Equal(t, "u2", out.B.String())
	assert.Equal(t, "17", out.C.String())
	assert.Empty(t, out.D)
}
