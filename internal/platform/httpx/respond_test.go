package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/shared"
)

func TestRespondErrorMapsSentinels(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("customer: %w", shared.ErrNotFound): http.StatusNotFound,
		shared.ErrUnauthorized:                         http.StatusUnauthorized,
		shared.ErrForbidden:                            http.StatusForbidden,
		shared.ErrCSRFTokenMismatch:                    http.StatusForbidden,
		ErrBadRequest:                                  http.StatusBadRequest,
		ErrUnavailable:                                 http.StatusServiceUnavailable,
		fmt.Errorf("boom"):                             http.StatusInternalServerError,
	}
	for err, status := range cases {
		rr := httptest.NewRecorder()
		RespondError(rr, err)
		assert.Equal(t, status, rr.Code, err.Error())
		assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, fmt.Errorf("dial tcp 10.0.0.5:443: refused"))

	var body ProblemDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Empty(t, body.Detail)
	assert.Equal(t, "Internal Error", body.Title)
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Field string `json:"field"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"field":"mobile"}`))
	require.NoError(t, DecodeJSON(req, &target))
	assert.Equal(t, "mobile", target.Field)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
	assert.ErrorIs(t, DecodeJSON(req, &target), ErrBadRequest)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.ErrorIs(t, DecodeJSON(req, &target), ErrBadRequest)
}
