package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/courtify/courtify/api"
	"github.com/courtify/courtify/config"
	"github.com/courtify/courtify/internal/ledger"
	"github.com/courtify/courtify/internal/service/availability"
	"github.com/courtify/courtify/internal/service/booking"
	"github.com/courtify/courtify/internal/simplybook"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newMockRouter wires the full stack in mock mode: no provider credentials,
// no redis, no kafka, a temp-dir ledger.
func newMockRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		HTTP:     config.HTTPConfig{Address: ":0"},
		Provider: config.ProviderConfig{MockMode: true},
	}

	client := simplybook.NewClient(cfg.Provider)
	store := ledger.NewFileStore(filepath.Join(t.TempDir(), "bookings.json"))
	availabilityService := availability.New(client, zap.NewNop(), cfg.Provider.Mock())
	bookingService := booking.New(store, zap.NewNop())

	return NewRouter(cfg, zap.NewNop(),
		api.NewSystemHandler(client),
		api.NewAvailabilityHandler(availabilityService),
		api.NewBookingHandler(bookingService),
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterPing(t *testing.T) {
	router := newMockRouter(t)

	w := doJSON(t, router, "GET", "/api/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["ok"])
}

func TestRouterHealthMock(t *testing.T) {
	router := newMockRouter(t)

	w := doJSON(t, router, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["mock"])
}

func TestRouterAvailabilityValidation(t *testing.T) {
	router := newMockRouter(t)

	w := doJSON(t, router, "POST", "/api/court/availability/check", map[string]string{"sport": "tennis"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterAvailabilityMock(t *testing.T) {
	router := newMockRouter(t)

	w := doJSON(t, router, "POST", "/api/court/availability/check", map[string]string{
		"dateFrom":      "2025-06-01",
		"dateTo":        "2025-06-07",
		"preferredTime": "19:00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Results []struct {
			Units []struct {
				StartTimes map[string][]string `json:"startTimes"`
			} `json:"units"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.Len(t, response.Results, 1)
	require.Len(t, response.Results[0].Units, 2)
	assert.Equal(t, []string{"19:00"}, response.Results[0].Units[0].StartTimes["2025-06-01"])
}

func TestRouterBookAndList(t *testing.T) {
	router := newMockRouter(t)

	w := doJSON(t, router, "POST", "/api/book", map[string]any{
		"serviceId":    "svc-1",
		"unitId":       "u-1",
		"date":         "2025-06-01",
		"time":         "18:00",
		"customerName": "Ana",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Booking struct {
			ID string `json:"id"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Booking.ID)

	w = doJSON(t, router, "GET", "/api/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Bookings []struct {
			ID string `json:"id"`
		} `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Bookings, 1)
	assert.Equal(t, created.Booking.ID, listed.Bookings[0].ID)
}

func TestRouterBookMissingFields(t *testing.T) {
	router := newMockRouter(t)

	w := doJSON(t, router, "POST", "/api/book", map[string]string{"serviceId": "svc-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
