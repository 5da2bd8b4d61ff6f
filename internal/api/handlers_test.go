package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/baxromumarov/donor-wall/internal/config"
	"github.com/baxromumarov/donor-wall/internal/core"
	"github.com/baxromumarov/donor-wall/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Init(context.Background()))

	cfg := config.Config{
		UserAgent:      "donor-wall-test/1.0",
		FetchTimeout:   5 * time.Second,
		CacheDir:       t.TempDir(),
		CacheMainFile:  "main.html",
		CacheModalFile: "modal.html",
	}
	return NewServer(st, core.NewSyncService(st, cfg)), st
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestScrapeDonorsNoData(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/scrape-donors", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "No donor data found from configured source.", payload["message"])
}

func TestScrapeDonorsSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`
<span class="donor-name">Alice</span>
<span class="donor-name">Bob</span>`))
	}))
	defer upstream.Close()

	srv, st := newTestServer(t)

	ctx := context.Background()
	settings, err := st.GetSettings(ctx)
	require.NoError(t, err)
	settings.DonorWebsite = upstream.URL
	require.NoError(t, st.UpdateSettings(ctx, settings))

	rec := doRequest(t, srv, http.MethodPost, "/scrape-donors", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Message     string `json:"message"`
		DonorsCount int    `json:"donors_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Donors scraped successfully.", payload.Message)
	assert.Equal(t, 2, payload.DonorsCount)
}

func TestDonorCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/donors", `{"name":"Manual Donor","amount":"12.5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Greater(t, created["id"], 0)

	rec = doRequest(t, srv, http.MethodGet, "/api/donors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var donors []store.Donor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &donors))
	require.Len(t, donors, 1)
	assert.Equal(t, "Manual Donor", donors[0].Name)
	assert.Equal(t, 12.5, donors[0].Amount)

	rec = doRequest(t, srv, http.MethodDelete, "/api/donors/"+strconv.Itoa(created["id"]), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/donors", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &donors))
	assert.Empty(t, donors)
}

func TestAddDonorRequiresName(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/donors", `{"amount":"10"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddDonorUnparsableAmountIsZero(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/donors", `{"name":"No Amount","amount":"N/A"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/donors", "")
	var donors []store.Donor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &donors))
	require.Len(t, donors, 1)
	assert.Equal(t, 0.0, donors[0].Amount)
}

func TestSettingsRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var settings store.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, store.DefaultSettings(), settings)

	rec = doRequest(t, srv, http.MethodPut, "/api/settings",
		`{"donor_website":"https://give.example.edu/campaigns/72810","font_size":32}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/settings", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, "https://give.example.edu/campaigns/72810", settings.DonorWebsite)
	assert.Equal(t, 32, settings.FontSize)
	// Unspecified fields keep their stored values.
	assert.Equal(t, "up", settings.ScrollDirection)
}

func TestDonorPagination(t *testing.T) {
	srv, st := newTestServer(t)

	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		_, err := st.AddDonor(ctx, name, 0)
		require.NoError(t, err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/donors?page=2&per_page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var donors []store.Donor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &donors))
	require.Len(t, donors, 1)
	assert.Equal(t, "C", donors[0].Name)
}
