package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHospitalDocSanitizesAndListsStockedGroups(t *testing.T) {
	s := &meiliHospitalIndex{sanitizer: newSanitizer(), log: zap.NewNop()}
	h := entity.Hospital{
		ID:      uuid.New(),
		Name:    "<b>City</b>   Care &amp; Trauma",
		City:    "Pune<script>alert(1)</script>",
		Address: "1 Health Street",
		BloodStock: []entity.StockEntry{
			{BloodGroup: "O-", UnitsAvailable: 3},
			{BloodGroup: "A+", UnitsAvailable: 0},
		},
	}

	doc := s.toDoc(h)
	assert.Equal(t, h.ID.String(), doc.ID)
	assert.Equal(t, "City Care & Trauma", doc.Name)
	assert.Equal(t, "Pune", doc.City)
	assert.Equal(t, []string{"O-"}, doc.BloodGroups)
}

// fakeMeili answers the endpoints the hospital index calls and records the
// paths it saw.
func fakeMeili(t *testing.T, hits []string) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/search") {
			docs := make([]map[string]string, len(hits))
			for i, id := range hits {
				docs[i] = map[string]string{"id": id}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"hits": docs, "query": "", "processingTimeMs": 1,
				"limit": 200, "offset": 0, "estimatedTotalHits": len(hits),
			})
			return
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"taskUid":1,"indexUid":"hospitals","status":"enqueued","type":"settingsUpdate","enqueuedAt":"2026-01-01T00:00:00Z"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), paths...)
	}
}

func TestSearchCityReturnsHitIDs(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	srv, paths := fakeMeili(t, []string{first.String(), "not-a-uuid", second.String()})

	index := NewMeiliHospitalIndex(meilisearch.New(srv.URL), zap.NewNop())
	ids, err := index.SearchCity("  pune ")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)

	seen := paths()
	assert.Contains(t, seen, "PUT /indexes/hospitals/settings/searchable-attributes")
	assert.Contains(t, seen, "POST /indexes/hospitals/search")
	for _, p := range seen {
		assert.NotContains(t, p, "filterable-attributes")
	}
}
