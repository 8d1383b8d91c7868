package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/faults"
	"roamio/store"
)

func newStore() *store.Store {
	return store.New("t1", store.NewMemoryBackend())
}

func TestFormatPriceLevel(t *testing.T) {
	cases := map[string]string{
		`"PRICE_LEVEL_FREE"`:           "Free",
		`"PRICE_LEVEL_INEXPENSIVE"`:    "$",
		`"PRICE_LEVEL_MODERATE"`:       "$$",
		`"PRICE_LEVEL_EXPENSIVE"`:      "$$$",
		`"PRICE_LEVEL_VERY_EXPENSIVE"`: "$$$$",
		`0`:                            "Free",
		`1`:                            "$",
		`2`:                            "$$",
		`3`:                            "$$$",
		`4`:                            "$$$$",
	}
	for raw, want := range cases {
		got := FormatPriceLevel(json.RawMessage(raw))
		require.NotNil(t, got, raw)
		assert.Equal(t, want, *got, raw)
	}

	for _, raw := range []string{``, `null`, `"XYZ"`, `5`, `-1`, `2.5`, `true`} {
		assert.Nil(t, FormatPriceLevel(json.RawMessage(raw)), raw)
	}
}

func TestSearchBlankQueryIsReadyState(t *testing.T) {
	o := NewOrchestrator("http://unused.invalid")

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := o.Search(context.Background(), newStore(), q, nil)
		assert.ErrorIs(t, err, ErrEmptyQuery)
		kind, ok := faults.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, faults.UserInput, kind)
	}
}

func TestSearchNormalizesAndCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/places/search", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "coffee", body["query"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"items":[
			{"place_id":"a","name":"Cafe A","address":"1 Main St","lat":12.9,"lng":77.6,"rating":4.4,"price_level":"PRICE_LEVEL_MODERATE"},
			{"place_id":"b","name":"Cafe B","lat":12.91,"lng":77.61,"price_level":3}
		]}`))
	}))
	defer srv.Close()

	st := newStore()
	o := NewOrchestrator(srv.URL)
	got, err := o.Search(context.Background(), st, "  coffee  ", map[string]string{"open_now": "true"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].PlaceID)
	require.NotNil(t, got[0].Price)
	assert.Equal(t, "$$", *got[0].Price)
	require.NotNil(t, got[1].Price)
	assert.Equal(t, "$$$", *got[1].Price)

	assert.Equal(t, 2, st.GetInt(context.Background(), store.KeyPlacesVisited, 0))
}

func TestSearchHTTPFailureKeepsTruncatedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	st := newStore()
	o := NewOrchestrator(srv.URL)
	long := strings.Repeat("x", 80)
	_, err := o.Search(context.Background(), st, long, nil)

	var f *faults.Fault
	require.True(t, errors.As(err, &f))
	assert.Equal(t, faults.Network, f.Kind)
	assert.LessOrEqual(t, len([]rune(f.Context)), 41) // 40 chars plus ellipsis
	assert.True(t, strings.HasPrefix(f.Context, "xxxx"))

	assert.Equal(t, 0, st.GetInt(context.Background(), store.KeyPlacesVisited, 0),
		"failed searches must not bump the visited counter")
}

func TestSearchUpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok":false,"error":"quota exceeded"}`))
	}))
	defer srv.Close()

	o := NewOrchestrator(srv.URL)
	_, err := o.Search(context.Background(), newStore(), "coffee", nil)

	kind, ok := faults.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, faults.Network, kind)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSearchEmptyResultSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok":true,"items":[]}`))
	}))
	defer srv.Close()

	st := newStore()
	o := NewOrchestrator(srv.URL)
	got, err := o.Search(context.Background(), st, "nowhere", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, st.GetInt(context.Background(), store.KeyPlacesVisited, 0))
}
