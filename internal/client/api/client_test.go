package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbook-app/stockbook/internal/common"
)

func newTestClient(h http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := New(Config{BaseURL: srv.URL})
	return c, srv
}

func TestLogin_StoresTokenPair(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "seller", creds["username"])
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken": "at1", "refreshToken": "rt1",
		})
	}))
	defer srv.Close()

	require.NoError(t, c.Login(context.Background(), "seller", "pw"))

	access, refresh := c.tokens()
	assert.Equal(t, "at1", access)
	assert.Equal(t, "rt1", refresh)
}

func TestGetItems_SendsBearerToken(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]Item{{ID: 1, Name: "Dunk Low", Size: "270"}})
	}))
	defer srv.Close()

	c.SetTokens("token123", "")

	items, err := c.GetItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
}

func TestGetRecords_FetchesItemLedger(t *testing.T) {
	price := int64(1200)
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/items/7/records", r.URL.Path)
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]Record{
			{ID: 1, ItemID: 7, Type: "PURCHASE", Price: &price, Count: 2, Date: "2024-05-01"},
			{ID: 2, ItemID: 7, Type: "SALE", Count: 1, Date: "2024-05-02"},
		})
	}))
	defer srv.Close()

	c.SetTokens("token123", "")

	recs, err := c.GetRecords(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(7), recs[0].ItemID)
	require.NotNil(t, recs[0].Price)
	assert.Equal(t, int64(1200), *recs[0].Price)
	assert.Nil(t, recs[1].Price)
}

func TestErrorMapping_UsesServerMessage(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "item 99 not found"})
	}))
	defer srv.Close()
	c.SetTokens("t", "")

	_, err := c.GetRecords(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "item 99 not found")
}

func TestErrorMapping_GenericFallback(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		// no JSON body at all
	}))
	defer srv.Close()
	c.SetTokens("t", "")

	_, err := c.GetItems(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestExpiredToken_RefreshedAndRetried(t *testing.T) {
	calls := 0
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/items":
			calls++
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": common.ErrTokenExpired.Error()})
				return
			}
			_ = json.NewEncoder(w).Encode([]Item{})
		case "/api/auth/refresh":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "old-refresh", body["refreshToken"])
			_ = json.NewEncoder(w).Encode(map[string]string{
				"accessToken": "fresh", "refreshToken": "fresh-refresh",
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c.SetTokens("stale", "old-refresh")

	_, err := c.GetItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "original call must be retried after refresh")

	access, refresh := c.tokens()
	assert.Equal(t, "fresh", access)
	assert.Equal(t, "fresh-refresh", refresh)
}

func TestExpiredToken_NoRefreshToken(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": common.ErrTokenExpired.Error()})
	}))
	defer srv.Close()
	c.SetTokens("stale", "")

	_, err := c.GetItems(context.Background())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestCreateItem_PostsClientKey(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "uuid-1", req.ClientKey)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Item{ID: 7, Name: req.Name, Size: req.Size})
	}))
	defer srv.Close()
	c.SetTokens("t", "")

	item, err := c.CreateItem(context.Background(), CreateItemRequest{
		ClientKey: "uuid-1", Name: "Dunk Low", Size: "270",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
}
