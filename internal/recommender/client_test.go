package recommender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecommend_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommend_distributor", r.URL.Path)

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "R001", req.ShopID)

		json.NewEncoder(w).Encode(Recommendation{
			ShopStatus: "STABLE",
			TopPick:    Option{Distributor: "GraminRoute Hub", MatchScore: 98.5, ETA: "12 Hours"},
		})
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL).Recommend(context.Background(), Request{
		ShopID: "R001", Lat: 17.72, Lon: 79.16, CurrentStock: 12,
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "STABLE", rec.ShopStatus)
	require.Equal(t, "GraminRoute Hub", rec.TopPick.Distributor)
}

func TestRecommend_OracleDownDegradesToNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	rec, err := NewClient(srv.URL).Recommend(context.Background(), Request{ShopID: "R001"})
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestRecommend_ErrorStatusDegradesToNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL).Recommend(context.Background(), Request{ShopID: "R001"})
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestRecommend_MalformedBodyDegradesToNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL).Recommend(context.Background(), Request{ShopID: "R001"})
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestRecommend_DisabledClient(t *testing.T) {
	rec, err := NewClient("").Recommend(context.Background(), Request{ShopID: "R001"})
	require.NoError(t, err)
	require.Nil(t, rec)
}
