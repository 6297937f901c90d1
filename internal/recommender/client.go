// Package recommender talks to the external distributor-recommendation
// service. The service is a black box; when it is down or returns junk
// the hub simply shows no recommendation.
package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Request struct {
	ShopID       string  `json:"shop_id"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	CurrentStock int     `json:"current_stock"`
	IsFestival   bool    `json:"is_festival"`
}

type Option struct {
	Distributor string  `json:"distributor"`
	MatchScore  float64 `json:"match_score"`
	Reason      string  `json:"reason"`
	Cost        float64 `json:"cost"`
	ETA         string  `json:"eta"`
}

type Recommendation struct {
	ShopStatus string   `json:"shop_status"`
	TopPick    Option   `json:"top_pick"`
	AllOptions []Option `json:"all_options"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Recommend asks the oracle for a distributor pick. Every failure mode
// (disabled, unreachable, non-2xx, malformed body) degrades to a nil
// recommendation; the error return is reserved for a cancelled context.
func (c *Client) Recommend(ctx context.Context, req Request) (*Recommendation, error) {
	if c.baseURL == "" {
		return nil, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/recommend_distributor", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, nil
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("recommendation oracle unreachable",
			slog.String("shop_id", req.ShopID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("recommendation oracle returned error status",
			slog.String("shop_id", req.ShopID),
			slog.Int("status", resp.StatusCode),
		)
		return nil, nil
	}

	var rec Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		slog.Warn("recommendation oracle returned malformed body",
			slog.String("shop_id", req.ShopID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	return &rec, nil
}
