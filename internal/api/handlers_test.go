// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopsense/internal/advisor"
	"github.com/tomtom215/shopsense/internal/models"
	"github.com/tomtom215/shopsense/internal/recommend"
)

func TestRecommendations_Success(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testAPIConfig(), nil)
	rec := srv.get(t, "/api/v1/users/7/recommendations")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(recommendationPathHeader); got != recommend.PathHistory {
		t.Errorf("%s = %q, want %q", recommendationPathHeader, got, recommend.PathHistory)
	}
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Error("X-Request-ID header missing")
	}

	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Errorf("status = %q, want success", env.Status)
	}
	if env.Metadata.RequestID != rec.Header().Get("X-Request-ID") {
		t.Errorf("metadata.request_id = %q, want header value", env.Metadata.RequestID)
	}

	var items []recommend.Record
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ProductID != 12 || items[0].Reason != recommend.ReasonHistory || items[0].Score == nil {
		t.Errorf("items[0] = %+v, want history record for product 12", items[0])
	}
	if items[1].Score != nil || items[1].MerchantName != recommend.UnknownMerchant {
		t.Errorf("items[1] = %+v, want unscored popularity record", items[1])
	}

	got := srv.recommender.lastReq
	if got.UserID != 7 || got.TopN != 10 {
		t.Errorf("request = %+v, want user 7 with default limit 10", got)
	}
	if got.RequestID == "" {
		t.Error("request ID not forwarded to the engine")
	}
}

func TestRecommendations_Limit(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testAPIConfig(), nil)
	rec := srv.get(t, "/api/v1/users/7/recommendations?limit=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if srv.recommender.lastReq.TopN != 50 {
		t.Errorf("TopN = %d, want 50", srv.recommender.lastReq.TopN)
	}
}

func TestRecommendations_InvalidParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"limit zero", "/api/v1/users/7/recommendations?limit=0", "limit must be at least 1"},
		{"limit above max", "/api/v1/users/7/recommendations?limit=51", "limit must be at most 50"},
		{"limit not a number", "/api/v1/users/7/recommendations?limit=abc", "limit must be an integer"},
		{"user not a number", "/api/v1/users/x/recommendations", "userID must be an integer"},
		{"user zero", "/api/v1/users/0/recommendations", "userID must be greater than 0"},
		{"user negative", "/api/v1/users/-3/recommendations", "userID must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer(t, testAPIConfig(), nil)
			rec := srv.get(t, tt.path)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Status != "error" || env.Error == nil {
				t.Fatalf("envelope = %+v, want error", env)
			}
			if env.Error.Code != ErrCodeValidation {
				t.Errorf("code = %q, want %q", env.Error.Code, ErrCodeValidation)
			}
			if env.Error.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", env.Error.Message, tt.wantMsg)
			}
			if srv.recommender.lastReq.UserID != 0 {
				t.Error("engine called for an invalid request")
			}
		})
	}
}

func TestRecommendations_EngineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid request", fmt.Errorf("%w: top_n must not be negative", recommend.ErrInvalidRequest), http.StatusBadRequest, ErrCodeValidation},
		{"deadline", fmt.Errorf("load history: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, ErrCodeUnavailable},
		{"store failure", errors.New("connection reset by peer"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer(t, testAPIConfig(), nil)
			srv.recommender.err = tt.err

			rec := srv.get(t, "/api/v1/users/7/recommendations")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Fatalf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
			if strings.Contains(rec.Body.String(), "connection reset") {
				t.Error("internal error detail leaked to the client")
			}
		})
	}
}

func TestMerchantSuggestions_Success(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testAPIConfig(), nil)
	generated := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	srv.advisor.suggestions = []advisor.Suggestion{
		{
			ProductID:   1,
			ProductName: "Teapot",
			Suggestion:  "Selling well, increase stock to meet demand",
			Priority:    advisor.PriorityLow,
			Metrics:     advisor.SuggestionMetrics{RecentSales: 20, TurnoverRate: 1.6, CurrentStock: 10, CurrentPrice: 20},
			GeneratedAt: generated,
			Rule:        "restock",
		},
	}

	rec := srv.get(t, "/api/v1/merchants/3/suggestions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if srv.advisor.lastID != 3 {
		t.Errorf("merchant = %d, want 3", srv.advisor.lastID)
	}

	env := decodeEnvelope(t, rec)
	var data struct {
		Suggestions []map[string]interface{} `json:"suggestions"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(data.Suggestions))
	}
	s := data.Suggestions[0]
	for _, key := range []string{"product_id", "product_name", "suggestion", "priority", "metrics", "generated_at"} {
		if _, ok := s[key]; !ok {
			t.Errorf("suggestion missing %q", key)
		}
	}
	if _, ok := s["rule"]; ok {
		t.Error("rule name exposed in the response")
	}
	if s["priority"] != "low" {
		t.Errorf("priority = %v, want low", s["priority"])
	}
}

func TestMerchantSuggestions_EmptyIsArray(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testAPIConfig(), nil)
	rec := srv.get(t, "/api/v1/merchants/3/suggestions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"suggestions":[]`) {
		t.Errorf("body = %s, want empty suggestions array", rec.Body.String())
	}
}

func TestMerchantSuggestions_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid merchant id", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, testAPIConfig(), nil)
		rec := srv.get(t, "/api/v1/merchants/-1/suggestions")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Error.Message != "merchantID must be greater than 0" {
			t.Errorf("message = %q", env.Error.Message)
		}
	})

	t.Run("advisor failure", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, testAPIConfig(), nil)
		srv.advisor.err = errors.New("list products: boom")
		rec := srv.get(t, "/api/v1/merchants/3/suggestions")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Error.Code != ErrCodeInternal {
			t.Errorf("code = %q, want %q", env.Error.Code, ErrCodeInternal)
		}
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("live", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, testAPIConfig(), errors.New("database down"))
		rec := srv.get(t, "/api/v1/health/live")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("ready", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, testAPIConfig(), nil)
		rec := srv.get(t, "/api/v1/health/ready")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var health models.HealthStatus
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &health); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if health.Status != "ready" || !health.DatabaseConnected || health.Version != "test" {
			t.Errorf("health = %+v", health)
		}
	})

	t.Run("not ready", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, testAPIConfig(), errors.New("database down"))
		rec := srv.get(t, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		var health models.HealthStatus
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &health); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if health.Status != "not_ready" || health.DatabaseConnected {
			t.Errorf("health = %+v", health)
		}
	})
}
