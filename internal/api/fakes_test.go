// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsense/internal/advisor"
	"github.com/tomtom215/shopsense/internal/config"
	"github.com/tomtom215/shopsense/internal/models"
	"github.com/tomtom215/shopsense/internal/recommend"
)

type fakeRecommender struct {
	mu      sync.Mutex
	resp    *recommend.Response
	err     error
	lastReq recommend.Request
}

func (f *fakeRecommender) Recommend(_ context.Context, req recommend.Request) (*recommend.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeAdvisor struct {
	suggestions []advisor.Suggestion
	err         error
	lastID      int64
}

func (f *fakeAdvisor) Suggestions(_ context.Context, merchantID int64) ([]advisor.Suggestion, error) {
	f.lastID = merchantID
	return f.suggestions, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func testAPIConfig() *config.APIConfig {
	return &config.APIConfig{
		DefaultLimit:      10,
		MaxLimit:          50,
		CORSOrigins:       []string{"https://shop.example"},
		RateLimitReqs:     100,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
	}
}

func strPtr(s string) *string { return &s }

func sampleResponse() *recommend.Response {
	score := 0.71
	return &recommend.Response{
		Items: []recommend.Record{
			{ProductID: 12, Name: "Kettle", Price: 30, Category: strPtr("kitchen"), MerchantName: "Acme", Reason: recommend.ReasonHistory, Score: &score},
			{ProductID: 13, Name: "Mug", Price: 5, MerchantName: recommend.UnknownMerchant, Reason: recommend.ReasonPopularity},
		},
		Metadata: recommend.ResponseMetadata{Path: recommend.PathHistory, HistoryItems: 1, PopularityItems: 1},
	}
}

type testServer struct {
	handler     http.Handler
	recommender *fakeRecommender
	advisor     *fakeAdvisor
}

func newTestServer(t *testing.T, cfg *config.APIConfig, ping error) *testServer {
	t.Helper()
	rec := &fakeRecommender{resp: sampleResponse()}
	adv := &fakeAdvisor{}
	h := NewHandler(rec, adv, fakePinger{err: ping}, cfg, "test")
	router := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFromAPI(cfg)), zerolog.Nop())
	return &testServer{handler: router.Setup(), recommender: rec, advisor: adv}
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// envelope mirrors models.APIResponse with raw data for decoding in tests.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}
