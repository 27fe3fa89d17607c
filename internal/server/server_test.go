package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ShortSentinel/internal/model"
	"ShortSentinel/internal/snapshot"
)

func testServer(cycle *snapshot.Cycle) *Server {
	store := snapshot.NewStore()
	if cycle != nil {
		store.Set(cycle)
	}
	return NewServer(":0", store)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)
	return rec
}

func sampleCycle() *snapshot.Cycle {
	mp := &model.MarketPattern{
		Weekly: map[time.Weekday]model.DayPattern{
			time.Monday: {WinRate: 0.6, TotalCount: 10, NegativeCount: 6, PositiveCount: 4},
		},
		SymbolCount: 42,
		BuiltAt:     time.Now(),
	}
	return &snapshot.Cycle{
		Scores: []model.CoinScore{
			{Symbol: "AUSDT", FinalScore: 80, Ticker: model.Ticker{Symbol: "AUSDT", LastPrice: 1.5}},
			{Symbol: "BUSDT", FinalScore: 60, Ticker: model.Ticker{Symbol: "BUSDT", LastPrice: 2.5}},
			{Symbol: "CUSDT", FinalScore: 40, Ticker: model.Ticker{Symbol: "CUSDT", LastPrice: 3.5}},
		},
		Market:      mp,
		TimingScore: 0.55,
		Source:      "mock",
		RefreshedAt: time.Now(),
	}
}

func TestHandleScores_BeforeFirstCycle(t *testing.T) {
	rec := get(t, testServer(nil), "/api/v1/scores")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rec.Code)
	}
}

func TestHandleScores_LimitAndOrder(t *testing.T) {
	s := testServer(sampleCycle())
	rec := get(t, s, "/api/v1/scores?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp scoresResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Scores) != 2 {
		t.Fatalf("limit ignored: got %d rows", len(resp.Scores))
	}
	if resp.Scores[0].Symbol != "AUSDT" || resp.Scores[1].Symbol != "BUSDT" {
		t.Errorf("ranking order lost: %+v", resp.Scores)
	}
	if resp.Source != "mock" || resp.TimingScore != 0.55 {
		t.Errorf("cycle metadata missing: %+v", resp)
	}
}

func TestHandleScore_SymbolLookup(t *testing.T) {
	s := testServer(sampleCycle())

	rec := get(t, s, "/api/v1/scores/busdt")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var detail scoreDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.Symbol != "BUSDT" || detail.FinalScore != 60 {
		t.Errorf("wrong symbol payload: %+v", detail.scoreRow)
	}

	if rec := get(t, s, "/api/v1/scores/NOPEUSDT"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown symbol: got %d, want 404", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, testServer(nil), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["warmed_up"] != false {
		t.Errorf("cold store must report warmed_up=false: %v", payload)
	}

	rec = get(t, testServer(sampleCycle()), "/healthz")
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["warmed_up"] != true || payload["symbols"] != float64(3) {
		t.Errorf("warm store payload wrong: %v", payload)
	}
}

func TestHandleSeasonality(t *testing.T) {
	s := testServer(sampleCycle())

	rec := get(t, s, "/api/v1/seasonality/weekly")
	if rec.Code != http.StatusOK {
		t.Fatalf("weekly status: got %d, want 200", rec.Code)
	}
	var weekly weeklyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &weekly); err != nil {
		t.Fatal(err)
	}
	if len(weekly.Days) != 7 || weekly.SymbolCount != 42 {
		t.Errorf("weekly payload wrong: %d days, %d symbols", len(weekly.Days), weekly.SymbolCount)
	}
	if weekly.Days[int(time.Monday)].WinRate != 0.6 {
		t.Errorf("monday row: %+v", weekly.Days[int(time.Monday)])
	}

	rec = get(t, s, "/api/v1/seasonality/heatmap")
	if rec.Code != http.StatusOK {
		t.Fatalf("heatmap status: got %d, want 200", rec.Code)
	}
	var heatmap heatmapResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &heatmap); err != nil {
		t.Fatal(err)
	}
	if len(heatmap.Cells) != 7*24 {
		t.Errorf("heatmap cells: got %d, want 168", len(heatmap.Cells))
	}

	// No aggregate yet
	cold := sampleCycle()
	cold.Market = nil
	if rec := get(t, testServer(cold), "/api/v1/seasonality/weekly"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("missing aggregate: got %d, want 503", rec.Code)
	}
}
