package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seenimoa/alphavault/internal/app"
	"github.com/seenimoa/alphavault/internal/config"
	"github.com/seenimoa/alphavault/internal/edgar"
	"github.com/seenimoa/alphavault/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

var testNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func day(m time.Month, d int) time.Time { return time.Date(2024, m, d, 9, 0, 0, 0, time.UTC) }

type fakeSource struct {
	mu      sync.Mutex
	eightKs []models.FilingSummary
	events  []models.FilingSummary
	err     error
}

func (f *fakeSource) RecentEightKs(context.Context, string, time.Time) ([]models.FilingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.eightKs, f.err
}

func (f *fakeSource) S4Filings(context.Context, string, time.Time) ([]models.FilingSummary, error) {
	return []models.FilingSummary{}, f.err
}

func (f *fakeSource) MaterialEvents(context.Context, string, time.Time) ([]models.FilingSummary, error) {
	return f.events, f.err
}

func scenarioSource() *fakeSource {
	return &fakeSource{
		eightKs: []models.FilingSummary{
			{CIK: "0000320193", AccessionNumber: "a-1", FormType: models.Form8K, FiledDate: day(6, 25), Items: []string{"1.01", "9.01"}, IsMaterialAgreement: true},
			{CIK: "0000320193", AccessionNumber: "a-2", FormType: models.Form8K, FiledDate: day(6, 20), Items: []string{"5.02"}, IsLeadershipChange: true},
			{CIK: "0000320193", AccessionNumber: "a-3", FormType: models.Form8K, FiledDate: day(6, 10), Items: []string{"5.07"}},
			{CIK: "0000320193", AccessionNumber: "a-4", FormType: models.Form8K, FiledDate: day(5, 20), Items: []string{"8.01"}, Summary: "The Board of Directors approved a strategic review."},
		},
		events: []models.FilingSummary{
			{CIK: "0000320193", AccessionNumber: "a-1", FormType: models.Form8K, FiledDate: day(6, 25), Items: []string{"1.01"}, IsMaterialAgreement: true},
			{CIK: "0000320193", AccessionNumber: "e-9", FormType: models.Form8K, FiledDate: day(6, 5), Items: []string{"8.01"}, Summary: "Wachtell, Lipton, Rosen & Katz is acting as legal counsel."},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Edgar: config.EdgarConfig{
			UserAgent:  "Acme Research ops@acme.test",
			DataURL:    "http://127.0.0.1:0",
			RateLimit:  0,
			TimeoutSec: 1,
		},
		Parser: config.ParserConfig{
			S4MinLength: 1000, Form8KMinLength: 500, SectionCap: 5000, ExcerptLength: 500,
		},
		Analytics: config.AnalyticsConfig{LookbackDays: 90, ActivityWindowDays: 30},
		API:       config.APIConfig{Host: "127.0.0.1", Port: 8080},
		Logging:   config.LoggingConfig{Level: "error", Format: "json"},
	}
}

func testServer(t *testing.T, src *fakeSource) *Server {
	t.Helper()
	a, err := app.New(testConfig(),
		app.WithFilingSource(src),
		app.WithClock(func() time.Time { return testNow }),
	)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	srv := NewServer(a)
	go srv.wsHub.Run()
	t.Cleanup(srv.wsHub.Stop)
	return srv
}

func do(t *testing.T, srv *Server, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func dataMap(t *testing.T, resp APIResponse) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data should be an object, got %T", resp.Data)
	}
	return m
}

const completion8K = `UNITED STATES
SECURITIES AND EXCHANGE COMMISSION
FORM 8-K
CURRENT REPORT
Date of Report (Date of earliest event reported): March 1, 2024

Item 2.01 Completion of Acquisition or Disposition of Assets.
On March 1, 2024, the Company completed its previously announced acquisition of Gamma Robotics, Inc. for aggregate consideration of approximately $750 million in cash.
In connection with the closing, management identified a material weakness in internal control over financial reporting at the acquired business.

SIGNATURES
Pursuant to the requirements of the Securities Exchange Act of 1934, the registrant has duly caused this report to be signed on its behalf by the undersigned hereunto duly authorized.
ALPHA HOLDINGS INC
By: /s/ Jane A. Doe
Name: Jane A. Doe
Title: Chief Financial Officer
`

// ════════════════════════════════════════════════════════════════════
// Health / config
// ════════════════════════════════════════════════════════════════════

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, scenarioSource())
	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := do(t, srv, "GET", path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status: got %d, want %d", path, rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type: got %q", ct)
		}
		data := dataMap(t, decodeResponse(t, rec))
		if data["status"] != "ok" {
			t.Errorf("status: got %v", data["status"])
		}
		for _, k := range []string{"version", "time_et", "ws_clients"} {
			if _, ok := data[k]; !ok {
				t.Errorf("missing %s", k)
			}
		}
	}
}

func TestHandleGetConfigMasksIdentity(t *testing.T) {
	srv := testServer(t, scenarioSource())
	rec := do(t, srv, "GET", "/api/v1/config", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "ops@acme.test") {
		t.Errorf("identity leaked: %s", body)
	}
	if !strings.Contains(body, "Acm...est") {
		t.Errorf("masked identity missing: %s", body)
	}
	if srv.app.Config.Edgar.UserAgent != "Acme Research ops@acme.test" {
		t.Error("running config must not be modified")
	}

	rec = do(t, srv, "GET", "/api/v1/config/credentials", "", "")
	resp := decodeResponse(t, rec)
	list, ok := resp.Data.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("credentials: got %v", resp.Data)
	}
}

// ════════════════════════════════════════════════════════════════════
// Filing parsers
// ════════════════════════════════════════════════════════════════════

func TestParse8KPlainText(t *testing.T) {
	srv := testServer(t, scenarioSource())
	rec := do(t, srv, "POST", "/api/v1/filings/8k", "text/plain; charset=utf-8", completion8K)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool                `json:"success"`
		Data    models.Form8KRecord `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Analytics.CriticalityScore != 100 || resp.Data.Analytics.MarketImpact != models.ImpactHigh {
		t.Errorf("analytics: got %+v", resp.Data.Analytics)
	}
	if resp.Data.Item201 == nil {
		t.Error("Item201 should be parsed")
	}
}

func TestParse8KJSONWithEnvelope(t *testing.T) {
	srv := testServer(t, scenarioSource())
	body, _ := json.Marshal(ParseRequest{
		Text:            "<html><body><p>" + strings.ReplaceAll(completion8K, "\n", "</p><p>") + "</p></body></html>",
		CIK:             "0000000001",
		AccessionNumber: "0000000001-24-000001",
		FiledDate:       "2024-03-04",
	})
	rec := do(t, srv, "POST", "/api/v1/filings/8k", "application/json", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.Form8KRecord `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Metadata.AccessionNumber != "0000000001-24-000001" {
		t.Errorf("AccessionNumber: got %q", resp.Data.Metadata.AccessionNumber)
	}
	if resp.Data.Item201 == nil {
		t.Error("HTML body should be normalized before parsing")
	}
}

func TestParseTooShortIs422(t *testing.T) {
	srv := testServer(t, scenarioSource())
	for _, path := range []string{"/api/v1/filings/8k", "/api/v1/filings/s4"} {
		rec := do(t, srv, "POST", path, "application/json", `{"text":"Item 2.01 Completion of Acquisition"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s status: got %d, want 422", path, rec.Code)
		}
		resp := decodeResponse(t, rec)
		if resp.Success {
			t.Error("expected success=false")
		}
		data := dataMap(t, resp)
		if data["kind"] != string(models.KindDocumentTooShort) {
			t.Errorf("kind: got %v", data["kind"])
		}
		if data["raw_text"] != "Item 2.01 Completion of Acquisition" {
			t.Errorf("raw_text: got %v", data["raw_text"])
		}
	}
}

func TestParseBadRequests(t *testing.T) {
	srv := testServer(t, scenarioSource())
	tests := []struct {
		name, contentType, body string
	}{
		{"invalid json", "application/json", "{not json"},
		{"bad filed date", "application/json", `{"text":"x","filed_date":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, "POST", "/api/v1/filings/s4", tt.contentType, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// M&A analytics
// ════════════════════════════════════════════════════════════════════

func TestMAProbability(t *testing.T) {
	srv := testServer(t, scenarioSource())
	rec := do(t, srv, "GET", "/api/v1/ma/aapl?lookback=90", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.MAProbability `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Ticker != "AAPL" || resp.Data.ProbabilityScore != 63 || resp.Data.RiskLevel != "HIGH" {
		t.Errorf("got %s %d %s, want AAPL 63 HIGH", resp.Data.Ticker, resp.Data.ProbabilityScore, resp.Data.RiskLevel)
	}
}

func TestMAProbabilityErrors(t *testing.T) {
	srv := testServer(t, scenarioSource())
	if rec := do(t, srv, "GET", "/api/v1/ma/AAPL?lookback=abc", "", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad lookback: got %d, want 400", rec.Code)
	}
	if rec := do(t, srv, "GET", "/api/v1/ma/AAPL?lookback=-5", "", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("negative lookback: got %d, want 400", rec.Code)
	}

	down := testServer(t, &fakeSource{err: errors.New("edgar down")})
	rec := do(t, down, "GET", "/api/v1/ma/AAPL", "", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("all sources failing: got %d, want 502", rec.Code)
	}

	unknown := testServer(t, &fakeSource{err: fmt.Errorf("%w: ZZZZ", edgar.ErrCIKNotFound)})
	rec = do(t, unknown, "GET", "/api/v1/ma/ZZZZ", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown ticker: got %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CIK not found") {
		t.Errorf("unknown ticker body: got %s", rec.Body.String())
	}
}

func TestPremium(t *testing.T) {
	srv := testServer(t, scenarioSource())
	rec := do(t, srv, "POST", "/api/v1/ma/premium", "application/json",
		`{"current_price":100,"sector":"Technology","market_cap":500000000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.TakeoverPremium `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.PremiumPercent != 40 || resp.Data.TargetPrice != 140 {
		t.Errorf("got %v%% → %v, want 40%% → 140", resp.Data.PremiumPercent, resp.Data.TargetPrice)
	}

	if rec := do(t, srv, "POST", "/api/v1/ma/premium", "application/json", `{"current_price":0}`); rec.Code != http.StatusBadRequest {
		t.Errorf("zero price: got %d, want 400", rec.Code)
	}
}

func TestTimeline(t *testing.T) {
	srv := testServer(t, scenarioSource())
	rec := do(t, srv, "POST", "/api/v1/ma/timeline", "application/json",
		`{"approvals_required":["FTC","DOJ","European Commission","Shareholders"],"announced_date":"2024-01-15T00:00:00Z"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.RegulatoryTimeline `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Months != 23 {
		t.Errorf("Months: got %d, want 23", resp.Data.Months)
	}
	if resp.Data.ExpectedClose == nil || resp.Data.ExpectedClose.Format("2006-01-02") != "2025-12-15" {
		t.Errorf("ExpectedClose: got %v", resp.Data.ExpectedClose)
	}
}

// ════════════════════════════════════════════════════════════════════
// Ranking / quotes
// ════════════════════════════════════════════════════════════════════

const rankBody = `{"narrate":true,"deals":[
 {"company_name":"Quarterly Co","form_type":"10-Q","filed_date":"2024-06-01T00:00:00Z"},
 {"company_name":"Alpha Holdings","ticker":"ALPH","cik":"1","form_type":"S-4","filed_date":"2024-06-25T00:00:00Z","summary":"Agreement and Plan of Merger with Beta Systems"}
]}`

func TestRankDeals(t *testing.T) {
	srv := testServer(t, scenarioSource())
	rec := do(t, srv, "POST", "/api/v1/deals/rank", "application/json", rankBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data RankResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Ranked) != 2 {
		t.Fatalf("ranked: got %d, want 2", len(resp.Data.Ranked))
	}
	if resp.Data.Ranked[0].Rank != 1 || resp.Data.Ranked[0].Deal.CompanyName != "Alpha Holdings" {
		t.Errorf("first: got %d %s", resp.Data.Ranked[0].Rank, resp.Data.Ranked[0].Deal.CompanyName)
	}
	if resp.Data.Ranked[0].Score < resp.Data.Ranked[1].Score {
		t.Error("ranked list should be sorted by score")
	}
	if !strings.Contains(resp.Data.Narrative, "## Top 2 of 2 deal filings") {
		t.Errorf("narrative: %q", resp.Data.Narrative)
	}

	if rec := do(t, srv, "POST", "/api/v1/deals/rank", "application/json", `{"deals":[]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty deals: got %d, want 400", rec.Code)
	}
}

func TestQuoteScore(t *testing.T) {
	srv := testServer(t, scenarioSource())
	body := `{"quote":{"symbol":"aapl","price":190,"open":185,"percent_change":3,"year_high":200,"year_low":150,
	"volume":90000000,"avg_volume":50000000,"market_cap":2.9e12,"pe":30},
	"profile":{"symbol":"AAPL","beta":1.25,"dividend_yield":0.5}}`
	rec := do(t, srv, "POST", "/api/v1/quote/score", "application/json", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.CompositeScore `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Overall != 71 || resp.Data.Rating != "Buy" || resp.Data.Symbol != "AAPL" {
		t.Errorf("got %s %d %s, want AAPL 71 Buy", resp.Data.Symbol, resp.Data.Overall, resp.Data.Rating)
	}

	if rec := do(t, srv, "POST", "/api/v1/quote/score", "application/json", `{"quote":{"symbol":"X"}}`); rec.Code != http.StatusBadRequest {
		t.Errorf("zero price: got %d, want 400", rec.Code)
	}
}

func TestErrorResponsesAreValidJSON(t *testing.T) {
	srv := testServer(t, scenarioSource())
	paths := []string{"/api/v1/ma/premium", "/api/v1/ma/timeline", "/api/v1/deals/rank", "/api/v1/quote/score"}
	for _, p := range paths {
		rec := do(t, srv, "POST", p, "application/json", "{{{")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", p, rec.Code)
			continue
		}
		resp := decodeResponse(t, rec)
		if resp.Success || resp.Error == "" {
			t.Errorf("%s: got %+v", p, resp)
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// WebSocket hub
// ════════════════════════════════════════════════════════════════════

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWSHub_RegisterAndUnregister(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()
	defer hub.Stop()

	client := NewWSClient(hub)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	if _, ok := <-client.Messages(); ok {
		t.Error("send channel should be closed after unregister")
	}
}

func TestWSHub_Broadcast(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()
	defer hub.Stop()

	c1, c2 := NewWSClient(hub), NewWSClient(hub)
	hub.Register(c1)
	hub.Register(c2)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Broadcast(WSMessage{Type: EventMAScored, Data: "AAPL"})
	for i, c := range []*WSClient{c1, c2} {
		select {
		case got := <-c.Messages():
			if got.Type != EventMAScored {
				t.Errorf("client%d got type=%q", i+1, got.Type)
			}
		case <-time.After(time.Second):
			t.Errorf("client%d did not receive message", i+1)
		}
	}
}

func TestWSHub_BroadcastDoesNotBlock(t *testing.T) {
	hub := NewWSHub()
	// Hub not running: the queue fills and further messages are dropped.
	done := make(chan bool)
	go func() {
		for i := 0; i < 300; i++ {
			hub.Broadcast(WSMessage{Type: "test"})
		}
		done <- true
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked when buffer was full")
	}
}

func TestWebSocketReceivesRankEvent(t *testing.T) {
	srv := testServer(t, scenarioSource())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, func() bool { return srv.Hub().ClientCount() == 1 })

	resp, err := http.Post(ts.URL+"/api/v1/deals/rank", "application/json", bytes.NewBufferString(rankBody))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != EventDealsRanked {
		t.Errorf("type: got %q, want %q", msg.Type, EventDealsRanked)
	}
	data, _ := msg.Data.(map[string]any)
	if data["top"] != "Alpha Holdings" {
		t.Errorf("top: got %v", data["top"])
	}
}
