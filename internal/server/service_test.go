package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mortsim/internal/model"
)

func newTestService(t *testing.T) (*Service, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	svc := New(Config{
		Defaults: model.Loan{Price: 200000, DownpaymentRate: 0.2, Years: 30, AnnualRate: 0.0703},
		Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
	})
	return svc, &logs
}

func get(t *testing.T, svc *Service, target string) (*http.Response, []byte) {
	t.Helper()
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	resp := rec.Result()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	svc, _ := newTestService(t)
	resp, body := get(t, svc, "/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Fatalf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestSchedule_Defaults(t *testing.T) {
	svc, _ := newTestService(t)
	resp, body := get(t, svc, "/v1/schedule")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var doc struct {
		Payment float64 `json:"payment"`
		Records []struct {
			Period  int     `json:"period"`
			Balance float64 `json:"balance"`
		} `json:"records"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if doc.Payment != 1067.71 {
		t.Errorf("payment = %v, want 1067.71", doc.Payment)
	}
	if len(doc.Records) != 360 {
		t.Fatalf("records = %d, want 360", len(doc.Records))
	}
	if doc.Records[359].Balance != 0 {
		t.Errorf("final balance = %v, want 0", doc.Records[359].Balance)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestSchedule_CSV(t *testing.T) {
	svc, _ := newTestService(t)
	resp, body := get(t, svc, "/v1/schedule?format=csv&years=1&annual_rate=0&price=12000&downpayment_rate=0")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("Content-Type = %q, want text/csv", ct)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 13 {
		t.Fatalf("csv lines = %d, want 13", len(lines))
	}
	if lines[1] != "1,1000.00,0.00,1000.00,11000.00" {
		t.Fatalf("first row = %q", lines[1])
	}
}

func TestSummary_QueryOverrides(t *testing.T) {
	svc, _ := newTestService(t)
	resp, body := get(t, svc, "/v1/summary?price=100000&downpayment_rate=0&years=15&annual_rate=0.05")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var got SummaryBody
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Parameters.TermMonths != 180 {
		t.Errorf("TermMonths = %d, want 180", got.Parameters.TermMonths)
	}
	if got.Summary.PayoffPeriod != 180 {
		t.Errorf("PayoffPeriod = %d, want 180", got.Summary.PayoffPeriod)
	}
	if got.Summary.Payment.String() != "790.79" {
		t.Errorf("payment = %s, want 790.79", got.Summary.Payment)
	}
}

func TestYearly(t *testing.T) {
	svc, _ := newTestService(t)
	resp, body := get(t, svc, "/v1/yearly?years=10")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var years []model.YearRecord
	if err := json.Unmarshal(body, &years); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(years) != 10 {
		t.Fatalf("years = %d, want 10", len(years))
	}
}

func TestInvalidInput(t *testing.T) {
	cases := []struct {
		query string
		param string
	}{
		{"price=0", "price"},
		{"price=abc", "price"},
		{"downpayment_rate=1", "downpayment_rate"},
		{"years=0", "years"},
		{"years=2.5", "years"},
		{"years=101", "years"},
		{"years=100000000", "years"},
		{"annual_rate=-0.01", "annual_rate"},
		{"payment=-10", "payment"},
		{"payment=100", "payment"},
	}

	svc, logs := newTestService(t)
	for _, tc := range cases {
		resp, body := get(t, svc, "/v1/schedule?"+tc.query)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.query, resp.StatusCode)
			continue
		}
		var e ErrorBody
		if err := json.Unmarshal(body, &e); err != nil {
			t.Fatalf("%s: decoding: %v", tc.query, err)
		}
		if e.Param != tc.param {
			t.Errorf("%s: param = %q, want %q", tc.query, e.Param, tc.param)
		}
		if !strings.HasPrefix(e.Error, "invalid input") {
			t.Errorf("%s: error = %q", tc.query, e.Error)
		}
	}

	st := svc.snapshotStatus()
	if st.Rejected != int64(len(cases)) || st.Requests != int64(len(cases)) {
		t.Fatalf("status counters = %+v, want %d rejected", st, len(cases))
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Fatalf("expected warn-level request log, got:\n%s", logs.String())
	}
}

func TestUnknownFormat(t *testing.T) {
	svc, _ := newTestService(t)
	resp, body := get(t, svc, "/v1/schedule?format=xml")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var e ErrorBody
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if e.Param != "format" {
		t.Fatalf("param = %q, want format", e.Param)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	svc, logs := newTestService(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id header = %q, want abc-123", got)
	}
	if !strings.Contains(logs.String(), "request_id=abc-123") {
		t.Fatalf("log missing request id:\n%s", logs.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	svc := New(Config{Addr: "127.0.0.1:0", Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
