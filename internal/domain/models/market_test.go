package models

import (
    "encoding/json"
    "testing"
)

func TestTickerSeriesDecodesCandles(t *testing.T) {
    raw := []byte(`[{"Date": "2026-08-28", "Open": 1, "High": 2, "Low": 0.5, "Close": 1.5, "Volume": 100}]`)
    var s TickerSeries
    if err := json.Unmarshal(raw, &s); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if len(s.Candles) != 1 || s.Candles[0].Close != 1.5 {
        t.Fatalf("candles = %+v", s.Candles)
    }
    if !s.Usable() {
        t.Fatalf("series with candles should be usable")
    }
}

func TestTickerSeriesDecodesError(t *testing.T) {
    var s TickerSeries
    if err := json.Unmarshal([]byte(`{"error": "quota exceeded"}`), &s); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if s.Err != "quota exceeded" {
        t.Fatalf("err = %q", s.Err)
    }
    if s.Usable() {
        t.Fatalf("error series must not be usable")
    }
}

func TestTickerSeriesEmptyListNotUsable(t *testing.T) {
    var s TickerSeries
    if err := json.Unmarshal([]byte(`[]`), &s); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if s.Usable() {
        t.Fatalf("empty series must not be usable")
    }
}

func TestMarketDataRoundTrip(t *testing.T) {
    raw := []byte(`{"AAPL": [{"Date": "2026-08-28", "Close": 1.5}], "TSM": {"error": "unavailable"}}`)
    var m MarketData
    if err := json.Unmarshal(raw, &m); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }

    out, err := json.Marshal(m)
    if err != nil {
        t.Fatalf("marshal: %v", err)
    }
    var back MarketData
    if err := json.Unmarshal(out, &back); err != nil {
        t.Fatalf("re-unmarshal: %v", err)
    }
    if back["TSM"].Err != "unavailable" || len(back["AAPL"].Candles) != 1 {
        t.Fatalf("round trip lost data: %+v", back)
    }
}
