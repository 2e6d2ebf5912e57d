package models

import (
	"bytes"
	"encoding/json"
)

// Candle represents one OHLCV record as returned by the market data agent.
// Field names are capitalized on the wire.
type Candle struct {
	Date   string  `json:"Date"`
	Open   float64 `json:"Open"`
	High   float64 `json:"High"`
	Low    float64 `json:"Low"`
	Close  float64 `json:"Close"`
	Volume float64 `json:"Volume"`
}

// TickerSeries is the per-ticker payload of the market data agent. The agent
// returns either a candle list or an {"error": ...} object per ticker; both
// decode into this type.
type TickerSeries struct {
	Candles []Candle
	Err     string
}

func (s *TickerSeries) UnmarshalJSON(b []byte) error {
	t := bytes.TrimSpace(b)
	if len(t) > 0 && t[0] == '[' {
		return json.Unmarshal(t, &s.Candles)
	}
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(t, &e); err != nil {
		return err
	}
	s.Err = e.Error
	return nil
}

func (s TickerSeries) MarshalJSON() ([]byte, error) {
	if s.Err != "" {
		return json.Marshal(map[string]string{"error": s.Err})
	}
	return json.Marshal(s.Candles)
}

// Usable reports whether the series carries data worth analyzing: at least
// one candle and no error marker. An empty list counts as missing.
func (s TickerSeries) Usable() bool {
	return s.Err == "" && len(s.Candles) > 0
}

// MarketData maps ticker symbol to its series.
type MarketData map[string]TickerSeries
