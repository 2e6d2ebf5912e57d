package normalizer

import "testing"

func TestNormalizeLowercases(t *testing.T) {
    if got := Normalize("How Is APPLE Doing"); got != "how is apple doing" {
        t.Fatalf("unexpected: %q", got)
    }
}

func TestNormalizeCorrections(t *testing.T) {
    cases := []struct {
        in   string
        want string
    }{
        {"asian tech stocks", "asia tech stocks"},
        {"asia take stocks", "asia tech stocks"},
        {"azure tech exposure", "asia tech exposure"},
        {"age of tech stocks", "asia tech stocks"},
        {"tech stalks are up", "tech stocks are up"},
        {"the stalk market today", "the stock market today"},
        {"stalk price of apple", "stock price of apple"},
        {"my crows off earnings", "microsoft earnings"},
        {"te sla deliveries", "tesla deliveries"},
        {"in video results", "nvidia results"},
        {"earning surprises this week", "earnings surprises this week"},
        {"an earning surprise", "an earnings surprise"},
    }
    for _, c := range cases {
        if got := Normalize(c.in); got != c.want {
            t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
        }
    }
}

func TestNormalizeIdempotent(t *testing.T) {
    inputs := []string{
        "asian tech stalk market earning surprises",
        "te sla and in video",
        "give me a market update",
    }
    for _, in := range inputs {
        once := Normalize(in)
        twice := Normalize(once)
        if once != twice {
            t.Fatalf("not idempotent for %q: %q vs %q", in, once, twice)
        }
    }
}

func TestNormalizeUntouchedQuery(t *testing.T) {
    in := "what is the outlook for semiconductor demand"
    if got := Normalize(in); got != in {
        t.Fatalf("clean query was altered: %q", got)
    }
}
