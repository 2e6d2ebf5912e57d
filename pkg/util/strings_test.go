package util

import "testing"

func TestTruncateShort(t *testing.T) {
    got := Truncate("abc", 10)
    if got != "abc" {
        t.Fatalf("unexpected %q", got)
    }
}

func TestTruncateCuts(t *testing.T) {
    got := Truncate("abcdef", 3)
    if got != "abc..." {
        t.Fatalf("unexpected %q", got)
    }
}

func TestUniqueKeepsOrder(t *testing.T) {
    got := Unique([]string{"TSM", "AAPL", "TSM", "BABA", "AAPL"})
    if len(got) != 3 || got[0] != "TSM" || got[1] != "AAPL" || got[2] != "BABA" {
        t.Fatalf("unexpected %v", got)
    }
}

func TestUniqueEmptyIsNil(t *testing.T) {
    if got := Unique(nil); got != nil {
        t.Fatalf("unexpected %v", got)
    }
    if got := Unique([]string{}); got != nil {
        t.Fatalf("unexpected %v", got)
    }
}

func TestContainsFold(t *testing.T) {
    if !ContainsFold("Asia Tech Exposure", "asia tech") {
        t.Fatalf("expected match")
    }
    if ContainsFold("asia", "tech") {
        t.Fatalf("unexpected match")
    }
}
