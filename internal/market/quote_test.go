package market

import (
	"testing"
)

func TestSynthesizeQuote_KnownSymbol(t *testing.T) {
	q := SynthesizeQuote("aapl", fixedEntropy{v: 0.5})

	if q.Symbol != "AAPL" {
		t.Errorf("expected uppercased symbol, got %s", q.Symbol)
	}
	if q.ShortName != "Apple Inc." {
		t.Errorf("expected catalog name, got %s", q.ShortName)
	}

	// With entropy pinned at 0.5: changePercent = 0.3, change = base*0.003.
	if q.RegularMarketChangePercent != 0.3 {
		t.Errorf("expected change percent 0.3, got %v", q.RegularMarketChangePercent)
	}
	if q.RegularMarketChange != 0.44 {
		t.Errorf("expected change 0.44, got %v", q.RegularMarketChange)
	}
	if q.RegularMarketPrice != 146.29 {
		t.Errorf("expected price 146.29, got %v", q.RegularMarketPrice)
	}
}

func TestSynthesizeQuote_UnknownSymbolName(t *testing.T) {
	q := SynthesizeQuote("zzzz", fixedEntropy{v: 0.1})

	if q.ShortName != "ZZZZ Inc." {
		t.Errorf("expected synthesized display name, got %s", q.ShortName)
	}
}

func TestSynthesizeQuote_DayRangeBracketsPrice(t *testing.T) {
	for _, sym := range []string{"AAPL", "MSFT", "ZZZZ"} {
		q := SynthesizeQuote(sym, fixedEntropy{v: 0.73})

		if q.RegularMarketDayHigh < q.RegularMarketPrice {
			t.Errorf("%s: day high %v below price %v", sym, q.RegularMarketDayHigh, q.RegularMarketPrice)
		}
		if q.RegularMarketDayLow > q.RegularMarketPrice {
			t.Errorf("%s: day low %v above price %v", sym, q.RegularMarketDayLow, q.RegularMarketPrice)
		}
		if q.RegularMarketVolume < 1000000 {
			t.Errorf("%s: volume %d below floor", sym, q.RegularMarketVolume)
		}
		if q.MarketCap <= 0 {
			t.Errorf("%s: non-positive market cap %d", sym, q.MarketCap)
		}
	}
}
