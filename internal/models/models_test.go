package models

import (
	"math"
	"testing"
	"time"
)

var (
	testPricingDate  = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	testMaturityDate = time.Date(2027, 8, 31, 0, 0, 0, 0, time.UTC) // 365 days out
)

func TestMarketDataValidate(t *testing.T) {
	tests := []struct {
		name    string
		market  MarketData
		wantErr bool
	}{
		{"valid", MarketData{Volatility: 0.2, SpotPrice: 100}, false},
		{"valid with dividend", MarketData{Volatility: 0.2, SpotPrice: 100, DividendPrice: 2}, false},
		{"zero volatility", MarketData{Volatility: 0, SpotPrice: 100}, true},
		{"negative volatility", MarketData{Volatility: -0.1, SpotPrice: 100}, true},
		{"zero spot", MarketData{Volatility: 0.2, SpotPrice: 0}, true},
		{"negative dividend", MarketData{Volatility: 0.2, SpotPrice: 100, DividendPrice: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.market.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  ModelParams
		wantErr bool
	}{
		{"valid", ModelParams{testPricingDate, testMaturityDate, 100}, false},
		{"one step", ModelParams{testPricingDate, testMaturityDate, 1}, false},
		{"zero steps", ModelParams{testPricingDate, testMaturityDate, 0}, true},
		{"negative steps", ModelParams{testPricingDate, testMaturityDate, -5}, true},
		{"maturity before pricing", ModelParams{testMaturityDate, testPricingDate, 100}, true},
		{"maturity equals pricing", ModelParams{testPricingDate, testPricingDate, 100}, true},
		{"missing dates", ModelParams{Steps: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelParamsDerived(t *testing.T) {
	params := ModelParams{PricingDate: testPricingDate, MaturityDate: testMaturityDate, Steps: 100}

	if h := params.Horizon(); math.Abs(h-1.0) > 1e-12 {
		t.Errorf("Horizon() = %v, want 1.0", h)
	}
	if dt := params.DeltaT(); math.Abs(dt-0.01) > 1e-12 {
		t.Errorf("DeltaT() = %v, want 0.01", dt)
	}

	// alpha = exp(sigma*sqrt(3*dt))
	want := math.Exp(0.2 * math.Sqrt(3*0.01))
	if a := params.Alpha(0.2); math.Abs(a-want) > 1e-12 {
		t.Errorf("Alpha(0.2) = %v, want %v", a, want)
	}
	if a := params.Alpha(0.2); a <= 1 {
		t.Errorf("Alpha(0.2) = %v, must exceed 1", a)
	}
}

func TestModelParamsStepDate(t *testing.T) {
	params := ModelParams{PricingDate: testPricingDate, MaturityDate: testMaturityDate, Steps: 5}

	if got := params.StepDate(0); !got.Equal(testPricingDate) {
		t.Errorf("StepDate(0) = %v, want pricing date", got)
	}
	if got := params.StepDate(5); !got.Equal(testMaturityDate) {
		t.Errorf("StepDate(5) = %v, want maturity date", got)
	}
	for i := 1; i < 5; i++ {
		d := params.StepDate(i)
		if !d.After(params.StepDate(i-1)) {
			t.Errorf("StepDate(%d) = %v, not increasing", i, d)
		}
	}
}

func TestProductSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		product ProductSpec
		wantErr bool
	}{
		{"valid call", ProductSpec{100, Call, European, testMaturityDate}, false},
		{"valid american put", ProductSpec{95, Put, American, testMaturityDate}, false},
		{"zero strike", ProductSpec{0, Call, European, testMaturityDate}, true},
		{"negative strike", ProductSpec{-10, Call, European, testMaturityDate}, true},
		{"bad kind", ProductSpec{100, OptionKind("STRADDLE"), European, testMaturityDate}, true},
		{"bad style", ProductSpec{100, Call, ExerciseStyle("BERMUDAN"), testMaturityDate}, true},
		{"missing maturity", ProductSpec{100, Call, European, time.Time{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProductSpecPayoff(t *testing.T) {
	call := ProductSpec{Strike: 100, Kind: Call, Style: European, MaturityDate: testMaturityDate}
	put := ProductSpec{Strike: 100, Kind: Put, Style: European, MaturityDate: testMaturityDate}

	if got := call.Payoff(110); got != 10 {
		t.Errorf("call payoff at 110 = %v, want 10", got)
	}
	if got := call.Payoff(90); got != 0 {
		t.Errorf("call payoff at 90 = %v, want 0", got)
	}
	if got := put.Payoff(90); got != 10 {
		t.Errorf("put payoff at 90 = %v, want 10", got)
	}
	if got := put.Payoff(110); got != 0 {
		t.Errorf("put payoff at 110 = %v, want 0", got)
	}
}

func TestParseOptionKind(t *testing.T) {
	for _, s := range []string{"call", "CALL", "c", " Call "} {
		if kind, err := ParseOptionKind(s); err != nil || kind != Call {
			t.Errorf("ParseOptionKind(%q) = %v, %v", s, kind, err)
		}
	}
	for _, s := range []string{"put", "PUT", "p"} {
		if kind, err := ParseOptionKind(s); err != nil || kind != Put {
			t.Errorf("ParseOptionKind(%q) = %v, %v", s, kind, err)
		}
	}
	if _, err := ParseOptionKind("straddle"); err == nil {
		t.Error("ParseOptionKind(straddle) should fail")
	}
}

func TestParseExerciseStyle(t *testing.T) {
	for _, s := range []string{"american", "am", "US"} {
		if style, err := ParseExerciseStyle(s); err != nil || style != American {
			t.Errorf("ParseExerciseStyle(%q) = %v, %v", s, style, err)
		}
	}
	for _, s := range []string{"european", "eu"} {
		if style, err := ParseExerciseStyle(s); err != nil || style != European {
			t.Errorf("ParseExerciseStyle(%q) = %v, %v", s, style, err)
		}
	}
	if _, err := ParseExerciseStyle("bermudan"); err == nil {
		t.Error("ParseExerciseStyle(bermudan) should fail")
	}
}
