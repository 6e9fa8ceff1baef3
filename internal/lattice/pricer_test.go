package lattice

import (
	"math"
	"testing"

	"lattice-pricer/internal/analysis/blackscholes"
	"lattice-pricer/internal/errors"
	"lattice-pricer/internal/models"
)

func newTestPricer(t *testing.T) *Pricer {
	t.Helper()
	p := NewPricer(0)
	t.Cleanup(p.Close)
	return p
}

// Reference scenario: sigma=0.2, S0=100, r=0.05, T=1, K=100. The
// Black-Scholes European call price is about 10.4506.
func TestPriceEuropeanCallMatchesBlackScholes(t *testing.T) {
	p := newTestPricer(t)

	price, err := p.Price(testMarket(), testParams(100), testProduct(100, models.Call, models.European))
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}

	ref, err := blackscholes.Price(models.Call, blackscholes.Inputs{
		Spot: 100, Strike: 100, Rate: 0.05, Volatility: 0.2, Horizon: 1,
	})
	if err != nil {
		t.Fatalf("blackscholes.Price() error = %v", err)
	}

	if math.Abs(price-ref) > 0.05 {
		t.Errorf("lattice price %v, Black-Scholes %v, diff %v", price, ref, price-ref)
	}
}

func TestPutCallParity(t *testing.T) {
	p := newTestPricer(t)
	market := testMarket()
	params := testParams(200)

	call, err := p.Price(market, params, testProduct(100, models.Call, models.European))
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	put, err := p.Price(market, params, testProduct(100, models.Put, models.European))
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	want := market.SpotPrice - 100*math.Exp(-market.InterestRate*params.Horizon())
	if math.Abs((call-put)-want) > 1e-3 {
		t.Errorf("call-put = %v, parity requires %v", call-put, want)
	}
}

func TestAmericanAtLeastEuropean(t *testing.T) {
	p := newTestPricer(t)
	market := testMarket()
	params := testParams(100)

	for _, kind := range []models.OptionKind{models.Call, models.Put} {
		for _, strike := range []float64{80, 100, 120} {
			european, err := p.Price(market, params, testProduct(strike, kind, models.European))
			if err != nil {
				t.Fatalf("european %s K=%v: %v", kind, strike, err)
			}
			american, err := p.Price(market, params, testProduct(strike, kind, models.American))
			if err != nil {
				t.Fatalf("american %s K=%v: %v", kind, strike, err)
			}
			if american < european-1e-9 {
				t.Errorf("%s K=%v: american %v below european %v", kind, strike, american, european)
			}
		}
	}
}

// A deep in-the-money American put carries a strictly positive early
// exercise premium when rates are positive.
func TestAmericanPutEarlyExercisePremium(t *testing.T) {
	p := newTestPricer(t)
	market := testMarket()
	params := testParams(100)

	european, err := p.Price(market, params, testProduct(130, models.Put, models.European))
	if err != nil {
		t.Fatalf("european: %v", err)
	}
	american, err := p.Price(market, params, testProduct(130, models.Put, models.American))
	if err != nil {
		t.Fatalf("american: %v", err)
	}

	if american-european < 0.01 {
		t.Errorf("early exercise premium %v, want strictly positive", american-european)
	}
}

func TestConvergenceToBlackScholes(t *testing.T) {
	p := newTestPricer(t)
	market := testMarket()

	ref, err := blackscholes.Price(models.Call, blackscholes.Inputs{
		Spot: 100, Strike: 100, Rate: 0.05, Volatility: 0.2, Horizon: 1,
	})
	if err != nil {
		t.Fatalf("blackscholes.Price() error = %v", err)
	}

	tolerances := map[int]float64{
		50:  0.10,
		100: 0.05,
		200: 0.03,
		400: 0.02,
	}
	for _, steps := range []int{50, 100, 200, 400} {
		price, err := p.Price(market, testParams(steps), testProduct(100, models.Call, models.European))
		if err != nil {
			t.Fatalf("steps=%d: %v", steps, err)
		}
		if diff := math.Abs(price - ref); diff > tolerances[steps] {
			t.Errorf("steps=%d: |price-ref| = %v, tolerance %v", steps, diff, tolerances[steps])
		}
	}
}

// With a single step the price is one discounted expectation over the
// three leaf payoffs.
func TestSingleStepReducesToDiscountedExpectation(t *testing.T) {
	p := newTestPricer(t)
	product := testProduct(100, models.Call, models.European)

	price, tree, err := p.PriceWithLattice(testMarket(), testParams(1), product)
	if err != nil {
		t.Fatalf("PriceWithLattice() error = %v", err)
	}
	if len(tree.Layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(tree.Layers))
	}

	root := &tree.Layers[0]
	leaves := &tree.Layers[1]
	up, mid, down := root.Probabilities(0)
	want := tree.Discount * (up*product.Payoff(leaves.Price(1)) +
		mid*product.Payoff(leaves.Price(0)) +
		down*product.Payoff(leaves.Price(-1)))

	if math.Abs(price-want) > 1e-12 {
		t.Errorf("price %v, discounted expectation %v", price, want)
	}
}

func TestPriceValidation(t *testing.T) {
	p := newTestPricer(t)

	tests := []struct {
		name    string
		market  models.MarketData
		params  models.ModelParams
		product models.ProductSpec
	}{
		{"zero steps", testMarket(), testParams(0), testProduct(100, models.Call, models.European)},
		{"negative volatility", models.MarketData{Volatility: -0.1, SpotPrice: 100}, testParams(100), testProduct(100, models.Call, models.European)},
		{"zero spot", models.MarketData{Volatility: 0.2, SpotPrice: 0}, testParams(100), testProduct(100, models.Call, models.European)},
		{"zero strike", testMarket(), testParams(100), testProduct(0, models.Call, models.European)},
		{"bad kind", testMarket(), testParams(100), testProduct(100, models.OptionKind("X"), models.European)},
		{"bad style", testMarket(), testParams(100), models.ProductSpec{Strike: 100, Kind: models.Call, Style: models.ExerciseStyle("X"), MaturityDate: testMaturityDate}},
		{"maturity mismatch", testMarket(), testParams(100), models.ProductSpec{Strike: 100, Kind: models.Call, Style: models.European, MaturityDate: testMaturityDate.AddDate(0, 1, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Price(tt.market, tt.params, tt.product)
			if err == nil {
				t.Fatal("Price() should fail")
			}
			var valErr *errors.ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("error = %T (%v), want *errors.ValidationError", err, err)
			}
		})
	}
}

func TestPriceDeterministic(t *testing.T) {
	p := newTestPricer(t)
	product := testProduct(100, models.Put, models.American)

	first, err := p.Price(testMarket(), testParams(150), product)
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := p.Price(testMarket(), testParams(150), product)
		if err != nil {
			t.Fatalf("Price() error = %v", err)
		}
		if again != first {
			t.Fatalf("run %d: price %v differs from first run %v", i, again, first)
		}
	}
}

func BenchmarkPriceEuropean(b *testing.B) {
	p := NewPricer(0)
	defer p.Close()
	product := testProduct(100, models.Call, models.European)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Price(testMarket(), testParams(200), product); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPriceAmerican(b *testing.B) {
	p := NewPricer(0)
	defer p.Close()
	product := testProduct(100, models.Put, models.American)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Price(testMarket(), testParams(200), product); err != nil {
			b.Fatal(err)
		}
	}
}
