package bond_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fixedincome/bond"
)

func TestAnalyze_ModelPrice(t *testing.T) {
	t.Parallel()

	calc := bond.NewCalculator(bond.DefaultConfig)
	in := bond.Input{ParValue: 1000, YieldToMaturity: 6, CouponRate: 4, Years: 5}

	res, err := calc.Analyze(in)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.Price != res.PresentValue {
		t.Fatalf("expected model price %.10f, got %.10f", res.PresentValue, res.Price)
	}

	pv, _ := calc.PresentValue(in.ParValue, in.YieldToMaturity, in.CouponRate, in.Years)
	dur, _ := calc.Duration(in.ParValue, pv, in.YieldToMaturity, in.CouponRate, in.Years)
	cvx, _ := calc.Convexity(in.ParValue, pv, in.YieldToMaturity, in.CouponRate, in.Years)
	if res.PresentValue != pv || res.Duration != dur || res.Convexity != cvx {
		t.Fatalf("Analyze %+v disagrees with PV=%.10f D=%.10f C=%.10f", res, pv, dur, cvx)
	}
}

func TestAnalyze_MarketPrice(t *testing.T) {
	t.Parallel()

	calc := bond.NewCalculator(bond.DefaultConfig)
	in := bond.Input{ParValue: 1000, YieldToMaturity: 5, CouponRate: 5, Years: 10, Price: 980}

	res, err := calc.Analyze(in)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.Price != 980 {
		t.Fatalf("expected supplied price 980, got %.10f", res.Price)
	}
	assertClose(t, "PresentValue", res.PresentValue, 1000, 1e-10)

	dur, _ := calc.Duration(1000, 980, 5, 5, 10)
	if res.Duration != dur {
		t.Fatalf("Duration %.12f != %.12f", res.Duration, dur)
	}
}

func TestAnalyze_ZeroCouponMacaulayEqualsMaturity(t *testing.T) {
	t.Parallel()

	for _, freq := range []bond.Frequency{bond.Annual, bond.SemiAnnual, bond.Monthly} {
		res, err := bond.NewCalculator(bond.Config{Compounding: freq}).Analyze(bond.Input{
			ParValue: 100, YieldToMaturity: 7, CouponRate: 0, Years: 12,
		})
		if err != nil {
			t.Fatalf("%s: Analyze error: %v", freq, err)
		}
		assertClose(t, freq.String()+" MacaulayDuration", res.MacaulayDuration, 12, 1e-10)
		if !(res.Duration < res.MacaulayDuration) {
			t.Fatalf("%s: modified %.8f should be below Macaulay %.8f", freq, res.Duration, res.MacaulayDuration)
		}
	}
}

func TestAnalyze_DV01AndPriceChange(t *testing.T) {
	t.Parallel()

	calc := bond.NewCalculator(bond.DefaultConfig)
	in := bond.Input{ParValue: 1000, YieldToMaturity: 5, CouponRate: 5, Years: 10}
	res, err := calc.Analyze(in)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	up, _ := calc.PresentValue(1000, 5.01, 5, 10)
	down, _ := calc.PresentValue(1000, 4.99, 5, 10)
	numericDV01 := (down - up) / 2
	if math.Abs(res.DV01-numericDV01) > 1e-6 {
		t.Fatalf("DV01 %.10f vs repriced %.10f", res.DV01, numericDV01)
	}

	for _, bp := range []float64{-50, -25, 10, 25, 50} {
		shifted, _ := calc.PresentValue(1000, 5+bp/100, 5, 10)
		actual := shifted - res.PresentValue
		est := res.PriceChange(bp)
		if math.Signbit(est) != math.Signbit(actual) {
			t.Fatalf("bp=%g: estimate %.6f has wrong sign vs %.6f", bp, est, actual)
		}
		if math.Abs(est-actual) > 0.05 {
			t.Fatalf("bp=%g: estimate %.6f vs actual %.6f", bp, est, actual)
		}
		durationOnly := -res.Duration * bp * 1e-4 * res.Price
		if math.Abs(est-actual) >= math.Abs(durationOnly-actual) {
			t.Fatalf("bp=%g: convexity term did not improve the estimate", bp)
		}
	}
}

func TestAnalyze_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	calc := bond.NewCalculator(bond.DefaultConfig)

	if _, err := calc.Analyze(bond.Input{ParValue: 1000, YieldToMaturity: 5, CouponRate: 5}); !errors.Is(err, bond.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero years, got %v", err)
	}
	if _, err := calc.Analyze(bond.Input{ParValue: 1000, YieldToMaturity: 5, CouponRate: 5, Years: 10, Price: math.NaN()}); !errors.Is(err, bond.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for NaN price, got %v", err)
	}
	if _, err := calc.Analyze(bond.Input{ParValue: 1000, YieldToMaturity: -300, CouponRate: 5, Years: 10}); !errors.Is(err, bond.ErrArithmeticDomain) {
		t.Fatalf("expected ErrArithmeticDomain for base below zero, got %v", err)
	}
}

func TestResult_Quote(t *testing.T) {
	t.Parallel()

	res, err := bond.NewCalculator(bond.DefaultConfig).Analyze(bond.Input{
		ParValue: 1000, YieldToMaturity: 5, CouponRate: 5, Years: 10,
	})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	q, err := res.Quote(4)
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if !q.PresentValue.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("PresentValue quote: got %s", q.PresentValue)
	}
	if !q.Duration.Equal(decimal.RequireFromString("7.7946")) {
		t.Fatalf("Duration quote: got %s", q.Duration)
	}
	if !q.Convexity.Equal(decimal.RequireFromString("73.6287")) {
		t.Fatalf("Convexity quote: got %s", q.Convexity)
	}

	half, err := bond.Result{Duration: -2.5, Convexity: 2.5}.Quote(0)
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if !half.Duration.Equal(decimal.NewFromInt(-3)) || !half.Convexity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected half away from zero, got %s and %s", half.Duration, half.Convexity)
	}
}

func TestResult_QuoteRejectsNonFinite(t *testing.T) {
	t.Parallel()

	cases := map[string]bond.Result{
		"Duration":  {PresentValue: 100, Price: 100, Duration: math.NaN()},
		"Convexity": {PresentValue: 100, Price: 100, Convexity: math.Inf(1)},
		"DV01":      {PresentValue: 100, Price: 100, DV01: math.Inf(-1)},
	}
	for field, res := range cases {
		_, err := res.Quote(4)
		if !errors.Is(err, bond.ErrArithmeticDomain) {
			t.Fatalf("%s: expected ErrArithmeticDomain, got %v", field, err)
		}
		var ie *bond.InputError
		if !errors.As(err, &ie) || ie.Field != field {
			t.Fatalf("%s: expected InputError on %s, got %v", field, field, err)
		}
	}
}
