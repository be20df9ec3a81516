package bond

import (
	"math"

	"github.com/shopspring/decimal"
)

// Cashflow is a single payment of a bullet bond, indexed by compounding
// period (1 = end of the first period).
//
// Amounts are in currency units of the par value, not price-per-100.
type Cashflow struct {
	Period    int
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// Input holds the parameters of a fixed-coupon bond for Analyze.
type Input struct {
	// ParValue is the face value redeemed at maturity (e.g. 1000).
	ParValue float64
	// YieldToMaturity is the annual nominal yield in percent (e.g. 5 for 5%).
	YieldToMaturity float64
	// CouponRate is the annual nominal coupon in percent (e.g. 2.5 for 2.5%).
	CouponRate float64
	// Years is the whole number of years to maturity.
	Years int
	// Price is an observed market price used for Duration and Convexity.
	// Zero means "use the model price", i.e. PresentValue of the inputs.
	Price float64
}

// Result is the output of Analyze.
type Result struct {
	// PresentValue is the model price of the cash flows at YieldToMaturity.
	PresentValue float64
	// Price is the price Duration and Convexity were normalised by: the
	// supplied Input.Price, or PresentValue when none was supplied.
	Price float64
	// Duration is the modified duration in years.
	Duration float64
	// MacaulayDuration is Duration × (1 + periodic yield), in years.
	MacaulayDuration float64
	// Convexity is annualised (divided by compounding²).
	Convexity float64
	// DV01 is the price change for a 1bp move in yield, as a positive number.
	DV01 float64
}

// PriceChange estimates the price move for a parallel yield shift of bp basis
// points using duration and convexity:
//
//	ΔP ≈ P · (−D·Δy + ½·C·Δy²),  Δy = bp × 1e-4
func (r Result) PriceChange(bp float64) float64 {
	dy := bp * 1e-4
	return r.Price * (-r.Duration*dy + 0.5*r.Convexity*dy*dy)
}

// Quote is Result rendered as fixed-point decimals.
type Quote struct {
	PresentValue     decimal.Decimal
	Price            decimal.Decimal
	Duration         decimal.Decimal
	MacaulayDuration decimal.Decimal
	Convexity        decimal.Decimal
	DV01             decimal.Decimal
}

// Quote rounds every field of r to places decimal places (half away from zero).
// Every field must be finite; a NaN or infinite field returns ErrArithmeticDomain.
func (r Result) Quote(places int32) (Quote, error) {
	var err error
	round := func(field string, v float64) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			err = outOfDomain("Quote", field, v, "is not finite")
			return decimal.Zero
		}
		return decimal.NewFromFloat(v).Round(places)
	}
	q := Quote{
		PresentValue:     round("PresentValue", r.PresentValue),
		Price:            round("Price", r.Price),
		Duration:         round("Duration", r.Duration),
		MacaulayDuration: round("MacaulayDuration", r.MacaulayDuration),
		Convexity:        round("Convexity", r.Convexity),
		DV01:             round("DV01", r.DV01),
	}
	if err != nil {
		return Quote{}, err
	}
	return q, nil
}
