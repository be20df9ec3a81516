package bond

import (
	"fmt"
	"math"
)

// Cashflows returns the payment schedule of a bullet bond: one coupon per
// compounding period and par redeemed with the last coupon.
//
// The schedule is in periods, not dates; it carries no day-count or calendar.
// Schedules longer than Config.MaxPeriods are rejected on Years.
func (c *Calculator) Cashflows(par, coupon float64, years int) ([]Cashflow, error) {
	const op = "Cashflows"
	// Any non-zero yield passes prepare; only the coupon and period terms are used.
	t, err := c.prepare(op, par, 1, coupon, years)
	if err != nil {
		return nil, err
	}
	limit := c.cfg.maxPeriods()
	if years > limit/int(c.cfg.Compounding) {
		return nil, c.reject(invalid(op, "Years", float64(years), fmt.Sprintf("exceeds %d periods at %s compounding", limit, c.cfg.Compounding)))
	}

	periods := int(t.n)
	out := make([]Cashflow, 0, periods)
	for k := 1; k <= periods; k++ {
		cf := Cashflow{Period: k, Coupon: t.c}
		if k == periods {
			cf.Principal = par
		}
		out = append(out, cf)
	}
	return out, nil
}

// DiscountCashflows prices cfs at ytm (annual, percent) by summing each
// discounted payment, and returns the derivative with respect to the
// periodic yield alongside:
//
//	price = Σ CF_k / (1+y)^k
//	dP/dy = Σ −k · CF_k / (1+y)^(k+1)
//
// For a schedule from Cashflows this reproduces PresentValue, and
// −dP/dy / (price · m) reproduces Duration.
func (c *Calculator) DiscountCashflows(cfs []Cashflow, ytm float64) (float64, float64, error) {
	const op = "DiscountCashflows"
	if len(cfs) == 0 {
		return 0, 0, c.reject(invalid(op, "Cashflows", 0, "must not be empty"))
	}
	if c.cfg.Compounding <= 0 {
		return 0, 0, c.reject(invalid(op, "Compounding", float64(c.cfg.Compounding), "must be positive"))
	}
	if math.IsNaN(ytm) || math.IsInf(ytm, 0) {
		return 0, 0, c.reject(invalid(op, "YieldToMaturity", ytm, "must be finite"))
	}

	y := ytm / (100 * float64(c.cfg.Compounding))
	if 1+y <= 0 {
		return 0, 0, c.reject(outOfDomain(op, "YieldToMaturity", ytm, "gives a non-positive discount base 1+periodic yield"))
	}

	var price, deriv float64
	for _, cf := range cfs {
		if cf.Period <= 0 {
			return 0, 0, c.reject(invalid(op, "Period", float64(cf.Period), "must be positive"))
		}
		t := float64(cf.Period)
		amt := cf.Amount()
		price += amt * math.Pow(1+y, -t)
		deriv += -t * amt * math.Pow(1+y, -(t+1))
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || math.IsNaN(deriv) || math.IsInf(deriv, 0) {
		return 0, 0, c.reject(outOfDomain(op, "Result", price, "is not finite"))
	}
	return price, deriv, nil
}

// Cashflows evaluates Calculator.Cashflows under the process-wide configuration.
func Cashflows(par, coupon float64, years int) ([]Cashflow, error) {
	return NewCalculator(GetConfig()).Cashflows(par, coupon, years)
}

// DiscountCashflows evaluates Calculator.DiscountCashflows under the
// process-wide configuration.
func DiscountCashflows(cfs []Cashflow, ytm float64) (float64, float64, error) {
	return NewCalculator(GetConfig()).DiscountCashflows(cfs, ytm)
}
