package bond

import (
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// Calculator evaluates closed-form analytics for fixed-coupon bullet bonds
// under an explicit Config. It is immutable and safe for concurrent use.
type Calculator struct {
	cfg    Config
	logger logrus.FieldLogger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used to report rejected inputs (debug level).
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalculator returns a Calculator bound to cfg. cfg is validated on every
// evaluation, not here, so a zero Config yields ErrInvalidArgument errors.
func NewCalculator(cfg Config, opts ...Option) *Calculator {
	c := &Calculator{cfg: cfg, logger: discardLogger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the configuration c evaluates with.
func (c *Calculator) Config() Config {
	return c.cfg
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// terms are the per-period quantities every formula shares.
type terms struct {
	m   float64 // compounding periods per year
	y   float64 // periodic yield, decimal
	n   float64 // number of periods to maturity
	c   float64 // periodic coupon, currency units
	par float64
}

// prepare validates the common inputs and derives the per-period terms.
func (c *Calculator) prepare(op string, par, ytm, coupon float64, years int) (terms, error) {
	switch {
	case c.cfg.Compounding <= 0:
		return terms{}, c.reject(invalid(op, "Compounding", float64(c.cfg.Compounding), "must be positive"))
	case math.IsNaN(par) || math.IsInf(par, 0) || par <= 0:
		return terms{}, c.reject(invalid(op, "ParValue", par, "must be positive and finite"))
	case math.IsNaN(ytm) || math.IsInf(ytm, 0):
		return terms{}, c.reject(invalid(op, "YieldToMaturity", ytm, "must be finite"))
	case ytm == 0:
		return terms{}, c.reject(invalid(op, "YieldToMaturity", ytm, "must be non-zero"))
	case math.IsNaN(coupon) || math.IsInf(coupon, 0):
		return terms{}, c.reject(invalid(op, "CouponRate", coupon, "must be finite"))
	case years <= 0:
		return terms{}, c.reject(invalid(op, "Years", float64(years), "must be positive"))
	}

	m := float64(c.cfg.Compounding)
	t := terms{
		m:   m,
		y:   ytm / (100 * m),
		n:   float64(years) * m,
		c:   par * coupon / (100 * m),
		par: par,
	}
	if 1+t.y <= 0 {
		return terms{}, c.reject(outOfDomain(op, "YieldToMaturity", ytm, "gives a non-positive discount base 1+periodic yield"))
	}
	return t, nil
}

func (c *Calculator) checkPrice(op string, price float64) error {
	switch {
	case math.IsNaN(price) || math.IsInf(price, 0):
		return c.reject(invalid(op, "Price", price, "must be finite"))
	case price == 0:
		return c.reject(invalid(op, "Price", price, "must be non-zero"))
	}
	return nil
}

func (c *Calculator) finite(op string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, c.reject(outOfDomain(op, "Result", v, "is not finite"))
	}
	return v, nil
}

func (c *Calculator) reject(err error) error {
	if ie, ok := err.(*InputError); ok {
		c.logger.WithFields(logrus.Fields{
			"op":          ie.Op,
			"field":       ie.Field,
			"value":       ie.Value,
			"compounding": int(c.cfg.Compounding),
		}).Debugf("bond analytics rejected input: %s", ie.Reason)
	}
	return err
}

// PresentValue discounts the coupons and the redemption of par at the
// periodic yield:
//
//	P = F·(1+y)^−n + c·(1 − (1+y)^−n)/y
//
// with y = ytm/(100·m), n = years·m and c = F·coupon/(100·m).
func (c *Calculator) PresentValue(par, ytm, coupon float64, years int) (float64, error) {
	const op = "PresentValue"
	t, err := c.prepare(op, par, ytm, coupon, years)
	if err != nil {
		return 0, err
	}
	return c.finite(op, t.presentValue())
}

// Duration returns the modified duration, −(1/P)·dP/dY with Y the annual
// yield in decimal. price may be PresentValue's output or an observed market
// price; it is not reconciled with the other inputs.
//
// The result is positive for ordinary bonds, whose price falls as the yield
// rises (dP/dY < 0).
func (c *Calculator) Duration(par, price, ytm, coupon float64, years int) (float64, error) {
	const op = "Duration"
	t, err := c.prepare(op, par, ytm, coupon, years)
	if err != nil {
		return 0, err
	}
	if err := c.checkPrice(op, price); err != nil {
		return 0, err
	}
	return c.finite(op, t.duration(price))
}

// Convexity returns (1/P)·d²P/dY², annualised by dividing the per-period
// second derivative by compounding². price follows the same contract as in
// Duration.
func (c *Calculator) Convexity(par, price, ytm, coupon float64, years int) (float64, error) {
	const op = "Convexity"
	t, err := c.prepare(op, par, ytm, coupon, years)
	if err != nil {
		return 0, err
	}
	if err := c.checkPrice(op, price); err != nil {
		return 0, err
	}
	return c.finite(op, t.convexity(price))
}

func (t terms) presentValue() float64 {
	v := math.Pow(1+t.y, -t.n)
	principal := t.par * v
	annuity := (1 - v) / t.y
	return principal + t.c*annuity
}

func (t terms) duration(price float64) float64 {
	a := -t.c * math.Pow(t.y, -2) * (1 - math.Pow(1+t.y, -t.n))
	b := t.n * (t.c/t.y - t.par) * math.Pow(1+t.y, -(t.n+1))
	macaulay := (a + b) / price
	return -macaulay / t.m
}

func (t terms) convexity(price float64) float64 {
	a := 2 * t.c * math.Pow(t.y, -3) * (1 - math.Pow(1+t.y, -t.n))
	b := -2 * t.c * t.n * math.Pow(t.y, -2) * math.Pow(1+t.y, -(t.n+1))
	cc := t.n * (t.n + 1) * (t.par - t.c/t.y) * math.Pow(1+t.y, -(t.n+2))
	return (a + b + cc) / (price * t.m * t.m)
}

// PresentValue evaluates Calculator.PresentValue under the process-wide
// configuration (see SetCompoundingFrequency).
func PresentValue(par, ytm, coupon float64, years int) (float64, error) {
	return NewCalculator(GetConfig()).PresentValue(par, ytm, coupon, years)
}

// Duration evaluates Calculator.Duration under the process-wide configuration.
func Duration(par, price, ytm, coupon float64, years int) (float64, error) {
	return NewCalculator(GetConfig()).Duration(par, price, ytm, coupon, years)
}

// Convexity evaluates Calculator.Convexity under the process-wide configuration.
func Convexity(par, price, ytm, coupon float64, years int) (float64, error) {
	return NewCalculator(GetConfig()).Convexity(par, price, ytm, coupon, years)
}
