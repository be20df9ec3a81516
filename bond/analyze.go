package bond

// Analyze evaluates every analytic for in in one pass under a single
// compounding setting.
//
// Two pricing patterns are supported. With in.Price == 0 the model price
// (PresentValue) normalises Duration and Convexity, so the result describes
// the bond exactly at YieldToMaturity. With a non-zero in.Price an observed
// market price is used instead; it is not reconciled with YieldToMaturity.
func (c *Calculator) Analyze(in Input) (Result, error) {
	const op = "Analyze"
	t, err := c.prepare(op, in.ParValue, in.YieldToMaturity, in.CouponRate, in.Years)
	if err != nil {
		return Result{}, err
	}

	pv, err := c.finite(op, t.presentValue())
	if err != nil {
		return Result{}, err
	}

	price := pv
	if in.Price != 0 {
		if err := c.checkPrice(op, in.Price); err != nil {
			return Result{}, err
		}
		price = in.Price
	}
	if price == 0 {
		return Result{}, c.reject(outOfDomain(op, "PresentValue", pv, "is zero and cannot normalise sensitivities"))
	}

	dur, err := c.finite(op, t.duration(price))
	if err != nil {
		return Result{}, err
	}
	cvx, err := c.finite(op, t.convexity(price))
	if err != nil {
		return Result{}, err
	}

	return Result{
		PresentValue:     pv,
		Price:            price,
		Duration:         dur,
		MacaulayDuration: dur * (1 + t.y),
		Convexity:        cvx,
		DV01:             dur * price * 1e-4,
	}, nil
}

// Analyze evaluates Calculator.Analyze under the process-wide configuration.
func Analyze(in Input) (Result, error) {
	return NewCalculator(GetConfig()).Analyze(in)
}
