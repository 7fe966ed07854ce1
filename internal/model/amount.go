package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountParseError reports a raw amount expression that could not be
// classified into a two-sided amount.
type AmountParseError struct {
	Raw    string
	Reason string
}

func (e *AmountParseError) Error() string {
	return fmt.Sprintf("invalid amount %q: %s", e.Raw, e.Reason)
}

// Amount is a single two-sided money movement: what the source account
// loses and what the destination account gains. One side has to lose
// while the other gains, and a same-currency movement must carry the
// same magnitude on both sides.
type Amount struct {
	SrcCurrency  string
	SrcAmount    decimal.Decimal
	DestCurrency string
	DestAmount   decimal.Decimal
}

// NewAmount validates and builds an Amount.
func NewAmount(srcCurrency string, srcAmount decimal.Decimal, destCurrency string, destAmount decimal.Decimal) (Amount, error) {
	if srcCurrency == "" || destCurrency == "" {
		return Amount{}, fmt.Errorf("amount currencies may not be empty")
	}
	if srcAmount.Sign()*destAmount.Sign() > 0 {
		return Amount{}, fmt.Errorf("one side has to lose while the other gains: %s and %s",
			srcAmount, destAmount)
	}
	if srcCurrency == destCurrency && !srcAmount.Abs().Equal(destAmount.Abs()) {
		return Amount{}, fmt.Errorf("uneven exchange: %s and %s %s",
			srcAmount, destAmount, srcCurrency)
	}
	return Amount{
		SrcCurrency:  srcCurrency,
		SrcAmount:    srcAmount,
		DestCurrency: destCurrency,
		DestAmount:   destAmount,
	}, nil
}

// ZeroAmount returns a zero two-sided amount in the given currency.
func ZeroAmount(currency string) Amount {
	return Amount{
		SrcCurrency:  currency,
		SrcAmount:    decimal.Zero,
		DestCurrency: currency,
		DestAmount:   decimal.Zero,
	}
}

// Correct returns the amount re-oriented so that the src side is the
// losing side. Use it together with an account swap whenever the src
// side was reported as a gain.
func (a Amount) Correct() Amount {
	return Amount{
		SrcCurrency:  a.DestCurrency,
		SrcAmount:    a.DestAmount,
		DestCurrency: a.SrcCurrency,
		DestAmount:   a.SrcAmount,
	}
}

// Equal reports whether both sides match exactly.
func (a Amount) Equal(b Amount) bool {
	return a.SrcCurrency == b.SrcCurrency &&
		a.DestCurrency == b.DestCurrency &&
		a.SrcAmount.Equal(b.SrcAmount) &&
		a.DestAmount.Equal(b.DestAmount)
}

// String renders the amount in its canonical colon-grouped form, e.g.
// "usd:10 usd:-10". Decimal rendering trims trailing zeros, so equal
// amounts always render identically.
func (a Amount) String() string {
	return fmt.Sprintf("%s:%s %s:%s",
		a.SrcCurrency, a.SrcAmount, a.DestCurrency, a.DestAmount)
}

// ParseAmount turns a raw amount expression into an Amount. The
// expression is whitespace-tokenized after colon groups ("usd:10" or
// "10:usd") are expanded into adjacent tokens, then classified by token
// count and numeric-token positions:
//
//	"10"               -> suggested:10 suggested:-10
//	"10 usd"           -> usd:10 usd:-10
//	"usd:10 -20"       -> usd:10 suggested:-20
//	"usd:10 mxn:-20"   -> usd:10 mxn:-20
//	"usd 10 -20 mxn"   -> usd:10 mxn:-20
//
// In the three-token form the two numeric tokens are the src and dest
// amounts in order, and the lone currency binds to src when it appears
// before the second numeric token, otherwise to dest. The suggested
// currency fills whichever side has none.
func ParseAmount(raw, suggested string) (Amount, error) {
	fail := func(reason string) (Amount, error) {
		return Amount{}, &AmountParseError{Raw: raw, Reason: reason}
	}
	build := func(srcCur string, src decimal.Decimal, destCur string, dest decimal.Decimal) (Amount, error) {
		a, err := NewAmount(srcCur, src, destCur, dest)
		if err != nil {
			return fail(err.Error())
		}
		return a, nil
	}

	toks, err := expandColonGroups(raw)
	if err != nil {
		return Amount{}, err
	}

	var nums []int
	for i, tok := range toks {
		if isNumeric(tok) {
			nums = append(nums, i)
		}
	}

	switch len(toks) {
	case 0:
		return fail("no amount provided")

	case 1:
		if len(nums) != 1 {
			return fail("single entry must be numeric")
		}
		if suggested == "" {
			return fail("no currency suggestion available")
		}
		v := mustDecimal(toks[0])
		return build(suggested, v, suggested, v.Neg())

	case 2:
		if len(nums) == 2 {
			return fail("two amounts but no currency to pair them with")
		}
		if len(nums) == 0 {
			return fail("two currencies but no amount")
		}
		v := mustDecimal(toks[nums[0]])
		cur := toks[1-nums[0]]
		return build(cur, v, cur, v.Neg())

	case 3:
		if len(nums) != 2 {
			return fail("expected one currency and two amounts")
		}
		if suggested == "" {
			return fail("no currency suggestion available")
		}
		curIdx := 3 - nums[0] - nums[1]
		cur := toks[curIdx]
		src := mustDecimal(toks[nums[0]])
		dest := mustDecimal(toks[nums[1]])
		if curIdx < nums[1] {
			return build(cur, src, suggested, dest)
		}
		return build(suggested, src, cur, dest)

	case 4:
		if len(nums) != 2 {
			return fail("expected two currencies and two amounts")
		}
		var curs []int
		for i := range toks {
			if i != nums[0] && i != nums[1] {
				curs = append(curs, i)
			}
		}
		return build(
			toks[curs[0]], mustDecimal(toks[nums[0]]),
			toks[curs[1]], mustDecimal(toks[nums[1]]))

	default:
		return fail("too many entries")
	}
}

// expandColonGroups splits the raw expression on whitespace and replaces
// each colon group with an adjacent (amount, currency) token pair. A
// group must pair exactly one numeric token with one currency token.
func expandColonGroups(raw string) ([]string, error) {
	var out []string
	for _, tok := range strings.Fields(raw) {
		if !strings.Contains(tok, ":") {
			out = append(out, tok)
			continue
		}
		parts := strings.Split(tok, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, &AmountParseError{
				Raw:    raw,
				Reason: fmt.Sprintf("colon group %q must pair a currency with an amount", tok),
			}
		}
		a, b := parts[0], parts[1]
		switch {
		case isNumeric(a) && !isNumeric(b):
			out = append(out, a, b)
		case !isNumeric(a) && isNumeric(b):
			out = append(out, b, a)
		default:
			return nil, &AmountParseError{
				Raw:    raw,
				Reason: fmt.Sprintf("colon group %q must pair a currency with an amount", tok),
			}
		}
	}
	return out, nil
}

func isNumeric(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}

// mustDecimal converts a token already classified as numeric.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("non-numeric token classified as numeric: " + s)
	}
	return d
}
