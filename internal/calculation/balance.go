package calculation

import (
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Settle nets taxes already paid against the payable amount of a calculation.
// A negative balance is reported as a refund with the absolute amount.
func Settle(calc domain.TaxCalculation, payments domain.Payments) domain.Settlement {
	paid := payments.Total()
	balance := calc.TotalTaxPayable.Sub(paid)
	return domain.Settlement{
		Regime:     calc.Regime,
		TaxPayable: calc.TotalTaxPayable,
		TaxesPaid:  paid,
		Balance:    balance.Abs(),
		Refund:     balance.IsNegative(),
	}
}

// BalanceDue returns the signed balance; negative values are refunds
func BalanceDue(s domain.Settlement) decimal.Decimal {
	if s.Refund {
		return s.Balance.Neg()
	}
	return s.Balance
}
