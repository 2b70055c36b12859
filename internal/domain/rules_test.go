package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func validTable() SlabTable {
	return SlabTable{
		{Min: dec(0), Max: ptr(250000), Rate: dec(0)},
		{Min: dec(250000), Max: ptr(500000), Rate: dec(5)},
		{Min: dec(500000), Rate: dec(20)},
	}
}

func TestSlabTable_Validate(t *testing.T) {
	require.NoError(t, validTable().Validate())

	tests := []struct {
		name   string
		mutate func(SlabTable) SlabTable
		index  int
	}{
		{
			name:   "empty table",
			mutate: func(SlabTable) SlabTable { return nil },
			index:  0,
		},
		{
			name: "first slab not at zero",
			mutate: func(s SlabTable) SlabTable {
				s[0].Min = dec(1)
				return s
			},
			index: 0,
		},
		{
			name: "gap between slabs",
			mutate: func(s SlabTable) SlabTable {
				s[1].Min = dec(260000)
				return s
			},
			index: 1,
		},
		{
			name: "overlapping slabs",
			mutate: func(s SlabTable) SlabTable {
				s[2].Min = dec(400000)
				return s
			},
			index: 2,
		},
		{
			name: "unbounded slab before the end",
			mutate: func(s SlabTable) SlabTable {
				s[1].Max = nil
				return s
			},
			index: 1,
		},
		{
			name: "bounded final slab",
			mutate: func(s SlabTable) SlabTable {
				s[2].Max = ptr(900000)
				return s
			},
			index: 2,
		},
		{
			name: "negative rate",
			mutate: func(s SlabTable) SlabTable {
				s[1].Rate = dec(-5)
				return s
			},
			index: 1,
		},
		{
			name: "max not above min",
			mutate: func(s SlabTable) SlabTable {
				s[0].Max = ptr(0)
				return s
			},
			index: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(validTable()).Validate()
			require.Error(t, err)
			var se *SlabError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.index, se.Index)
		})
	}
}

func TestTaxRules_ValidateTagsRegime(t *testing.T) {
	broken := validTable()
	broken[1].Min = dec(300000)
	rules := &TaxRules{
		AssessmentYear: "2024-25",
		OldRegime:      broken,
		NewRegime:      validTable(),
		CessRate:       dec(4),
	}

	err := rules.Validate()
	require.Error(t, err)
	var se *SlabError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, RegimeOld, se.Regime)
	assert.Contains(t, err.Error(), "old regime slab 1")
}

func TestSurchargeSchedule_Validate(t *testing.T) {
	ok := SurchargeSchedule{{Above: dec(5000000), Rate: dec(10)}, {Above: dec(10000000), Rate: dec(15)}}
	assert.NoError(t, ok.Validate())

	unordered := SurchargeSchedule{{Above: dec(10000000), Rate: dec(15)}, {Above: dec(5000000), Rate: dec(10)}}
	assert.Error(t, unordered.Validate())

	negative := SurchargeSchedule{{Above: dec(5000000), Rate: dec(-1)}}
	assert.Error(t, negative.Validate())
}

func TestDeductionLimits_Apply(t *testing.T) {
	limits := DeductionLimits{Section80C: ptr(150000), Section80CCD1B: ptr(50000)}
	in := DeductionSet{
		Section80C:     dec(200000),
		Section80D:     dec(25000),
		Section80CCD1B: dec(50000),
	}

	out, capped := limits.Apply(in)

	assert.True(t, out.Section80C.Equal(dec(150000)))
	assert.True(t, out.Section80D.Equal(dec(25000)), "uncapped section unchanged")
	assert.True(t, out.Section80CCD1B.Equal(dec(50000)), "value at the limit is not capped")
	require.Len(t, capped, 1)
	assert.Equal(t, "80C", capped[0].Section)
	assert.True(t, capped[0].Requested.Equal(dec(200000)))
	assert.True(t, in.Section80C.Equal(dec(200000)), "input is not mutated")
}

func TestIncomeAndDeductionTotals(t *testing.T) {
	income := IncomeProfile{Salary: dec(1200000), HouseProperty: dec(50000), OtherSources: dec(20000)}
	assert.True(t, income.Gross().Equal(dec(1270000)))

	d := DeductionSet{Section80C: dec(150000), Section80D: dec(25000), Section80E: dec(10000),
		Section80G: dec(5000), Section80EE: dec(2000), Section80CCD1B: dec(50000)}
	assert.True(t, d.Total().Equal(dec(242000)))

	p := Payments{TDS: dec(40000), AdvanceTax: dec(10000)}
	assert.True(t, p.Total().Equal(dec(50000)))
}

func TestParseRegime(t *testing.T) {
	r, err := ParseRegime("old")
	require.NoError(t, err)
	assert.Equal(t, RegimeOld, r)
	assert.Equal(t, "OLD TAX REGIME", r.Label())

	_, err = ParseRegime("flat")
	assert.Error(t, err)

	in := &TaxpayerInput{}
	assert.Equal(t, RegimeNew, in.Regime())
}
