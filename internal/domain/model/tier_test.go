package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseTiers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Tier
		wantErr bool
	}{
		{
			name:  "single tier",
			input: "3:20",
			want:  []Tier{{Threshold: 3, Amount: d("20")}},
		},
		{
			name:  "multiple tiers with spaces",
			input: " 2:25 , 3:50 ",
			want:  []Tier{{Threshold: 2, Amount: d("25")}, {Threshold: 3, Amount: d("50")}},
		},
		{
			name:  "fractional amount",
			input: "10:0.15",
			want:  []Tier{{Threshold: 10, Amount: d("0.15")}},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "only separators", input: ",,", wantErr: true},
		{name: "missing colon", input: "3-20", wantErr: true},
		{name: "bad threshold", input: "x:20", wantErr: true},
		{name: "bad amount", input: "3:abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTiers(tt.input)
			if tt.wantErr {
				var cfgErr *ConfigurationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Threshold, got[i].Threshold)
				assert.True(t, tt.want[i].Amount.Equal(got[i].Amount))
			}
		})
	}
}

func TestRules_Validate(t *testing.T) {
	valid := Rules{
		Tiers:       []Tier{{Threshold: 2, Amount: d("25")}, {Threshold: 3, Amount: d("50")}},
		Mode:        ModePercent,
		CategoryIDs: []int64{60},
	}

	tests := []struct {
		name    string
		mutate  func(r *Rules)
		field   string
		wantErr bool
	}{
		{name: "valid percent rules", mutate: func(r *Rules) {}},
		{name: "valid flat rules", mutate: func(r *Rules) { r.Mode = ModeFlat }},
		{name: "fraction percentages", mutate: func(r *Rules) { r.Tiers[0].Amount = d("0.25") }},
		{name: "hundred percent", mutate: func(r *Rules) { r.Tiers[1].Amount = d("100") }},
		{name: "empty table", mutate: func(r *Rules) { r.Tiers = nil }, field: "tiers", wantErr: true},
		{name: "unknown mode", mutate: func(r *Rules) { r.Mode = "bogus" }, field: "mode", wantErr: true},
		{name: "no categories", mutate: func(r *Rules) { r.CategoryIDs = nil }, field: "category_ids", wantErr: true},
		{name: "zero threshold", mutate: func(r *Rules) { r.Tiers[0].Threshold = 0 }, field: "tiers", wantErr: true},
		{name: "duplicate threshold", mutate: func(r *Rules) { r.Tiers[1].Threshold = 2 }, field: "tiers", wantErr: true},
		{name: "zero amount", mutate: func(r *Rules) { r.Tiers[0].Amount = decimal.Zero }, field: "tiers", wantErr: true},
		{name: "negative amount", mutate: func(r *Rules) { r.Tiers[0].Amount = d("-5") }, field: "tiers", wantErr: true},
		{name: "percent over 100", mutate: func(r *Rules) { r.Tiers[0].Amount = d("150") }, field: "tiers", wantErr: true},
		{name: "unknown policy", mutate: func(r *Rules) { r.NegativePrice = "wrap" }, field: "negative_price_policy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			r.Tiers = append([]Tier(nil), valid.Tiers...)
			tt.mutate(&r)

			err := r.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestRules_NormalizedAndMatch(t *testing.T) {
	r := Rules{
		Tiers: []Tier{
			{Threshold: 2, Amount: d("25")},
			{Threshold: 10, Amount: d("75")},
			{Threshold: 3, Amount: d("50")},
		},
		Mode:        ModePercent,
		CategoryIDs: []int64{60, 61, 60},
	}.Normalized()

	assert.Equal(t, []int{10, 3, 2}, []int{r.Tiers[0].Threshold, r.Tiers[1].Threshold, r.Tiers[2].Threshold})
	assert.Equal(t, []int64{60, 61}, r.CategoryIDs)
	assert.Equal(t, NegativePriceClamp, r.NegativePrice)

	tests := []struct {
		quantity  int
		threshold int
		found     bool
	}{
		{quantity: 0, found: false},
		{quantity: 1, found: false},
		{quantity: 2, threshold: 2, found: true},
		{quantity: 3, threshold: 3, found: true},
		{quantity: 5, threshold: 3, found: true},
		{quantity: 9, threshold: 3, found: true},
		{quantity: 10, threshold: 10, found: true},
		{quantity: 250, threshold: 10, found: true},
	}
	for _, tt := range tests {
		tier, ok := r.Match(tt.quantity)
		assert.Equal(t, tt.found, ok, "quantity %d", tt.quantity)
		if tt.found {
			assert.Equal(t, tt.threshold, tier.Threshold, "quantity %d", tt.quantity)
		}
	}
}

func TestRules_IsEligible(t *testing.T) {
	r := Rules{CategoryIDs: []int64{60, 70}}

	assert.True(t, r.IsEligible([]int64{15, 60}))
	assert.True(t, r.IsEligible([]int64{70}))
	assert.False(t, r.IsEligible([]int64{15}))
	assert.False(t, r.IsEligible(nil))
}

func TestRules_DiscountedPrice(t *testing.T) {
	tests := []struct {
		name   string
		rules  Rules
		base   string
		amount string
		want   string
	}{
		{name: "whole percent", rules: Rules{Mode: ModePercent}, base: "100", amount: "25", want: "75"},
		{name: "fraction percent", rules: Rules{Mode: ModePercent}, base: "100", amount: "0.25", want: "75"},
		{name: "one means hundred percent", rules: Rules{Mode: ModePercent}, base: "100", amount: "1", want: "0"},
		{name: "flat", rules: Rules{Mode: ModeFlat}, base: "100", amount: "20", want: "80"},
		{name: "flat clamped", rules: Rules{Mode: ModeFlat, NegativePrice: NegativePriceClamp}, base: "15", amount: "20", want: "0"},
		{name: "flat clamped by default", rules: Rules{Mode: ModeFlat}, base: "15", amount: "20", want: "0"},
		{name: "flat negative allowed", rules: Rules{Mode: ModeFlat, NegativePrice: NegativePriceAllow}, base: "15", amount: "20", want: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rules.DiscountedPrice(d(tt.base), Tier{Threshold: 1, Amount: d(tt.amount)})
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseModeAndPolicy(t *testing.T) {
	m, err := ParseMode(" Percent ")
	require.NoError(t, err)
	assert.Equal(t, ModePercent, m)

	_, err = ParseMode("bulk")
	assert.Error(t, err)

	p, err := ParseNegativePricePolicy("")
	require.NoError(t, err)
	assert.Equal(t, NegativePriceClamp, p)

	p, err = ParseNegativePricePolicy("ALLOW")
	require.NoError(t, err)
	assert.Equal(t, NegativePriceAllow, p)
}
