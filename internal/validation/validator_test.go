package validation

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

func TestParseOpportunities(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantAmount float64
		wantRisk   string
		errorMsg   string
	}{
		{name: "defaults", query: "", wantAmount: 10000, wantRisk: "medium"},
		{name: "explicit", query: "amount=2500.5&risk=low", wantAmount: 2500.5, wantRisk: "low"},
		{name: "unknown risk", query: "risk=extreme", errorMsg: "risk must be one of: low medium high"},
		{name: "zero amount", query: "amount=0", errorMsg: "amount must be greater than 0"},
		{name: "negative amount", query: "amount=-5", errorMsg: "amount must be greater than 0"},
		{name: "not a number", query: "amount=lots", errorMsg: "amount must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			q, err := ParseOpportunities(context.Background(), values)
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, q.Amount)
			assert.Equal(t, tt.wantRisk, q.Risk)
		})
	}
}

func TestParseDelegation(t *testing.T) {
	tests := []struct {
		query        string
		wantStrategy string
		wantErr      bool
	}{
		{query: "", wantStrategy: string(types.StrategyBalanced)},
		{query: "strategy=conservative&amount=50000", wantStrategy: string(types.StrategyConservative)},
		{query: "strategy=aggressive", wantStrategy: string(types.StrategyAggressive)},
		{query: "strategy=yolo", wantErr: true},
		{query: "amount=2000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			q, err := ParseDelegation(context.Background(), values)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStrategy, q.Strategy)
		})
	}
}

func TestParseRankings(t *testing.T) {
	for _, metric := range []string{"performance", "uptime", "profitability", "capacity"} {
		q, err := ParseRankings(context.Background(), url.Values{"sortBy": {metric}})
		require.NoError(t, err)
		assert.Equal(t, metric, q.SortBy)
	}

	q, err := ParseRankings(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, "performance", q.SortBy)

	_, err = ParseRankings(context.Background(), url.Values{"sortBy": {"stake"}})
	assert.ErrorContains(t, err, "sortby must be one of")
}

func TestParseMessages(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		wantLimit int
		wantL1    string
		wantErr   string
	}{
		{name: "defaults", values: url.Values{}, wantLimit: 50},
		{name: "filtered", values: url.Values{"l1": {"GUNZ"}, "limit": {"10"}}, wantLimit: 10, wantL1: "GUNZ"},
		{name: "upper bound", values: url.Values{"limit": {"500"}}, wantLimit: 500},
		{name: "too many", values: url.Values{"limit": {"501"}}, wantErr: "limit must be at most 500"},
		{name: "zero", values: url.Values{"limit": {"0"}}, wantErr: "limit must be at least 1"},
		{name: "garbage", values: url.Values{"limit": {"ten"}}, wantErr: "limit must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseMessages(context.Background(), tt.values)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantL1, q.L1)
		})
	}
}

func TestParsePerformance(t *testing.T) {
	q, err := ParsePerformance(context.Background(), url.Values{"ids": {" a, b,,c "}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, q.IDs)

	_, err = ParsePerformance(context.Background(), url.Values{})
	assert.ErrorContains(t, err, "ids is required")
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		nodeID string
		valid  bool
	}{
		{"NodeID-7Xhw2mDxuDS44j42TCB6U5579esbSt3Lg", true},
		{"NodeID-", false},
		{"7Xhw2mDxuDS44j42TCB6U5579esbSt3Lg", false},
		{"NodeID-abc/../x", false},
		{"", false},
	}

	for _, tt := range tests {
		_, err := ParseProfile(context.Background(), tt.nodeID)
		if tt.valid {
			assert.NoError(t, err, tt.nodeID)
		} else {
			assert.ErrorIs(t, err, ErrValidation, tt.nodeID)
		}
	}
}

func TestFormatValidationError_PassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, assert.AnError, FormatValidationError(assert.AnError))
}
