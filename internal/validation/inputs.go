package validation

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// Query parameter defaults
const (
	DefaultStakeAmount  = 10000
	DefaultMessageLimit = 50
	MaxMessageLimit     = 500
	MaxPerformanceIDs   = 50
)

// OpportunitiesQuery is the input of the staking opportunities endpoint
type OpportunitiesQuery struct {
	Amount float64 `validate:"gt=0,lte=1000000000"`
	Risk   string  `validate:"risk_tolerance"`
}

// DelegationQuery is the input of the delegation endpoint
type DelegationQuery struct {
	Amount   float64 `validate:"gt=0,lte=1000000000"`
	Strategy string  `validate:"delegation_strategy"`
}

// RankingsQuery is the input of the rankings endpoint
type RankingsQuery struct {
	SortBy string `validate:"ranking_metric"`
}

// MessagesQuery is the input of the ICM messages endpoint
type MessagesQuery struct {
	L1    string `validate:"max=128"`
	Limit int    `validate:"min=1,max=500"`
}

// PerformanceQuery is the input of the batch performance endpoint
type PerformanceQuery struct {
	IDs []string `validate:"required,min=1,max=50,dive,required,max=128"`
}

// ProfileQuery identifies one validator
type ProfileQuery struct {
	NodeID string `validate:"required,node_id"`
}

func parseFloat(values url.Values, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrValidation, key)
	}
	return v, nil
}

func parseInt(values url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrValidation, key)
	}
	return v, nil
}

func stringOr(values url.Values, key, def string) string {
	if v := strings.TrimSpace(values.Get(key)); v != "" {
		return v
	}
	return def
}

// ParseOpportunities reads amount (default 10000) and risk (default medium)
func ParseOpportunities(ctx context.Context, values url.Values) (OpportunitiesQuery, error) {
	amount, err := parseFloat(values, "amount", DefaultStakeAmount)
	if err != nil {
		return OpportunitiesQuery{}, err
	}
	q := OpportunitiesQuery{Amount: amount, Risk: stringOr(values, "risk", string(types.RiskMedium))}
	return q, ValidateStruct(ctx, q)
}

// ParseDelegation reads amount (default 10000) and strategy (default balanced)
func ParseDelegation(ctx context.Context, values url.Values) (DelegationQuery, error) {
	amount, err := parseFloat(values, "amount", DefaultStakeAmount)
	if err != nil {
		return DelegationQuery{}, err
	}
	q := DelegationQuery{Amount: amount, Strategy: stringOr(values, "strategy", string(types.StrategyBalanced))}
	return q, ValidateStruct(ctx, q)
}

// ParseRankings reads sortBy (default performance)
func ParseRankings(ctx context.Context, values url.Values) (RankingsQuery, error) {
	q := RankingsQuery{SortBy: stringOr(values, "sortBy", string(types.RankByPerformance))}
	return q, ValidateStruct(ctx, q)
}

// ParseMessages reads l1 (optional) and limit (default 50)
func ParseMessages(ctx context.Context, values url.Values) (MessagesQuery, error) {
	limit, err := parseInt(values, "limit", DefaultMessageLimit)
	if err != nil {
		return MessagesQuery{}, err
	}
	q := MessagesQuery{L1: strings.TrimSpace(values.Get("l1")), Limit: limit}
	return q, ValidateStruct(ctx, q)
}

// ParsePerformance reads a comma separated ids list, dropping blanks
func ParsePerformance(ctx context.Context, values url.Values) (PerformanceQuery, error) {
	var q PerformanceQuery
	for _, id := range strings.Split(values.Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			q.IDs = append(q.IDs, id)
		}
	}
	return q, ValidateStruct(ctx, q)
}

// ParseProfile validates a node ID path parameter
func ParseProfile(ctx context.Context, nodeID string) (ProfileQuery, error) {
	q := ProfileQuery{NodeID: nodeID}
	return q, ValidateStruct(ctx, q)
}
