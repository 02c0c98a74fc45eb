// Package validation checks API query parameters with go-playground/validator
// and turns failures into messages fit for a JSON error body.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators for explorer-specific fields
	_ = validate.RegisterValidation("risk_tolerance", validateRiskTolerance)
	_ = validate.RegisterValidation("delegation_strategy", validateDelegationStrategy)
	_ = validate.RegisterValidation("ranking_metric", validateRankingMetric)
	_ = validate.RegisterValidation("node_id", validateNodeID)
}

// ErrValidation is wrapped by every error ValidateStruct returns
var ErrValidation = errors.New("validation failed")

// ValidateStruct validates any struct with validation tags
func ValidateStruct(ctx context.Context, s any) error {
	if err := validate.StructCtx(ctx, s); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// FormatValidationError converts validator errors to user-friendly messages
func FormatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, formatFieldError(e))
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, "; "))
	}
	return err
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "risk_tolerance":
		return fmt.Sprintf("%s must be one of: low medium high", field)
	case "delegation_strategy":
		return fmt.Sprintf("%s must be one of: conservative balanced aggressive", field)
	case "ranking_metric":
		return fmt.Sprintf("%s must be one of: performance uptime profitability capacity", field)
	case "node_id":
		return fmt.Sprintf("%s must be a node ID (NodeID-...)", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "dive":
		return fmt.Sprintf("%s contains invalid items", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}

func validateRiskTolerance(fl validator.FieldLevel) bool {
	switch types.RiskLevel(fl.Field().String()) {
	case types.RiskLow, types.RiskMedium, types.RiskHigh:
		return true
	}
	return false
}

func validateDelegationStrategy(fl validator.FieldLevel) bool {
	switch types.DelegationStrategy(fl.Field().String()) {
	case types.StrategyConservative, types.StrategyBalanced, types.StrategyAggressive:
		return true
	}
	return false
}

func validateRankingMetric(fl validator.FieldLevel) bool {
	switch types.RankingMetric(fl.Field().String()) {
	case types.RankByPerformance, types.RankByUptime, types.RankByProfitability, types.RankByCapacity:
		return true
	}
	return false
}

// validateNodeID accepts NodeID- followed by a base58 body
func validateNodeID(fl validator.FieldLevel) bool {
	id, ok := strings.CutPrefix(fl.Field().String(), "NodeID-")
	if !ok || id == "" || len(id) > 64 {
		return false
	}
	for _, c := range id {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}
