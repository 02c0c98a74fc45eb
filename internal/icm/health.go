package icm

import "github.com/birddigital/avax-l1-explorer/pkg/types"

// ClassifyRoute grades a route by latency (ms) and failure rate (%).
// The first matching row wins.
func ClassifyRoute(avgLatency, failureRate float64) types.RouteHealth {
	switch {
	case avgLatency < 1500 && failureRate < 1:
		return types.RouteExcellent
	case avgLatency < 2500 && failureRate < 2:
		return types.RouteGood
	case avgLatency < 4000 && failureRate < 4:
		return types.RouteDegraded
	default:
		return types.RouteFailing
	}
}

// HealthScore maps a route health to its efficiency score
func HealthScore(h types.RouteHealth) float64 {
	switch h {
	case types.RouteExcellent:
		return 100
	case types.RouteGood:
		return 80
	case types.RouteDegraded:
		return 60
	case types.RouteFailing:
		return 30
	default:
		return 50
	}
}

// NetworkEfficiency is the mean health score of routes; 100 when empty
func NetworkEfficiency(routes []types.ICMRoute) float64 {
	if len(routes) == 0 {
		return 100
	}
	var sum float64
	for _, r := range routes {
		sum += HealthScore(r.RouteHealth)
	}
	return sum / float64(len(routes))
}

// AverageLatency is the mean route latency; 0 when empty
func AverageLatency(routes []types.ICMRoute) float64 {
	if len(routes) == 0 {
		return 0
	}
	var sum float64
	for _, r := range routes {
		sum += r.AvgLatency
	}
	return sum / float64(len(routes))
}

// Distribution counts messages by type
func Distribution(messages []types.ICMMessage) types.MessageTypeDistribution {
	var d types.MessageTypeDistribution
	for _, m := range messages {
		switch m.MessageType {
		case types.MessageTransfer:
			d.Transfers++
		case types.MessageContractCall:
			d.ContractCalls++
		case types.MessageValidation:
			d.Validations++
		case types.MessageCustom:
			d.Custom++
		}
	}
	return d
}
