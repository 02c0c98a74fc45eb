package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// ExplorerMetrics exposes the state of the network registry and the
// synthesizers
type ExplorerMetrics struct {
	// Events emitted by each synthesizer
	SynthEvents *prometheus.CounterVec

	// Networks in the latest listing, by origin (live or fallback)
	NetworksListed *prometheus.GaugeVec

	// Registry refresh latency
	NetworkRefreshDuration prometheus.Histogram

	// Validators reported per network
	NetworkValidators *prometheus.GaugeVec

	// Latest synthesized TPS per network
	NetworkTPS *prometheus.GaugeVec

	// ICM network efficiency (0-100)
	ICMNetworkEfficiency prometheus.Gauge

	// Mean ICM cross-chain latency in milliseconds
	ICMAverageLatency prometheus.Gauge

	// Validators by staking risk level
	StakingValidators *prometheus.GaugeVec

	// Mean projected APY across the validator population
	StakingAverageAPY prometheus.Gauge
}

// NewExplorerMetrics creates the explorer metrics and registers them with
// reg. A nil reg uses the default registerer.
func NewExplorerMetrics(reg prometheus.Registerer) *ExplorerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &ExplorerMetrics{
		SynthEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avax_synth_events_total",
				Help: "Events published by each synthesizer",
			},
			[]string{"synthesizer", "event"},
		),

		NetworksListed: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "avax_networks_listed",
				Help: "Networks in the latest registry listing by origin",
			},
			[]string{"origin"},
		),

		NetworkRefreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "avax_network_refresh_duration_seconds",
				Help:    "Time spent listing and enriching networks",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),

		NetworkValidators: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "avax_network_validators",
				Help: "Validators reported for each network",
			},
			[]string{"network"},
		),

		NetworkTPS: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "avax_network_tps",
				Help: "Latest synthesized transactions per second",
			},
			[]string{"network"},
		),

		ICMNetworkEfficiency: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "avax_icm_network_efficiency",
				Help: "ICM network efficiency score (0-100)",
			},
		),

		ICMAverageLatency: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "avax_icm_average_latency_milliseconds",
				Help: "Mean ICM cross-chain latency across routes",
			},
		),

		StakingValidators: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "avax_staking_validators",
				Help: "Validators by staking risk level",
			},
			[]string{"risk"},
		),

		StakingAverageAPY: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "avax_staking_average_apy",
				Help: "Mean projected APY across validators",
			},
		),
	}
}

// RecordSynthEvent counts one event published by a synthesizer
func (m *ExplorerMetrics) RecordSynthEvent(synthesizer, event string) {
	m.SynthEvents.WithLabelValues(synthesizer, event).Inc()
}

// RecordNetworks records a registry listing
func (m *ExplorerMetrics) RecordNetworks(origin string, networks []types.Network, took time.Duration) {
	m.NetworksListed.Reset()
	m.NetworksListed.WithLabelValues(origin).Set(float64(len(networks)))
	m.NetworkRefreshDuration.Observe(took.Seconds())

	m.NetworkValidators.Reset()
	for _, n := range networks {
		m.NetworkValidators.WithLabelValues(n.Name).Set(float64(n.ValidatorCount))
	}
}

// RecordPerformance records the latest TPS of each network
func (m *ExplorerMetrics) RecordPerformance(perf []types.NetworkPerformance) {
	for _, p := range perf {
		m.NetworkTPS.WithLabelValues(p.L1Name).Set(p.CurrentTPS)
	}
}

// RecordICMAnalytics records the aggregate ICM view
func (m *ExplorerMetrics) RecordICMAnalytics(a types.ICMAnalytics) {
	m.ICMNetworkEfficiency.Set(a.NetworkEfficiency)
	m.ICMAverageLatency.Set(a.AvgCrossChainLatency)
}

// RecordStakingAnalytics records the aggregate staking view
func (m *ExplorerMetrics) RecordStakingAnalytics(a types.StakingAnalytics) {
	m.StakingValidators.WithLabelValues(string(types.RiskLow)).Set(float64(a.RiskDistribution.Low))
	m.StakingValidators.WithLabelValues(string(types.RiskMedium)).Set(float64(a.RiskDistribution.Medium))
	m.StakingValidators.WithLabelValues(string(types.RiskHigh)).Set(float64(a.RiskDistribution.High))
	m.StakingAverageAPY.Set(a.AverageAPY)
}
