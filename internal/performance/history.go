package performance

import (
	"time"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// HistoryLength is the number of hourly samples kept per series
const HistoryLength = 24

// Ring is a fixed-size series that evicts its oldest sample on overflow
type Ring struct {
	buf   [HistoryLength]types.Sample
	start int
	n     int
}

// Push appends s, evicting the oldest sample when full
func (r *Ring) Push(s types.Sample) {
	if r.n < HistoryLength {
		r.buf[(r.start+r.n)%HistoryLength] = s
		r.n++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % HistoryLength
}

// Len returns the number of samples held
func (r *Ring) Len() int {
	return r.n
}

// Full reports whether the ring holds HistoryLength samples
func (r *Ring) Full() bool {
	return r.n == HistoryLength
}

// Samples returns the samples oldest first
func (r *Ring) Samples() []types.Sample {
	out := make([]types.Sample, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.buf[(r.start+i)%HistoryLength]
	}
	return out
}

// history holds the three series of one network
type history struct {
	tps       Ring
	blockTime Ring
	gasPrice  Ring
}

// advance seeds 24 hourly samples ending at now on first use, and appends
// one sample at now afterwards
func (h *history) advance(now time.Time, sample func() (tps, blockTime, gas float64)) {
	if h.tps.Full() {
		tps, bt, gas := sample()
		h.push(now, tps, bt, gas)
		return
	}

	for i := 0; i < HistoryLength; i++ {
		ts := now.Add(-time.Duration(HistoryLength-1-i) * time.Hour)
		tps, bt, gas := sample()
		h.push(ts, tps, bt, gas)
	}
}

func (h *history) push(ts time.Time, tps, blockTime, gas float64) {
	h.tps.Push(types.Sample{Timestamp: ts, Value: tps})
	h.blockTime.Push(types.Sample{Timestamp: ts, Value: blockTime})
	h.gasPrice.Push(types.Sample{Timestamp: ts, Value: gas})
}

func (h *history) snapshot() types.HistoricalData {
	return types.HistoricalData{
		TPS:       h.tps.Samples(),
		BlockTime: h.blockTime.Samples(),
		GasPrice:  h.gasPrice.Samples(),
	}
}
