package icm

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// DataSource produces raw messages and routes. Route health is assigned by
// the Service, so sources may leave it empty.
type DataSource interface {
	Messages(ctx context.Context, l1ID string, limit int) ([]types.ICMMessage, error)
	Routes(ctx context.Context) ([]types.ICMRoute, error)
}

var (
	// messagePool are the L1 names that appear in generated messages
	messagePool = []string{"GUNZ", "Beam", "Dexalot", "Shrapnel", "Merit Circle", "DFK", "Amichain"}
	// routePool are the L1 names that appear in routes, flows and stats
	routePool = []string{"GUNZ", "Beam", "Dexalot", "Shrapnel", "Merit Circle", "DFK"}
)

// messageSpacing is the gap between consecutive generated messages
const messageSpacing = 30 * time.Second

// SyntheticSource generates plausible messages and routes
type SyntheticSource struct {
	src synth.Source
}

// NewSyntheticSource creates a generator driven by src
func NewSyntheticSource(src synth.Source) *SyntheticSource {
	return &SyntheticSource{src: src}
}

// Messages generates limit messages, newest first. When l1ID is empty each
// message gets a random source.
func (g *SyntheticSource) Messages(ctx context.Context, l1ID string, limit int) ([]types.ICMMessage, error) {
	now := g.src.Now()
	out := make([]types.ICMMessage, limit)

	for i := range out {
		source := l1ID
		if source == "" {
			source = synth.Pick(g.src, messagePool)
		}

		out[i] = types.ICMMessage{
			ID:                     fmt.Sprintf("icm_%d_%d", now.UnixMilli(), i),
			SourceL1:               source,
			DestinationL1:          synth.Pick(g.src, without(messagePool, source)),
			MessageType:            synth.Pick(g.src, types.MessageTypes),
			Status:                 synth.Pick(g.src, types.MessageStatuses),
			Timestamp:              now.Add(-time.Duration(i) * messageSpacing),
			Latency:                synth.Range(g.src, 500, 5500),
			Payload:                g.payload(),
			GasUsed:                fmt.Sprintf("%.0f", synth.Range(g.src, 10000, 60000)),
			Fees:                   fmt.Sprintf("%.4f AVAX", synth.Range(g.src, 0.001, 0.101)),
			SourceBlockHeight:      synth.IntRange(g.src, 500000, 1500000),
			DestinationBlockHeight: synth.IntRange(g.src, 500000, 1500000),
		}
	}
	return out, nil
}

// Routes samples each ordered pair of the route pool with probability 0.6
func (g *SyntheticSource) Routes(ctx context.Context) ([]types.ICMRoute, error) {
	now := g.src.Now()
	var routes []types.ICMRoute

	for _, from := range routePool {
		for _, to := range routePool {
			if from == to || g.src.Float64() <= 0.4 {
				continue
			}
			messages := synth.IntRange(g.src, 50, 1050)
			routes = append(routes, types.ICMRoute{
				SourceL1:        from,
				DestinationL1:   to,
				IsActive:        g.src.Float64() > 0.1,
				MessagesLast24h: messages,
				AvgLatency:      synth.Range(g.src, 800, 3800),
				FailureRate:     synth.Range(g.src, 0, 5),
				TotalVolume:     fmt.Sprintf("%.1f AVAX", float64(messages)*synth.Range(g.src, 0.5, 5.5)),
				LastMessage:     now.Add(-time.Duration(g.src.Float64() * float64(time.Hour))),
			})
		}
	}
	return routes, nil
}

func (g *SyntheticSource) payload() types.MessagePayload {
	switch g.src.Intn(4) {
	case 0:
		return types.MessagePayload{Type: "token_transfer", Amount: fmt.Sprintf("%.2f AVAX", synth.Range(g.src, 0, 1000))}
	case 1:
		return types.MessagePayload{Type: "nft_transfer", TokenID: strconv.Itoa(g.src.Intn(10000))}
	case 2:
		return types.MessagePayload{Type: "contract_call", Method: "stake", Data: synth.HexString(g.src, 8)}
	default:
		return types.MessagePayload{Type: "governance", Proposal: strconv.Itoa(g.src.Intn(100))}
	}
}

// without returns names minus exclude, preserving order
func without(names []string, exclude string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != exclude {
			out = append(out, n)
		}
	}
	return out
}
