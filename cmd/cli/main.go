package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/birddigital/avax-l1-explorer/internal/cache"
	"github.com/birddigital/avax-l1-explorer/internal/config"
	"github.com/birddigital/avax-l1-explorer/internal/icm"
	"github.com/birddigital/avax-l1-explorer/internal/performance"
	"github.com/birddigital/avax-l1-explorer/internal/registry"
	"github.com/birddigital/avax-l1-explorer/internal/rpc"
	"github.com/birddigital/avax-l1-explorer/internal/staking"
	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/internal/validation"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

var (
	asJSON  bool
	seed    int64
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "avax-l1-explorer",
		Short:        "CLI for querying the Avalanche L1 explorer data layer",
		Long:         `Command-line interface for listing L1 networks and inspecting synthesized performance, ICM and staking analytics.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "seed for the synthesizers (default: SYNTH_SEED or the clock)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		networksCmd(),
		networkCmd(),
		performanceCmd(),
		icmCmd(),
		validatorsCmd(),
		cacheCmd(),
		healthCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the in-process services the commands query
type app struct {
	cfg      *config.Config
	platform *rpc.Platform
	registry *registry.Adapter
	source   synth.Source
	logger   zerolog.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	s := seed
	if s == 0 {
		s = cfg.Synth.Seed
	}
	source := synth.NewSource(s, nil)

	retry := rpc.DefaultRetryConfig()
	retry.MaxRetries = cfg.RPC.MaxRetries
	caller := rpc.WithRetry(rpc.NewClient(cfg.RPC.Timeout), retry)
	platform := rpc.NewPlatform(caller, cfg.RPC.PlatformURL)

	var heights registry.BlockHeighter
	if cfg.RPC.ChainRPCTemplate != "" {
		heights = rpc.NewEVM(caller)
	}
	opts := registry.DefaultOptions()
	opts.Concurrency = cfg.RPC.RegistryConcurrency
	opts.ChainRPCTemplate = cfg.RPC.ChainRPCTemplate

	return &app{
		cfg:      cfg,
		platform: platform,
		registry: registry.NewAdapter(platform, heights, source, opts, logger),
		source:   source,
		logger:   logger,
	}, nil
}

// staking builds the ecosystem-wide staking service; the CLI never selects
// a single L1, so the rpc source needs no subnet resolver
func (a *app) staking() *staking.Service {
	var data staking.DataSource = staking.NewSyntheticSource(a.source)
	if a.cfg.Synth.StakingSource == "rpc" {
		data = staking.NewFallbackSource(staking.NewRPCSource(a.platform, a.source, nil), data, a.logger)
	}
	return staking.NewService(staking.WithSource(a.source), staking.WithDataSource(data), staking.WithLogger(a.logger))
}

// redis connects to the server's Redis cache namespace
func (a *app) redis(ctx context.Context) (*cache.RedisCache, error) {
	return cache.NewRedisCache(ctx, cache.Config{
		Addr:      a.cfg.Cache.Addr,
		Password:  a.cfg.Cache.Password,
		DB:        a.cfg.Cache.DB,
		Strategy:  cache.StrategyByName(a.cfg.Cache.TTLStrategy),
		KeyPrefix: "avax",
	})
}

func (a *app) icm() *icm.Service {
	return icm.NewService(icm.WithSource(a.source), icm.WithLogger(a.logger))
}

// withApp adapts a command body that needs the services
func withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return fn(cmd, a, args)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func networksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List L1 networks",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			listing := a.registry.ListNetworks(cmd.Context())
			if asJSON {
				return printJSON(listing)
			}

			fmt.Printf("Found %d networks (%s):\n\n", len(listing.Networks), listing.Origin)
			tw := newTable()
			fmt.Fprintln(tw, "ID\tNAME\tTOKEN\tVALIDATORS\tSTATUS\tICM")
			for _, n := range listing.Networks {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%t\n", shortID(n.ID), n.Name, n.TokenSymbol, n.ValidatorCount, n.Status, n.ICMEnabled)
			}
			return tw.Flush()
		}),
	}
}

func networkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "network <id>",
		Short: "Show one L1 network",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			n, err := a.registry.GetNetwork(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(n)
			}

			fmt.Printf("%s (%s)\n", n.Name, n.ID)
			fmt.Println(strings.Repeat("=", 60))
			fmt.Printf("Token:        %s\n", n.TokenSymbol)
			fmt.Printf("Status:       %s\n", n.Status)
			fmt.Printf("Validators:   %d\n", n.ValidatorCount)
			fmt.Printf("Subnet:       %s\n", n.SubnetID)
			fmt.Printf("VM:           %s\n", n.VMID)
			fmt.Printf("Block height: %d\n", n.BlockHeight)
			if n.Website != "" {
				fmt.Printf("Website:      %s\n", n.Website)
			}
			return nil
		}),
	}
}

func performanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "performance [id...]",
		Short: "Show synthesized performance for networks (all when none given)",
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			listing := a.registry.ListNetworks(cmd.Context())
			ids := args
			if len(ids) == 0 {
				for _, n := range listing.Networks {
					ids = append(ids, n.ID)
				}
			}
			svc := performance.NewService(
				performance.WithSource(a.source),
				performance.WithNameResolver(nameResolver(listing.Networks)),
				performance.WithLogger(a.logger),
			)

			perf := svc.GetAllPerformance(cmd.Context(), ids)
			if asJSON {
				return printJSON(perf)
			}

			tw := newTable()
			fmt.Fprintln(tw, "NETWORK\tTPS\tBLOCK TIME\tFINALITY\tLOAD\tUPTIME")
			for _, p := range perf {
				fmt.Fprintf(tw, "%s\t%.1f\t%.2fs\t%.2fs\t%.1f%%\t%.2f%%\n",
					p.L1Name, p.CurrentTPS, p.CurrentBlockTime, p.FinalityTime, p.NetworkLoad, p.UptimePercentage)
			}
			return tw.Flush()
		}),
	}
}

func icmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icm",
		Short: "Inspect synthesized Interchain Messaging activity",
	}

	routes := &cobra.Command{
		Use:   "routes",
		Short: "List ICM routes",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			routes, err := a.icm().Routes(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(routes)
			}

			tw := newTable()
			fmt.Fprintln(tw, "SOURCE\tDESTINATION\tMESSAGES 24H\tFAILURE\tLATENCY\tHEALTH")
			for _, r := range routes {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f%%\t%.0fms\t%s\n",
					r.SourceL1, r.DestinationL1, r.MessagesLast24h, r.FailureRate, r.AvgLatency, r.RouteHealth)
			}
			return tw.Flush()
		}),
	}

	analytics := &cobra.Command{
		Use:   "analytics",
		Short: "Show ecosystem ICM analytics",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			analytics, err := a.icm().Analytics(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(analytics)
			}

			fmt.Printf("Messages (24h):     %d\n", analytics.TotalMessages24h)
			fmt.Printf("Routes:             %d (%d active)\n", analytics.TotalRoutes, analytics.ActiveRoutes)
			fmt.Printf("Average latency:    %.0fms\n", analytics.AvgCrossChainLatency)
			fmt.Printf("Network efficiency: %.1f\n", analytics.NetworkEfficiency)
			for _, r := range analytics.TopRoutes {
				fmt.Printf("  %-40s %6d msgs %6.0fms\n", r.Route, r.Volume, r.Latency)
			}
			return nil
		}),
	}

	messages := &cobra.Command{
		Use:   "messages",
		Short: "List recent ICM messages",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			l1, _ := cmd.Flags().GetString("l1")
			limit, _ := cmd.Flags().GetInt("limit")
			q := validation.MessagesQuery{L1: l1, Limit: limit}
			if err := validation.ValidateStruct(cmd.Context(), q); err != nil {
				return err
			}

			source := ""
			if q.L1 != "" {
				n, err := a.registry.GetNetwork(cmd.Context(), q.L1)
				if err != nil {
					return err
				}
				source = n.Name
			}

			messages, err := a.icm().Messages(cmd.Context(), source, q.Limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(messages)
			}

			tw := newTable()
			fmt.Fprintln(tw, "ID\tSOURCE\tDESTINATION\tTYPE\tSTATUS\tLATENCY")
			for _, m := range messages {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.0fms\n",
					shortID(m.ID), m.SourceL1, m.DestinationL1, m.MessageType, m.Status, m.Latency)
			}
			return tw.Flush()
		}),
	}
	messages.Flags().String("l1", "", "only messages sent from this network (chain ID)")
	messages.Flags().Int("limit", validation.DefaultMessageLimit, "number of messages")

	flow := &cobra.Command{
		Use:   "flow",
		Short: "Show message flow between networks",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			flow := a.icm().MessageFlow(cmd.Context())
			if asJSON {
				return printJSON(flow)
			}

			tw := newTable()
			fmt.Fprintln(tw, "FROM\tTO\tCOUNT\tVOLUME\tLATENCY")
			for _, f := range flow {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.0fms\n", f.From, f.To, f.Count, f.Volume, f.AvgLatency)
			}
			return tw.Flush()
		}),
	}

	cmd.AddCommand(routes, analytics, messages, flow)
	return cmd
}

func validatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validators",
		Short: "Inspect validators and staking recommendations",
	}

	rankings := &cobra.Command{
		Use:   "rankings",
		Short: "Rank validators",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			sortBy, _ := cmd.Flags().GetString("sort")
			q := validation.RankingsQuery{SortBy: sortBy}
			if err := validation.ValidateStruct(cmd.Context(), q); err != nil {
				return err
			}

			rankings, err := a.staking().Rankings(cmd.Context(), types.RankingMetric(q.SortBy))
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(rankings)
			}

			tw := newTable()
			fmt.Fprintln(tw, "RANK\tVALIDATOR\tL1\tSCORE\tUPTIME\tREPUTATION")
			for _, r := range rankings {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.2f%%\t%.0f\n",
					r.Rank, r.Validator.ValidatorName, r.Validator.L1Name, r.TotalScore, r.Metrics.Uptime, r.Metrics.Reputation)
			}
			return tw.Flush()
		}),
	}
	rankings.Flags().String("sort", string(types.RankByPerformance), "performance, uptime, profitability or capacity")

	opportunities := &cobra.Command{
		Use:   "opportunities",
		Short: "Find staking opportunities",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			amount, _ := cmd.Flags().GetFloat64("amount")
			risk, _ := cmd.Flags().GetString("risk")
			q := validation.OpportunitiesQuery{Amount: amount, Risk: risk}
			if err := validation.ValidateStruct(cmd.Context(), q); err != nil {
				return err
			}

			opps, err := a.staking().Opportunities(cmd.Context(), q.Amount, types.RiskLevel(q.Risk))
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(opps)
			}

			tw := newTable()
			fmt.Fprintln(tw, "VALIDATOR\tL1\tAPY\tSCORE\tRISK\tYEARLY")
			for _, o := range opps {
				fmt.Fprintf(tw, "%s\t%s\t%.2f%%\t%.1f\t%s\t%s\n",
					o.Validator.ValidatorName, o.Validator.L1Name, o.ExpectedAPY, o.RecommendationScore,
					o.Validator.Performance.RiskLevel, o.EstimatedRewards.Yearly)
			}
			return tw.Flush()
		}),
	}
	opportunities.Flags().Float64("amount", validation.DefaultStakeAmount, "stake amount in AVAX")
	opportunities.Flags().String("risk", string(types.RiskMedium), "low, medium or high")

	delegate := &cobra.Command{
		Use:   "delegate",
		Short: "Recommend a delegation split",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			amount, _ := cmd.Flags().GetFloat64("amount")
			strategy, _ := cmd.Flags().GetString("strategy")
			q := validation.DelegationQuery{Amount: amount, Strategy: strategy}
			if err := validation.ValidateStruct(cmd.Context(), q); err != nil {
				return err
			}

			rec, err := a.staking().Delegation(cmd.Context(), q.Amount, types.DelegationStrategy(q.Strategy))
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(rec)
			}

			fmt.Printf("Strategy: %s   Expected APY: %.2f%%   Diversification: %.0f\n\n",
				rec.Strategy, rec.ExpectedAPY, rec.DiversificationScore)
			if len(rec.Allocations) == 0 {
				fmt.Println("No eligible validators")
				return nil
			}
			tw := newTable()
			fmt.Fprintln(tw, "VALIDATOR\tSHARE\tAMOUNT\tREASON")
			for _, al := range rec.Allocations {
				fmt.Fprintf(tw, "%s\t%.1f%%\t%s\t%s\n", al.Validator.ValidatorName, al.Percentage, al.Amount, al.Reasoning)
			}
			return tw.Flush()
		}),
	}
	delegate.Flags().Float64("amount", validation.DefaultStakeAmount, "stake amount in AVAX")
	delegate.Flags().String("strategy", string(types.StrategyBalanced), "conservative, balanced or aggressive")

	analytics := &cobra.Command{
		Use:   "analytics",
		Short: "Show staking analytics",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			analytics, err := a.staking().Analytics(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(analytics)
			}

			fmt.Printf("Validators:         %d\n", analytics.TotalValidators)
			fmt.Printf("Total staked:       %s\n", analytics.TotalStaked)
			fmt.Printf("Average uptime:     %.2f%%\n", analytics.AverageUptime)
			fmt.Printf("Average commission: %.2f%%\n", analytics.AverageCommission)
			fmt.Printf("Average APY:        %.2f%%\n", analytics.AverageAPY)
			fmt.Printf("Risk (low/med/high): %d/%d/%d\n",
				analytics.RiskDistribution.Low, analytics.RiskDistribution.Medium, analytics.RiskDistribution.High)
			return nil
		}),
	}

	profile := &cobra.Command{
		Use:   "profile <node-id>",
		Short: "Show one validator",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			q, err := validation.ParseProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v, err := a.staking().Profile(cmd.Context(), q.NodeID)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(v)
			}

			fmt.Printf("%s (%s)\n", v.ValidatorName, v.NodeID)
			fmt.Println(strings.Repeat("=", 60))
			fmt.Printf("L1:          %s\n", v.L1Name)
			fmt.Printf("Stake:       %s\n", v.Stake.TotalFormatted)
			fmt.Printf("Uptime:      %.2f%%\n", v.Uptime)
			fmt.Printf("Commission:  %.1f%%\n", v.Commission)
			fmt.Printf("Score:       %.1f (%s)\n", v.Performance.Score, v.Performance.Reliability)
			fmt.Printf("Risk:        %s\n", v.Performance.RiskLevel)
			return nil
		}),
	}

	cmd.AddCommand(rankings, opportunities, delegate, analytics, profile)
	return cmd
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Remove every cached entry",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if !a.cfg.Cache.RedisEnabled {
				fmt.Println("Redis is disabled; nothing to flush")
				return nil
			}
			rc, err := a.redis(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()

			if err := rc.Flush(cmd.Context()); err != nil {
				return fmt.Errorf("failed to flush cache: %w", err)
			}
			fmt.Println("✓ Cache flushed")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show Redis cache statistics",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if !a.cfg.Cache.RedisEnabled {
				fmt.Println("Redis is disabled; the server caches in memory")
				return nil
			}
			rc, err := a.redis(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()

			stats, err := rc.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read cache stats: %w", err)
			}
			if asJSON {
				return printJSON(stats)
			}

			fmt.Printf("Backend:  %v\n", stats["backend"])
			fmt.Printf("Keys:     %v\n", stats["db_size"])
			if strategy, ok := stats["strategy"].(map[string]string); ok {
				fmt.Printf("List TTL: %s\n", strategy["network_list"])
				fmt.Printf("Item TTL: %s\n", strategy["network_detail"])
			}
			return nil
		}),
	})
	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check node and cache connectivity",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			healthy := true

			if err := a.platform.Ping(cmd.Context()); err != nil {
				fmt.Printf("❌ RPC (%s): UNHEALTHY (%v)\n", a.platform.Endpoint(), err)
				healthy = false
			} else {
				fmt.Printf("✓ RPC (%s): HEALTHY\n", a.platform.Endpoint())
			}

			if a.cfg.Cache.RedisEnabled {
				rc, err := a.redis(cmd.Context())
				if err != nil {
					fmt.Printf("❌ Redis: UNHEALTHY (%v)\n", err)
					healthy = false
				} else {
					_ = rc.Close()
					fmt.Println("✓ Redis: HEALTHY")
				}
			}

			if !healthy {
				return fmt.Errorf("system is unhealthy")
			}
			fmt.Println("\n✓ System is healthy")
			return nil
		}),
	}
}

func nameResolver(networks []types.Network) performance.NameResolver {
	names := make(map[string]string, len(networks))
	for _, n := range networks {
		names[n.ID] = n.Name
	}
	return func(id string) string { return names[id] }
}

func shortID(id string) string {
	if len(id) > 20 {
		return id[:18] + "..."
	}
	return id
}
