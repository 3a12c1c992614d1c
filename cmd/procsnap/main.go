//go:build linux

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ja7ad/procsnap/pkg/procfs"
	"github.com/ja7ad/procsnap/pkg/types"
)

type opts struct {
	samples  int
	interval time.Duration
	ema      float64
	jsonOut  bool
}

func main() {
	// a .env beside the working directory can preseed the defaults
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	var o opts

	root := &cobra.Command{
		Use:   "procsnap",
		Short: "Typed snapshots and rates from Linux /proc stat sources",
		Long: `procsnap reads kernel runtime statistics (/proc/stat, meminfo,
loadavg, uptime, net/dev, per-pid stat/status) as typed snapshots and
derives rates and utilization from pairs of samples.

Examples:
  procsnap sources
  procsnap snapshot meminfo
  procsnap snapshot pid/stat 1234 --json
  procsnap rate cpu -i 1s -s 5
  procsnap rate netdev -i 2s
  procsnap watch`,
	}

	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "List the supported stat sources",
		Run: func(cmd *cobra.Command, args []string) {
			for _, src := range procfs.Sources() {
				fmt.Println(src)
			}
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot SOURCE [PID]",
		Short: "Capture and print one snapshot of a source",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(o, args)
		},
	}
	snapshotCmd.Flags().BoolVar(&o.jsonOut, "json", false, "print the snapshot as JSON")

	rateCmd := &cobra.Command{
		Use:   "rate SOURCE [PID]",
		Short: "Sample a source repeatedly and print counter rates",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRate(cmd.Context(), o, args)
		},
	}
	rateCmd.Flags().DurationVarP(&o.interval, "interval", "i",
		envDuration("PROCSNAP_INTERVAL", time.Second), "sampling interval (e.g. 1s, 500ms)")
	rateCmd.Flags().IntVarP(&o.samples, "samples", "s",
		envInt("PROCSNAP_SAMPLES", 0), "number of deltas to print (0 = run until Ctrl-C)")
	rateCmd.Flags().Float64Var(&o.ema,
		"ema", 0, "EMA alpha for CPU utilization smoothing [0..1] (0 disables)")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Live terminal view of CPU, memory, load and network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(o)
		},
	}
	watchCmd.Flags().DurationVarP(&o.interval, "interval", "i",
		envDuration("PROCSNAP_INTERVAL", time.Second), "refresh interval")

	root.AddCommand(sourcesCmd, snapshotCmd, rateCmd, watchCmd)

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func capture(reg *procfs.Registry, args []string) (*procfs.Snapshot, error) {
	src := procfs.SourceID(args[0])
	if len(args) == 2 {
		return reg.SnapshotEntity(src, args[1])
	}
	return reg.Snapshot(src)
}

func runSnapshot(o opts, args []string) error {
	reg := procfs.NewRegistry(procfs.DefaultFS())
	snap, err := capture(reg, args)
	if err != nil {
		return err
	}

	if o.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	printSnapshot(snap)
	return nil
}

func printSnapshot(snap *procfs.Snapshot) {
	fmt.Printf("# %s at %s\n", snap.Source, snap.At.Format(time.RFC3339))
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	for _, rec := range snap.Records {
		switch r := rec.(type) {
		case *procfs.LoadAvg:
			fmt.Fprintf(tw, "load\t%.2f %.2f %.2f\trunnable\t%d/%d\tlast pid\t%d\n",
				r.One, r.Five, r.Fifteen, r.Runnable, r.TotalEntities, r.LastPID)
		case *procfs.Uptime:
			fmt.Fprintf(tw, "up\t%s\tidle\t%s\n",
				(time.Duration(r.Seconds) * time.Second).String(),
				(time.Duration(r.IdleSeconds) * time.Second).String())
		case *procfs.MemInfo:
			for _, k := range sortedKeys(r.KB) {
				fmt.Fprintf(tw, "%s\t%d kB\t(%s)\n", k, r.KB[k], types.FromKB(r.KB[k]).Humanized())
			}
		case *procfs.ProcessStat:
			fmt.Fprintf(tw, "pid\t%d\tcomm\t%s\tstate\t%s\tppid\t%d\n", r.PID, r.Comm, r.State, r.PPID)
			fmt.Fprintf(tw, "utime\t%d\tstime\t%d\tthreads\t%d\trss\t%s\n",
				r.UTime, r.STime, r.Threads, types.Bytes(r.RSS).Humanized())
		case *procfs.ProcessStatus:
			fmt.Fprintf(tw, "pid\t%d\tcomm\t%s\tstate\t%s\n", r.PID, r.Comm, r.State)
			for _, k := range sortedKeys(r.Fields) {
				fmt.Fprintf(tw, "%s\t%d\n", k, r.Fields[k])
			}
		default:
			// counter-shaped records: cpu rows, net interfaces
			counters := rec.Counters()
			for _, k := range sortedKeys(counters) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.Name(), k, counters[k])
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runRate(ctx context.Context, o opts, args []string) error {
	if o.interval <= 0 {
		return fmt.Errorf("interval must be > 0")
	}
	if o.ema < 0 || o.ema > 1 {
		return fmt.Errorf("ema must be in [0,1]")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := procfs.NewRegistry(procfs.DefaultFS())
	prev, err := capture(reg, args)
	if err != nil {
		return err
	}

	smooth := newEMA(o.ema)
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for n := 0; o.samples == 0 || n < o.samples; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		snap, err := capture(reg, args)
		if err != nil {
			if errors.Is(err, procfs.ErrEntityVanished) {
				fmt.Println("# entity exited")
				return nil
			}
			// transient read problems are the next cycle's concern
			slog.Warn("sample failed", "err", err)
			continue
		}

		d, err := procfs.Delta(prev, snap)
		if err != nil {
			return err
		}
		prev = snap
		printDelta(d, smooth)
	}
	return nil
}

func printDelta(d *procfs.DeltaRecord, smooth *ema) {
	now := time.Now().Format("15:04:05")
	switch d.Source {
	case procfs.SourceCPU:
		u, ok := procfs.CPUUtilization(d, "cpu")
		if !ok {
			fmt.Printf("%s  cpu util ?\n", now)
			return
		}
		fmt.Printf("%s  cpu util %5.1f%%\n", now, smooth.next(u)*100)
	case procfs.SourceNetDev:
		for _, key := range sortedKeys(d.Deltas) {
			rate, ok := d.Rate(key)
			if !ok {
				continue
			}
			suffix := ""
			if _, reset := d.ResetDetected[key]; reset {
				suffix = "  (reset)"
			}
			if strings.HasSuffix(key, "_bytes") {
				fmt.Printf("%s  %-22s %12s/s%s\n", now, key, types.Bytes(uint64(rate)).Humanized(), suffix)
			} else {
				fmt.Printf("%s  %-22s %12.1f/s%s\n", now, key, rate, suffix)
			}
		}
	default:
		for _, key := range sortedKeys(d.Deltas) {
			if rate, ok := d.Rate(key); ok {
				fmt.Printf("%s  %-30s %12.1f/s\n", now, key, rate)
			}
		}
	}
}
