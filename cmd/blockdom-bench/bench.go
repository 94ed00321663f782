package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/blockdom/pkg/hosttest"
	"github.com/vango-dev/blockdom/pkg/renderer"
	"github.com/vango-dev/blockdom/pkg/vdom"
)

type benchResult struct {
	Scenario string  `json:"scenario"`
	ListSize int     `json:"list_size"`
	Iters    int     `json:"iterations"`
	NsPerOp  float64 `json:"ns_per_patch"`
	Mounts   int     `json:"mounts"`
	Patches  int     `json:"patches"`
	Moves    int     `json:"moves"`
	Unmounts int     `json:"unmounts"`
	HostOps  int     `json:"host_ops"`
}

type benchReport struct {
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Go        string        `json:"go"`
	OS        string        `json:"os"`
	Arch      string        `json:"arch"`
	Results   []benchResult `json:"results"`
}

func benchCmd() *cobra.Command {
	var (
		listSize   int
		iterations int
		jsonOut    string
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run reconciliation scenarios against an in-memory host",
		Long: `Run a fixed set of reconciliation scenarios and report per-patch
timings plus the exact host-operation counts each scenario issued.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listSize <= 0 {
				return fmt.Errorf("--list must be > 0, got %d", listSize)
			}
			if iterations <= 0 {
				return fmt.Errorf("--iterations must be > 0, got %d", iterations)
			}

			report := benchReport{
				Version:   version,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Go:        runtime.Version(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			}

			rng := rand.New(rand.NewSource(seed))
			scenarios := []struct {
				name string
				next func() *vdom.VNode
			}{
				{"identical", func() *vdom.VNode { return demoList(identityOrder(listSize)) }},
				{"reverse", func() *vdom.VNode { return demoList(reverseOrder(listSize)) }},
				{"rotate", func() *vdom.VNode { return demoList(rotateOrder(listSize)) }},
				{"shuffle", func() *vdom.VNode { return demoList(shuffleOrder(listSize, rng)) }},
				{"remove half", func() *vdom.VNode { return demoList(identityOrder(listSize/2)) }},
				{"text churn", func() *vdom.VNode { return demoListOffset(listSize, 1) }},
			}

			for _, sc := range scenarios {
				report.Results = append(report.Results, runScenario(sc.name, listSize, iterations, sc.next))
			}

			writeBenchSummary(os.Stderr, report)
			if jsonOut != "" {
				return writeBenchJSON(jsonOut, report)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&listSize, "list", 1000, "keyed list size")
	cmd.Flags().IntVar(&iterations, "iterations", 100, "patches per scenario")
	cmd.Flags().StringVar(&jsonOut, "json", "", "JSON output path ('-' for stdout)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "shuffle seed")

	return cmd
}

func runScenario(name string, listSize, iterations int, next func() *vdom.VNode) benchResult {
	res := benchResult{Scenario: name, ListSize: listSize, Iters: iterations}

	var total time.Duration
	for i := 0; i < iterations; i++ {
		host := hosttest.New()
		r := renderer.New(host)
		old := demoList(identityOrder(listSize))
		r.Patch(nil, old, host.Root, nil)
		host.Reset()

		tree := next()
		start := time.Now()
		r.Patch(old, tree, host.Root, nil)
		total += time.Since(start)

		if i == 0 {
			res.Mounts, res.Patches, res.Moves, res.Unmounts = r.Stats()
			res.HostOps = len(host.Ops)
		}
	}
	res.NsPerOp = float64(total.Nanoseconds()) / float64(iterations)
	return res
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func reverseOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = n - 1 - i
	}
	return order
}

func rotateOrder(n int) []int {
	order := make([]int, n)
	order[0] = n - 1
	for i := 1; i < n; i++ {
		order[i] = i - 1
	}
	return order
}

func shuffleOrder(n int, rng *rand.Rand) []int {
	order := identityOrder(n)
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// demoList builds <ul> with one keyed <li> per entry of order.
func demoList(order []int) *vdom.VNode {
	kids := make([]*vdom.VNode, len(order))
	for i, k := range order {
		kids[i] = vdom.Element("li", vdom.Key(k), vdom.Textf("Item %d", k))
	}
	return vdom.Element("ul", vdom.ID("demo"), kids)
}

// demoListOffset keeps keys and order but shifts every item's text.
func demoListOffset(n, offset int) *vdom.VNode {
	kids := make([]*vdom.VNode, n)
	for i := range kids {
		kids[i] = vdom.Element("li", vdom.Key(i), vdom.Textf("Item %d", i+offset))
	}
	return vdom.Element("ul", vdom.ID("demo"), kids)
}

func writeBenchSummary(w io.Writer, report benchReport) {
	fmt.Fprintln(w, "=== blockdom reconciliation benchmark ===")
	fmt.Fprintf(w, "Go %s %s/%s\n\n", report.Go, report.OS, report.Arch)
	fmt.Fprintf(w, "%-12s %10s %8s %8s %8s %8s %10s\n",
		"scenario", "ns/patch", "mounts", "patches", "moves", "unmounts", "host ops")
	for _, r := range report.Results {
		fmt.Fprintf(w, "%-12s %10.0f %8d %8d %8d %8d %10d\n",
			r.Scenario, r.NsPerOp, r.Mounts, r.Patches, r.Moves, r.Unmounts, r.HostOps)
	}
}

func writeBenchJSON(path string, report benchReport) error {
	var out io.Writer
	if path == "-" {
		out = os.Stdout
	} else {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
