package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/blockdom/pkg/hosttest"
	"github.com/vango-dev/blockdom/pkg/renderer"
	"github.com/vango-dev/blockdom/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		listSize int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live demo patch-stream server",
		Long: `Serve a demo page plus a WebSocket endpoint. Each connected client
gets its own in-memory host tree; the server shuffles a keyed list on an
interval, patches it through the engine, and streams the resulting host
operations and stats to the client as JSON frames.

Prometheus metrics for all renderers are exposed on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.Default().With("component", "demo-server")
			metrics := renderer.NewMetrics(renderer.WithSubsystem("demo"))

			r := chi.NewRouter()
			r.Use(middleware.Logger)
			r.Use(middleware.Recoverer)

			r.Get("/", demoPageHandler())
			r.Get("/ws", demoStreamHandler(log, metrics, listSize, interval))
			r.Handle("/metrics", promhttp.Handler())

			log.Info("demo server listening", "addr", addr, "list_size", listSize)
			return http.ListenAndServe(addr, r)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
	cmd.Flags().IntVar(&listSize, "list", 50, "keyed list size per session")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "shuffle interval")

	return cmd
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamFrame is one patch cycle as sent to WebSocket clients.
type streamFrame struct {
	Seq      uint64   `json:"seq"`
	Moves    int      `json:"moves"`
	Mounts   int      `json:"mounts"`
	Patches  int      `json:"patches"`
	Unmounts int      `json:"unmounts"`
	Ops      []string `json:"ops"`
	HTML     string   `json:"html"`
	ElapsedU int64    `json:"elapsed_us"`
}

func demoStreamHandler(log *slog.Logger, metrics *renderer.Metrics, listSize int, interval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Error("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()
		log.Info("client connected", "remote", req.RemoteAddr)

		host := hosttest.New()
		var mountedTotal int
		rend := renderer.New(host,
			renderer.WithMetrics(metrics),
			renderer.WithMounted(func(*vdom.VNode) { mountedTotal++ }))
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		old := demoList(identityOrder(listSize))
		rend.Patch(nil, old, host.Root, nil)

		// Reader goroutine: the demo never expects client frames, but a
		// read loop is required to observe close frames.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var seq uint64
		for {
			select {
			case <-done:
				log.Info("client disconnected",
					"remote", req.RemoteAddr,
					"frames", seq,
					"elements_mounted", mountedTotal)
				return
			case <-ticker.C:
			}

			host.Reset()
			next := demoList(shuffleOrder(listSize, rng))

			start := time.Now()
			rend.Patch(old, next, host.Root, nil)
			elapsed := time.Since(start)
			old = next

			mounts, patches, moves, unmounts := rend.Stats()
			seq++
			frame := streamFrame{
				Seq:      seq,
				Moves:    moves,
				Mounts:   mounts,
				Patches:  patches,
				Unmounts: unmounts,
				Ops:      opStrings(host),
				HTML:     host.HTML(),
				ElapsedU: elapsed.Microseconds(),
			}
			if err := conn.WriteJSON(frame); err != nil {
				log.Info("client write failed", "remote", req.RemoteAddr, "error", err)
				return
			}
		}
	}
}

func opStrings(host *hosttest.Host) []string {
	ops := make([]string, len(host.Ops))
	for i, op := range host.Ops {
		ops[i] = op.String()
	}
	return ops
}

func demoPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(demoPage))
	}
}

const demoPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>blockdom patch stream</title>
<style>
body { font-family: ui-monospace, monospace; max-width: 900px; margin: 0 auto; padding: 2rem; background: #1a1a2e; color: #eee; }
h1 { color: #6ee7b7; }
#stats { margin-bottom: 1rem; color: #888; }
#tree { background: #16213e; border-radius: 8px; padding: 1rem; white-space: pre-wrap; word-break: break-all; }
#ops { background: #16213e; border-radius: 8px; padding: 1rem; margin-top: 1rem; max-height: 20rem; overflow-y: auto; font-size: 0.8rem; color: #9ca3af; }
</style>
</head>
<body>
<h1>blockdom patch stream</h1>
<div id="stats">connecting…</div>
<div id="tree"></div>
<div id="ops"></div>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => {
  const f = JSON.parse(ev.data);
  document.getElementById("stats").textContent =
    "patch #" + f.seq + "  moves=" + f.moves + " mounts=" + f.mounts +
    " unmounts=" + f.unmounts + "  " + f.elapsed_us + "µs  " + f.ops.length + " host ops";
  document.getElementById("tree").textContent = f.html;
  document.getElementById("ops").textContent = f.ops.join("\n");
};
ws.onclose = () => { document.getElementById("stats").textContent = "disconnected"; };
</script>
</body>
</html>
`
