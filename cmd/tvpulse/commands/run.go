package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/audiencelink/tvpulse/pkg/audio"
	"github.com/audiencelink/tvpulse/pkg/buildcfg"
	"github.com/audiencelink/tvpulse/pkg/device"
	"github.com/audiencelink/tvpulse/pkg/fingerprint"
	"github.com/audiencelink/tvpulse/pkg/hmi"
	"github.com/audiencelink/tvpulse/pkg/nvstore"
	"github.com/audiencelink/tvpulse/pkg/pipeline"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
	"github.com/audiencelink/tvpulse/pkg/transport"
)

var (
	flagSource     string
	flagConfigPath string
	flagNVSDir     string
	flagWebPort    int
	flagServerURL  string
	flagDeviceID   string
	flagDropLink   bool
	flagToneHz     float64
	flagToneAmp    float64
	flagNoiseAmp   float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sensor pipeline",
	Long: `Run captures ambient audio, fingerprints it, and publishes
fingerprints to the configured aggregator, driving the HMI off the two
simulated buttons ("1"/"2" lines on stdin) until interrupted.

Since there is no real I2S hardware here, --source selects a synthetic
driver standing in for the microphone:

  synth   steady tone + noise (the default, publishable fingerprints)
  silent  exact zeros (never crosses the publish threshold)`,
	RunE: runSensor,
}

func init() {
	runCmd.Flags().StringVar(&flagSource, "source", "synth", "audio source: synth|silent")
	runCmd.Flags().StringVar(&flagConfigPath, "config", "", "path to device.yaml (default: $TVPULSE_CONFIG or ~/.tvpulse/device.yaml)")
	runCmd.Flags().StringVar(&flagNVSDir, "nvs-dir", "", "directory for the config NVS store (default: in-memory)")
	runCmd.Flags().IntVar(&flagWebPort, "web-port", 0, "serve a read-only debug websocket view on this port (0 disables)")
	runCmd.Flags().StringVar(&flagServerURL, "server-url", "", "override the aggregator URL from device.yaml")
	runCmd.Flags().StringVar(&flagDeviceID, "device-id", "", "override the device ID from device.yaml")
	runCmd.Flags().BoolVar(&flagDropLink, "simulate-link-drop", false, "start with the network link reported down")
	runCmd.Flags().Float64Var(&flagToneHz, "tone-hz", 440, "synth source tone frequency")
	runCmd.Flags().Float64Var(&flagToneAmp, "tone-amplitude", 0.2, "synth source tone amplitude")
	runCmd.Flags().Float64Var(&flagNoiseAmp, "noise-amplitude", 0.02, "synth source noise amplitude")
}

func runSensor(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if IsVerbose() {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := flagConfigPath
	if path == "" {
		var err error
		path, err = buildcfg.DefaultPath()
		if err != nil {
			return err
		}
	}
	bcfg, err := buildcfg.Load(path)
	if err != nil {
		return fmt.Errorf("load device config: %w", err)
	}
	if flagServerURL != "" {
		bcfg.ServerURL = flagServerURL
	}
	if flagDeviceID != "" {
		bcfg.DeviceID = flagDeviceID
	}

	var persister sysconfig.Persister
	if flagNVSDir != "" {
		nvs, err := nvstore.Open(nvstore.Options{Dir: flagNVSDir})
		if err != nil {
			log.Warn("tvpulse: open nvs store failed, using defaults", "error", err)
		} else {
			defer nvs.Close()
			persister = nvs
		}
	}

	store := sysconfig.NewStore(persister, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.Load(ctx)

	cfg := store.Snapshot()
	var driver audio.Driver
	switch flagSource {
	case "silent":
		driver = audio.NewSilentDriver(cfg.SampleRate)
	case "synth", "":
		d := audio.NewToneDriver(cfg.SampleRate, flagToneHz, flagToneAmp)
		d.NoiseAmplitude = flagNoiseAmp
		driver = d
	default:
		return fmt.Errorf("unknown --source %q (want synth|silent)", flagSource)
	}

	link := device.NewLink()
	link.SetUp(!flagDropLink)
	counters := &device.Counters{}

	client := transport.NewClient(bcfg.ServerURL, bcfg.DeviceID, link, log)
	pl := fingerprint.NewPipeline(log)

	windows := make(chan *audio.Window, 1)
	source := audio.NewSource(driver, store, log)

	sup := pipeline.NewSupervisor(windows, pl, client, store, counters, link, log)

	menu := &hmi.Menu{}
	keyboard := hmi.NewKeyboardSource(os.Stdin)
	input := hmi.NewInputLoop(keyboard)
	controller := hmi.NewController(sup, store, menu, input.Out, log)

	sinks := []hmi.Sink{hmi.TerminalSink{}}
	var webView *hmi.WebView
	var httpServer *http.Server
	if flagWebPort > 0 {
		webView = hmi.NewWebView(log)
		sinks = append(sinks, webView)
		mux := http.NewServeMux()
		mux.Handle("/debug", webView.Handler())
		httpServer = &http.Server{Addr: fmt.Sprintf(":%d", flagWebPort), Handler: mux}
		go func() {
			log.Info("hmi: debug web view listening", "addr", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("hmi: web view server failed", "error", err)
			}
		}()
	}
	display := hmi.NewDisplayLoop(sup, store, counters, menu, sinks...)

	clockSync := device.NewClockSync(nil, log)
	monitor := device.NewMonitor(counters, log)

	errs := make(chan error, 8)
	run := func(name string, fn func(context.Context) error) {
		go func() {
			if err := fn(ctx); err != nil && err != context.Canceled {
				log.Warn("tvpulse: task exited", "task", name, "error", err)
			}
			errs <- nil
		}()
	}

	run("capture", func(ctx context.Context) error { return source.Run(ctx, windows) })
	run("supervisor", sup.Run)
	run("input", input.Run)
	run("controller", controller.Run)
	run("display", display.Run)
	run("clock-sync", clockSync.Run)
	run("monitor", monitor.Run)
	go keyboard.Run()

	fmt.Printf("tvpulse running as %s, publishing to %s\n", bcfg.DeviceID, bcfg.ServerURL)
	fmt.Println("Type 1<Enter>/2<Enter> to simulate Button1/Button2, Ctrl+C to exit.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	cancel()
	if httpServer != nil {
		_ = httpServer.Close()
	}
	store.Persist(context.Background())
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
