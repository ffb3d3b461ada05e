package main

import (
	"fmt"
	"os"

	"bearing-alert.klederson.com/internal/alert"
	"bearing-alert.klederson.com/internal/angle"
	"bearing-alert.klederson.com/internal/app"
	"bearing-alert.klederson.com/internal/bearing"
	"bearing-alert.klederson.com/internal/compass"
	"bearing-alert.klederson.com/internal/config"
	"bearing-alert.klederson.com/internal/engine"
	"bearing-alert.klederson.com/internal/logging"
	"bearing-alert.klederson.com/internal/message"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig    string
	flagDemo      bool
	flagAdapter   string
	flagThreshold int
	flagPolicy    string
	flagListen    string
	flagNoBLE     bool
	flagLogFile   string
	flagLogLevel  string

	flagHeading int
	flagBearing int
	flagStatus  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bearing-alert",
		Short: "Bearing Alert - buzz when your heading lines up with a target bearing",
		Long: `Bearing Alert simulates a wrist-worn compass that pulses when the wearer's
heading comes within a tolerance window of a target bearing sent by a paired
companion device.

Bearings arrive over BLE advertisements (requires sudo or CAP_NET_ADMIN) or a
WebSocket (--listen). Use --demo for a simulated sensor and companion.`,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.PersistentFlags().IntVar(&flagThreshold, "threshold", bearing.DefaultThreshold, "Alert window half-width in degrees")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run in demo mode with a simulated compass and companion")
	rootCmd.Flags().StringVar(&flagAdapter, "adapter", "hci0", "Bluetooth adapter to use")
	rootCmd.Flags().StringVar(&flagPolicy, "policy", alert.PolicyEvery.String(), "Repeated pulse policy (every, entry, cooldown)")
	rootCmd.Flags().StringVar(&flagListen, "listen", "", "Accept companion frames and mirror the display over WebSocket on this address")
	rootCmd.Flags().BoolVar(&flagNoBLE, "no-ble", false, "Do not scan for the companion over BLE")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate one heading against a bearing and print the watch display",
		RunE:  check,
	}
	checkCmd.Flags().IntVar(&flagHeading, "heading", 0, "Heading in degrees")
	checkCmd.Flags().IntVar(&flagBearing, "bearing", 0, "Target bearing in degrees")
	checkCmd.Flags().IntVar(&flagStatus, "status", int(compass.StatusCalibrated), "Compass status code (0 invalid, 1 calibrating, 2 calibrated)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", config.AppName, config.AppVersion)
		},
	}

	rootCmd.AddCommand(checkCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies flags the user set on top of the file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Threshold = flagThreshold
	}
	if flags.Changed("demo") {
		cfg.Demo = flagDemo
	}
	if flags.Changed("adapter") {
		cfg.Companion.Adapter = flagAdapter
	}
	if flags.Changed("policy") {
		cfg.Alert.Policy = flagPolicy
	}
	if flags.Changed("listen") {
		cfg.Companion.Listen = flagListen
	}
	if flags.Changed("no-ble") {
		cfg.Companion.BLE = !flagNoBLE
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New("bearing-alert", cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	model := app.New(cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start transports with reference to the tea program
	if err := model.StartTransports(p); err != nil {
		logger.Errorw("starting transports", "error", err)
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  sudo ./bearing-alert")
		fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./bearing-alert")
		fmt.Fprintln(os.Stderr, "  ./bearing-alert --no-ble --listen :8089")
		fmt.Fprintln(os.Stderr, "  ./bearing-alert --demo    (demo mode, no hardware needed)")
		return err
	}

	_, err = p.Run()
	return err
}

// printDisplay writes every display update to the command output.
type printDisplay struct {
	cmd *cobra.Command
}

func (d printDisplay) SetHeadingText(s string) { fmt.Fprintf(d.cmd.OutOrStdout(), "heading: %q\n", s) }
func (d printDisplay) SetBearingText(s string) { fmt.Fprintf(d.cmd.OutOrStdout(), "bearing: %q\n", s) }

type countingHaptic struct{ n int }

func (h *countingHaptic) Pulse() { h.n++ }

func check(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagBearing < 0 || flagBearing > 0xFFFF {
		return errors.Errorf("bearing %d does not fit the companion message", flagBearing)
	}

	var logger *zap.SugaredLogger
	if cfg.Log.File != "" {
		if logger, err = logging.New("check", cfg.Log.Level, cfg.Log.File); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	haptic := &countingHaptic{}
	eng := engine.New(bearing.NewStore(cfg.Threshold), alert.NewEvaluator(haptic), printDisplay{cmd}, logger)
	eng.Start()

	frame, err := message.EncodeBearing(uint16(flagBearing))
	if err != nil {
		return err
	}
	if err := eng.HandleFrame(frame); err != nil {
		return err
	}
	eng.HandleSample(compass.Sample{
		Status:     compass.Status(flagStatus),
		HeadingRaw: angle.FromDegrees(flagHeading),
	})

	target := eng.Target()
	fmt.Fprintf(cmd.OutOrStdout(), "distance: %d  threshold: %d  alert: %v\n",
		angle.CircularDistance(flagHeading, target.Bearing), target.Threshold, haptic.n > 0)
	return nil
}
