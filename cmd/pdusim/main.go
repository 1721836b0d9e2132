// Pdusim emulates a spacecraft Power Distribution Unit for OBC integration
// testing. It answers ICD telecommands over UDP with CCSDS space packet
// framed telemetry.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mellowdrifter/pdusim/internal/config"
	"github.com/mellowdrifter/pdusim/internal/logging"
	"github.com/mellowdrifter/pdusim/internal/server"
)

const version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pdusim",
	Short: "Spacecraft PDU simulator",
	Long: `Pdusim stands in for the flight Power Distribution Unit during OBC
integration testing. It binds a UDP socket, decodes CCSDS space packets
carrying ICD JSON telecommands, and replies with bit-compatible telemetry.`,
	Version: version,
}

var (
	configFile  string
	bindAddress string
	bindPort    uint16
	apid        uint16
	logLevel    string
	seed        int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the simulator",
	Long: `Start the PDU simulator and serve telecommands until interrupted.

Flags override values from the config file. The simulator logs "ready"
once the socket is bound and accepting datagrams.`,
	Example: `  # Listen on the reference test port
  pdusim serve --bind-address 127.0.0.1 --bind-port 5004

  # Reproducible measurements
  pdusim serve --seed 42 --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML config file")
	serveCmd.Flags().StringVar(&bindAddress, "bind-address", config.DefaultBindAddress, "IP address to bind")
	serveCmd.Flags().Uint16Var(&bindPort, "bind-port", config.DefaultBindPort, "UDP port to bind")
	serveCmd.Flags().Uint16Var(&apid, "apid", config.DefaultAPID, "APID of the PDU channel")
	serveCmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	serveCmd.Flags().Int64Var(&seed, "seed", 0, "Measurement RNG seed (0 seeds from the clock)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Flags the user actually set win over the file.
	if cmd.Flags().Changed("bind-address") {
		cfg.BindAddress = bindAddress
	}
	if cmd.Flags().Changed("bind-port") {
		cfg.BindPort = bindPort
	}
	if cmd.Flags().Changed("apid") {
		cfg.APID = apid
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck

	srv := server.New(cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		// Bind failure: exit non-zero.
		return err
	case sig := <-sigCh:
		logger.Infof("Signal received: %s, shutting down gracefully...", sig)
	}

	if err := srv.Stop(); err != nil {
		logger.Errorf("Shutdown error: %v", err)
		return err
	}
	logger.Info("Simulator shut down cleanly")
	return nil
}
