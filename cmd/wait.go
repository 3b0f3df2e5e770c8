package cmd

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vexlabs/vexcheck/internal/config"
	"github.com/vexlabs/vexcheck/pkg/probe"
)

func init() {
	rootCmd.AddCommand(wait)
}

var wait = &cobra.Command{
	Use:   "wait",
	Short: "Block until the configured stack services are ready",
	Long:  "This sub-command reads the probe configuration and polls all probes marked with 'wait = true' once per second until every one of them passes",
	Run: func(cmd *cobra.Command, args []string) {
		stack := &config.Stack{}
		if err := stack.GenerateFromConfigDir(configDir); err != nil {
			log.Fatalf("failed while trying to generate stack config from dir '%+v', err: '%+v'", configDir, err)
		}

		probeHandler, err := probe.NewProbeHandler(stack)
		if err != nil {
			log.Fatalf("failed to build probes from stack config: '%+v'", err)
		}

		signals := make(chan os.Signal, 1)
		signal.Notify(signals,
			syscall.SIGTERM,
			syscall.SIGINT,
		)

		if err := probeHandler.Wait(signals); err != nil {
			log.Fatalf("probe handler failed while waiting for readiness: '%+v'", err)
		}

		log.Info("all probes ready")
	},
}
