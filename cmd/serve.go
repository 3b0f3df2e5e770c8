package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vexlabs/vexcheck/internal/config"
	"github.com/vexlabs/vexcheck/pkg/pidfile"
	"github.com/vexlabs/vexcheck/pkg/probe"
)

var (
	probeListenPort int
	watchInterval   time.Duration
	pidFile         string
)

func init() {
	rootCmd.AddCommand(serve)
	serve.PersistentFlags().IntVarP(&probeListenPort, "probe-listen-port", "p", 9102, "set the port to listen for probe requests")
	serve.PersistentFlags().DurationVar(&watchInterval, "interval", 5*time.Second, "set the push interval of the /watch stream")
	serve.PersistentFlags().StringVar(&pidFile, "pidfile", "", "write vexchecks process id to this file")
}

var serve = &cobra.Command{
	Use:   "serve",
	Short: "Run a probe status server for the configured stack",
	Long:  "This sub-command starts an HTTP server that reports the current availability of all configured stack services on /status and streams it on /watch",
	Run: func(cmd *cobra.Command, args []string) {
		pidFileHandle := pidfile.New(pidFile)

		if err := pidFileHandle.Acquire(); err != nil {
			log.Fatalf("failed to write pid file to %q: %s", pidFile, err)
		}

		defer func() {
			if err := pidFileHandle.Release(); err != nil {
				log.Errorf("error while cleaning up the pid file: %s", err)
			}
		}()

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

		log.Infof("probe server listens on port %d", probeListenPort)
		if err := probe.RunProbeServer(probeHandler, signals, probeListenPort, watchInterval); err != nil {
			log.Errorf("probe server stopped with error: %s", err)
		} else {
			log.Info("probe server stopped without error")
		}
	},
}
