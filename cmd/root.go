package cmd

import (
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configDir string
var enableProfile bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "/etc/vexcheck.d", "set directory to where your .hcl-configs are located")
	rootCmd.PersistentFlags().BoolVar(&enableProfile, "profile", false, "enable pprof http server")
}

var rootCmd = &cobra.Command{
	Use:     "vexcheck",
	Short:   "Vexcheck - connection diagnostics for the Vex vector stack",
	Long:    "Vexcheck tests the services of a local Vex development stack (ChromaDB, Milvus and the Attu UI, plus any configured sidecars) for availability",
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if enableProfile {
			go func() {
				mux := http.NewServeMux()
				mux.HandleFunc("/debug/pprof/", pprof.Index)
				mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
				mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
				mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
				mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

				listener, err := net.Listen("tcp", ":0")
				if err != nil {
					log.Errorf("pprof server failed to listen: %v", err)
					return
				}
				log.Infof("Starting pprof server on http://localhost%s/debug/pprof/", listener.Addr().String())
				if err := http.Serve(listener, mux); err != nil {
					log.Errorf("pprof server error: %v", err)
				}
			}()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Warn("Running 'vexcheck' without any arguments - defaulting to 'check'. This behaviour may change in future releases!")
		check.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(renderError(err))
		os.Exit(1)
	}
}
