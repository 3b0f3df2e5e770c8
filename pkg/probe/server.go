package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/vexlabs/vexcheck/internal/config"
)

type Handler struct {
	cfg        *config.Stack
	probes     map[string]Probe
	waitProbes map[string]Probe
}

func NewProbeHandler(cfg *config.Stack) (*Handler, error) {
	probes, err := buildProbesFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	waitProbes := filterWaitProbes(cfg, probes)

	return &Handler{cfg, probes, waitProbes}, nil
}

// Wait polls all probes marked with "wait = true" until every one of
// them passes, or until an interrupt signal arrives.
func (h *Handler) Wait(interrupt chan os.Signal) error {
	log.Info("waiting for probe readiness")

	timer := time.NewTicker(1 * time.Second)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			ready := true

			for i := range h.waitProbes {
				if err := h.waitProbes[i].Exec(); err != nil {
					log.WithFields(log.Fields{"kind": "probe", "name": i, "err": err}).Warn("not ready yet")
					ready = false
				}
			}

			if ready {
				return nil
			}
		case s := <-interrupt:
			if s == syscall.SIGTERM || s == syscall.SIGINT {
				return errors.New("readiness interrupted")
			}
		}
	}
}

func (h *Handler) collectStatus() (StatusResponse, bool) {
	response := StatusResponse{
		Probes: make(map[string]*Result),
	}

	results := make(chan *Result, len(h.probes))
	timeout := time.NewTimer(1 * time.Second)
	defer timeout.Stop()

	for i := range h.probes {
		response.Probes[i] = &Result{i, false, "timed out"}

		go func(p Probe, name string) {
			if err := p.Exec(); err != nil {
				results <- &Result{Name: name, OK: false, Message: err.Error()}
			} else {
				results <- &Result{Name: name, OK: true, Message: ""}
			}
		}(h.probes[i], i)
	}

	success := true

	for i := 0; i < len(h.probes); i++ {
		select {
		case result := <-results:
			response.Probes[result.Name] = result
			success = success && result.OK
		case <-timeout.C:
			success = false
			log.WithFields(log.Fields{"kind": "probe"}).Error("timed out")
			return response, success
		}
	}

	return response, success
}

func (h *Handler) HandleStatus(res http.ResponseWriter, req *http.Request) {
	response, success := h.collectStatus()

	res.Header().Set("Content-Type", "application/json")

	if !success {
		res.WriteHeader(http.StatusServiceUnavailable)
	}

	_ = json.NewEncoder(res).Encode(&response)
}

// HandleWatch upgrades the connection to a websocket and pushes the
// status document periodically until the client hangs up.
func (h *Handler) HandleWatch(interval time.Duration) http.HandlerFunc {
	upgrader := websocket.Upgrader{}

	return func(res http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(res, req, nil)
		if err != nil {
			http.Error(res, "failed to upgrade connection", http.StatusInternalServerError)
			return
		}
		defer conn.Close()

		watchCtx, cancel := context.WithCancel(req.Context())
		defer cancel()

		// handle client disconnects
		go func() {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			response, _ := h.collectStatus()
			if err := conn.WriteJSON(&response); err != nil {
				return
			}

			select {
			case <-ticker.C:
			case <-watchCtx.Done():
				return
			}
		}
	}
}

func RunProbeServer(ph *Handler, signals chan os.Signal, listenPort int, watchInterval time.Duration) error {
	m := mux.NewRouter()
	m.Path("/status").HandlerFunc(ph.HandleStatus)
	m.Path("/watch").HandlerFunc(ph.HandleWatch(watchInterval))

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", listenPort),
		Handler: m,
	}

	go func() {
		for s := range signals {
			if s == syscall.SIGINT || s == syscall.SIGTERM {
				log.WithField("receivedSignal", s.String()).Info("shutting down probe server")
				_ = server.Shutdown(context.Background())
			}
		}
	}()

	err := server.ListenAndServe()
	if err != http.ErrServerClosed {
		return err
	}

	return nil
}

func filterWaitProbes(cfg *config.Stack, probes map[string]Probe) map[string]Probe {
	result := make(map[string]Probe)
	for i := range cfg.Probes {
		if cfg.Probes[i].Wait {
			result[cfg.Probes[i].Name] = probes[cfg.Probes[i].Name]
		}
	}
	return result
}

func buildProbesFromConfig(cfg *config.Stack) (map[string]Probe, error) {
	result := make(map[string]Probe)
	for i := range cfg.Probes {
		if cfg.Probes[i].Filesystem != "" {
			result[cfg.Probes[i].Name] = &filesystemProbe{cfg.Probes[i].Filesystem}
		} else if cfg.Probes[i].MySQL != nil {
			result[cfg.Probes[i].Name] = NewMySQLProbe(cfg.Probes[i].MySQL)
		} else if cfg.Probes[i].Redis != nil {
			result[cfg.Probes[i].Name] = NewRedisProbe(cfg.Probes[i].Redis)
		} else if cfg.Probes[i].MongoDB != nil {
			result[cfg.Probes[i].Name] = NewMongoDBProbe(cfg.Probes[i].MongoDB)
		} else if cfg.Probes[i].Amqp != nil {
			result[cfg.Probes[i].Name] = NewAmqpProbe(cfg.Probes[i].Amqp)
		} else if cfg.Probes[i].SMTP != nil {
			result[cfg.Probes[i].Name] = NewSmtpProbe(cfg.Probes[i].SMTP)
		} else if cfg.Probes[i].HTTP != nil {
			p, err := NewHTTPProbe(cfg.Probes[i].HTTP)
			if err != nil {
				return nil, fmt.Errorf("invalid http probe %q: %w", cfg.Probes[i].Name, err)
			}
			result[cfg.Probes[i].Name] = p
		}
	}
	return result, nil
}
