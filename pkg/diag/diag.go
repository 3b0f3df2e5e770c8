// Package diag implements the one-shot connectivity diagnosis of the
// local Vex vector stack: ChromaDB, Milvus and the Milvus Attu UI.
package diag

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Timeout bounds every single connectivity check.
const Timeout = 5 * time.Second

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the outcome of a single connectivity check.
type Result struct {
	Status  Status
	Message string
}

func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Check describes a single service of the Vex stack, identified by a
// fixed URL whose 200 response proves the service is reachable.
type Check struct {
	Name        string
	URL         string
	SuccessText string
}

// Run issues one GET request against the check's target. A response
// with status 200 counts as success; any other status and any
// transport failure are reported as an error result. Run never
// returns an error itself, the outcome is always a Result.
func (c Check) Run() Result {
	client := &http.Client{
		Timeout: Timeout,
	}

	res, err := client.Get(c.URL)
	if err != nil {
		return Result{
			Status:  StatusError,
			Message: fmt.Sprintf("Failed to connect to %s: %s", c.Name, err),
		}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Result{
			Status:  StatusError,
			Message: fmt.Sprintf("%s returned status %d", c.Name, res.StatusCode),
		}
	}

	log.WithFields(log.Fields{"kind": "check", "name": c.Name, "status": "alive", "host": c.URL}).Debug()

	return Result{
		Status:  StatusSuccess,
		Message: c.SuccessText,
	}
}

// StackChecks returns the fixed targets of the local Vex development
// stack, in the order they are tested.
func StackChecks() []Check {
	return []Check{
		{
			Name:        "ChromaDB",
			URL:         "http://localhost:8000/api/v1/heartbeat",
			SuccessText: "ChromaDB is running and accessible",
		},
		{
			Name:        "Milvus",
			URL:         "http://localhost:9091/healthz",
			SuccessText: "Milvus is running and accessible",
		},
		{
			Name:        "Milvus Attu UI",
			URL:         "http://localhost:3000",
			SuccessText: "Milvus Attu UI is accessible",
		},
	}
}

// AllSuccessful reports whether every result passed.
func AllSuccessful(results []Result) bool {
	for _, r := range results {
		if !r.OK() {
			return false
		}
	}
	return true
}
