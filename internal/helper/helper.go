package helper

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ResolveEnv resolves values of the form "ENV:NAME" to the
// contents of the environment variable NAME.
func ResolveEnv(in string) string {
	if strings.HasPrefix(in, "ENV:") {
		return os.Getenv(in[4:])
	}
	return in
}

func SetDefaultStringIfEmpty(value, defaultValue, field, probeType string) string {
	if len(value) == 0 {
		log.Infof("no %s specified for %s probe, assuming default %q", field, probeType, defaultValue)
		return defaultValue
	}
	return value
}
