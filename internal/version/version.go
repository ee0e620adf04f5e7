// Package version хранит сведения о сборке, заполняемые через -ldflags:
//
//	-X github.com/vladislavdragonenkov/furniture/internal/version.version=v1.2.0
package version

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GetVersion возвращает версию сборки.
func GetVersion() string { return version }

// Fields — сведения о сборке для стартовой записи лога.
func Fields() log.Fields {
	return log.Fields{
		"version": version,
		"commit":  commit,
		"built":   date,
	}
}

// Banner — строка для `furniture version`.
func Banner() string {
	return fmt.Sprintf("furniture %s (commit %s, built %s)", version, commit, date)
}
