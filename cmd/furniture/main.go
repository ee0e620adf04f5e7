package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// setupLogger настраивает формат и уровень логирования.
func setupLogger(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

func main() {
	setupLogger("info")

	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("furniture завершился с ошибкой")
	}
}
