package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configura o logger global. Nível inválido cai para info.
func Setup(level string) {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.JSONFormatter{})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithFields(log.Fields{"level": level}).Warn("LOG_LEVEL inválido, usando info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
