package utils

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Renal37/campus-eats/internal/logger"
	"go.uber.org/zap"
)

// HandleTerminationProcess вызывает cleanup при получении SIGINT или SIGTERM.
// Используется для закрытия пула соединений с базой и соединения с NATS.
func HandleTerminationProcess(cleanup func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-signals
		logger.Log.Info("shutting down", zap.String("signal", sig.String()))
		cleanup()
		os.Exit(1)
	}()
}
