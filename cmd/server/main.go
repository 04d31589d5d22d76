package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nvivas/backend/uttt-go-server/internal/api"
	"nvivas/backend/uttt-go-server/internal/config"
	"nvivas/backend/uttt-go-server/internal/hub"
	"nvivas/backend/uttt-go-server/internal/logger"
	"nvivas/backend/uttt-go-server/internal/match"
	"nvivas/backend/uttt-go-server/internal/room"
)

func main() {
	// Cargar configuración desde .env y variables de entorno
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Configuración inválida", logger.Fields{"error": err.Error()})
	}

	// Inicializar el logger
	logger.Initialize(cfg.LogLevel)

	// Crear contexto cancelable
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Crear e iniciar el Hub
	mainHub := hub.NewHub(ctx, room.Options{
		GracePeriod: cfg.RoomGracePeriod,
		Match:       match.Options{EnforceForcedGrid: cfg.EnforceForcedGrid},
	})
	go mainHub.Run()

	logger.Info("Hub iniciado", logger.Fields{
		"enforceForcedGrid": cfg.EnforceForcedGrid,
		"roomGracePeriod":   cfg.RoomGracePeriod.String(),
	})

	// Configurar servidor con opciones de cierre controlado
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewServer(mainHub, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Canal para señales del sistema
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Iniciar el servidor en una goroutine separada
	go func() {
		logger.Info("Iniciando servidor", logger.Fields{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Error al iniciar el servidor", logger.Fields{"error": err.Error()})
		}
	}()

	// Esperar señal de interrupción
	<-done
	logger.Info("Recibida señal de apagado, iniciando shutdown", nil)

	// Crear contexto con timeout para el shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Cerrar el hub; las salas abiertas se cierran con él
	mainHub.Close()
	cancel()

	// Cerrar servidor HTTP con timeout
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error durante el shutdown del servidor", logger.Fields{"error": err.Error()})
	}

	logger.Info("Servidor detenido correctamente", nil)
}
