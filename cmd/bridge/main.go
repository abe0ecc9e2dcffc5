package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/httpbridge/internal/config"
	"github.com/MKhiriev/httpbridge/internal/consumer"
	"github.com/MKhiriev/httpbridge/internal/endpoint"
	"github.com/MKhiriev/httpbridge/internal/logger"
	"github.com/MKhiriev/httpbridge/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// defaultEndpoint serves a greeting route when BRIDGE_ENDPOINT is unset.
const defaultEndpoint = "http://0.0.0.0:8080/greet/{id}"

func main() {
	printBuildInfo()

	log := logger.NewLogger("bridge")
	cfg, err := config.GetComponentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	address := os.Getenv("BRIDGE_ENDPOINT")
	if address == "" {
		address = defaultEndpoint
	}

	registry := endpoint.NewRegistry(*cfg, log)
	ep, err := registry.Resolve(address, endpoint.Options{})
	if err != nil {
		log.Fatal().Err(err).Str("address", address).Msg("error resolving endpoint")
	}

	cons, err := ep.CreateConsumer(greetHandler(), nil)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating consumer")
	}
	if err := cons.Start(); err != nil {
		log.Fatal().Err(err).Msg("error starting consumer")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cons.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}

	log.Info().Msg("bridge shut down gracefully")
}

// greetHandler answers GET /greet/{id} with "Hello <id>" and echoes the
// request body after the greeting on POST.
func greetHandler() consumer.Handler {
	return consumer.HandlerFunc(func(_ context.Context, ex *models.Exchange) error {
		id := ex.In.Header("id")
		if ex.In.Header(models.HeaderMethod) == http.MethodPost && len(ex.In.Body) > 0 {
			ex.Out.SetBodyString("Hello " + id + ": " + ex.In.BodyString())
			return nil
		}
		ex.Out.SetBodyString("Hello " + id)
		return nil
	})
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
