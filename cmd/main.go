package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"chat-relay/handler"
	"chat-relay/internal/config"
	"chat-relay/internal/integrations/anthropic"
	"chat-relay/internal/integrations/openai"
	"chat-relay/internal/integrations/paramstore"
	"chat-relay/internal/integrations/upstream"
	"chat-relay/internal/repository"
	"chat-relay/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		slog.Error("relay failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load("", nil)
	if err != nil {
		return err
	}

	recorder := usecase.CallRecorder(usecase.NopRecorder{})
	if cfg.ParamPrefix != "" || cfg.AuditTable != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("load AWS config: %w", err)
		}
		if cfg.ParamPrefix != "" {
			ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
			if err != nil {
				return fmt.Errorf("create SSM client: %w", err)
			}
			cfg = config.ResolveSecrets(ctx, cfg, ssmClient)
		}
		if cfg.AuditTable != "" {
			auditClient, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.AuditTable)
			if err != nil {
				return fmt.Errorf("create audit client: %w", err)
			}
			recorder = auditClient
		}
	}

	providers := cfg.Providers()
	if len(providers) == 0 {
		slog.Warn("no provider has an API key; every chat request will fail with CONFIG_ERROR")
	}
	for name := range providers {
		slog.Info("provider enabled", "provider", name)
	}

	// ---- Service ----
	chatService, err := usecase.NewChatService(
		cfg,
		upstream.NewClient(cfg.Timeout()),
		recorder,
		openai.NewAdapter(),
		anthropic.NewAdapter(),
	)
	if err != nil {
		return fmt.Errorf("create chat service: %w", err)
	}

	h, err := handler.NewHandler(chatService)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		lambda.Start(h.Handle)
		return nil
	}
	return serve(h, cfg.Port, cfg.DefaultProvider, cfg.ProxyURL != "")
}

func serve(h *handler.Handler, port int, defaultProvider string, proxied bool) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", port, "default_provider", defaultProvider, "proxied", proxied)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
