package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BorisRostovskiy/usertable/internal/clients"
	"github.com/BorisRostovskiy/usertable/internal/handlers"
	httpHandler "github.com/BorisRostovskiy/usertable/internal/handlers/http"
	"github.com/BorisRostovskiy/usertable/internal/log"
	"github.com/BorisRostovskiy/usertable/internal/repository/memory"
	pgStorage "github.com/BorisRostovskiy/usertable/internal/repository/pg"
	"github.com/BorisRostovskiy/usertable/internal/service"

	httpHealth "github.com/hellofresh/health-go/v5"
	"github.com/namsral/flag"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	postgresStorage = "postgres"
	memoryStorage   = "memory"
)

var version = "dev"

type config struct {
	Handler struct {
		Addr string `yaml:"addr"`
	} `yaml:"handler"`

	Storage struct {
		Type   string           `yaml:"type"`
		Config pgStorage.Config `yaml:"config"`
		Seed   []service.User   `yaml:"seed"`
	} `yaml:"storage"`
}

func mustSetupHTTP(logger *logrus.Logger, users handlers.UsersService, cfg config) *http.Server {
	h, err := httpHealth.New(
		httpHealth.WithSystemInfo(),
		httpHealth.WithComponent(httpHealth.Component{
			Name:    "Users API",
			Version: version,
		}))
	if err != nil {
		logrus.Fatal(err)
	}
	if err = h.Register(httpHealth.Config{
		Name:      "repository",
		Timeout:   time.Second * 5,
		SkipOnErr: true,
		Check:     users.HealthCheck,
	}); err != nil {
		logrus.Fatal(err)
	}

	return &http.Server{
		Addr:              cfg.Handler.Addr,
		Handler:           httpHandler.New(logger, users, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func mustSetupStorage(cfg config, log *logrus.Logger) (service.UserRepo, func()) {
	switch cfg.Storage.Type {
	case postgresStorage:
		store, err := pgStorage.New(&cfg.Storage.Config, log)
		if err != nil {
			logrus.Fatalf("failed to create repository: %v", err)
		}
		return store, func() { _ = store.Close() }
	case memoryStorage:
		return memory.New(cfg.Storage.Seed...), func() {}
	default:
		logrus.Fatalf("unknown repository: %s", cfg.Storage.Type)
	}
	return nil, nil
}

func mustSetupConfig(configFile string) config {
	var cfg config
	if file, err := os.ReadFile(configFile); err != nil {
		logrus.Fatalf("failed to read configuration file: %s", err)
	} else if err = yaml.Unmarshal(file, &cfg); err != nil {
		logrus.Fatalf("failed to unmarshal configuration: %s", err)
	}
	return cfg
}

func main() {
	var configFile string
	var logLevel string
	var addr string

	flags := flag.NewFlagSet("Users API", flag.ContinueOnError)
	flags.StringVar(&logLevel, "log-level", "debug",
		"Log level. Available options: debug, info, warn, error")
	flags.StringVar(&configFile, "config_file", "/etc/usersapi.yaml", "configuration file")
	flags.StringVar(&addr, "addr", "", "listen address, overrides handler.addr")
	flags.SetOutput(io.Discard)
	err := flags.Parse(os.Args[1:])

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Printf("UsersAPI\n\n")
			fmt.Printf("USAGE\n\n  %s [OPTIONS]\n\n", os.Args[0])
			fmt.Print("OPTIONS\n\n")
			flags.SetOutput(os.Stdout)
			flags.PrintDefaults()
			os.Exit(0)
		} else {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	logger := log.Setup(logLevel)
	cfg := mustSetupConfig(configFile)
	if addr != "" {
		cfg.Handler.Addr = addr
	}
	storage, closeStorage := mustSetupStorage(cfg, logger)
	defer closeStorage()
	users := service.New(storage, logger, clients.NewChannelNotificationSvc(logger))

	httpSrv := mustSetupHTTP(logger, users, cfg)
	go func() {
		if serveErr := httpSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logrus.Fatal(serveErr)
		}
	}()
	logger.Printf("======| listen on %s | storage: %s | server version: %s |======\n",
		cfg.Handler.Addr, cfg.Storage.Type, version)

	gracefulStop := make(chan os.Signal, 2)
	signal.Notify(gracefulStop, syscall.SIGTERM, syscall.SIGINT)

	<-gracefulStop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctx)
	logrus.Println("===DONE===")
}
