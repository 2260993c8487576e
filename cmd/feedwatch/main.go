package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/feedwatch/pkg/config"
	"github.com/umputun/feedwatch/pkg/domain"
	"github.com/umputun/feedwatch/pkg/feed"
	"github.com/umputun/feedwatch/pkg/notify"
	"github.com/umputun/feedwatch/pkg/publisher"
	"github.com/umputun/feedwatch/pkg/repository"
	"github.com/umputun/feedwatch/pkg/scheduler"
	"github.com/umputun/feedwatch/server"
)

// Opts with all CLI options
type Opts struct {
	Listen   string `short:"l" long:"listen" env:"LISTEN" default:":8080" description:"listen address"`
	DB       string `long:"db" env:"DB" default:"feedwatch.db" description:"sqlite database file"`
	Feeds    string `short:"f" long:"feeds" env:"FEEDS" description:"yaml file with feeds to follow on startup"`
	Interval int    `long:"interval" env:"SCHEDULE_INTERVAL_SEC" default:"10" description:"update interval in seconds"`
	Workers  int    `long:"workers" env:"WORKERS" default:"5" description:"feeds updated concurrently"`

	MaxRetries   int           `long:"max-retries" env:"MAX_RETRIES" default:"3" description:"failures tolerated before a feed is turned off"`
	FetchTimeout time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30s" description:"feed fetch timeout"`
	TickRetries  int           `long:"tick-retries" env:"TICK_RETRY_ATTEMPTS" default:"3" description:"tick attempts on storage failures"`

	Notification     bool   `long:"notification" env:"NOTIFICATION" description:"notify feed owners about deactivated feeds"`
	NotificationType string `long:"notification-type" env:"NOTIFICATION_TYPE" default:"email" description:"notification variant, email or sms"`

	SMTP struct {
		Server   string        `long:"server" env:"SERVER" description:"smtp server host"`
		Port     int           `long:"port" env:"PORT" default:"587" description:"smtp server port"`
		Login    string        `long:"login" env:"LOGIN" description:"smtp login"`
		Password string        `long:"password" env:"PASSWORD" description:"smtp password"`
		From     string        `long:"from" env:"FROM" description:"sender address, login if not set"`
		Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"smtp timeout"`
	} `group:"smtp" namespace:"smtp" env-namespace:"SMTP"`

	AMQP struct {
		URL        string `long:"url" env:"URL" description:"amqp url, events are off if not set"`
		Exchange   string `long:"exchange" env:"EXCHANGE" default:"feedwatch" description:"exchange name"`
		RoutingKey string `long:"routing-key" env:"ROUTING_KEY" default:"feeds" description:"routing key"`
		Queue      string `long:"queue" env:"QUEUE" default:"feedwatch-events" description:"queue bound to exchange"`
	} `group:"amqp" namespace:"amqp" env-namespace:"AMQP"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("can't load .env: %v\n", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor, opts.SMTP.Password)

	log.Printf("[INFO] starting feedwatch version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until context is canceled or server fails
func run(ctx context.Context, opts Opts) error {
	cfg := buildConfig(opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if opts.Feeds != "" {
		if err := seedFeeds(ctx, repos.Feed, opts.Feeds); err != nil {
			return err
		}
	}

	// publisher is optional, keep the interface nil when it's off
	var pub scheduler.Publisher
	if cfg.Events.URL != "" {
		rmq, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.Events.URL,
			Exchange:   cfg.Events.Exchange,
			RoutingKey: cfg.Events.RoutingKey,
			QueueName:  cfg.Events.Queue,
		})
		if err != nil {
			return fmt.Errorf("failed to setup events publisher: %w", err)
		}
		defer func() {
			if err := rmq.Close(); err != nil {
				log.Printf("[WARN] failed to close events publisher: %v", err)
			}
		}()
		pub = rmq
	}

	notifier := notify.New(notify.Config{
		Type: cfg.Notification.Type,
		SMTP: notify.SMTPConfig{
			Host:     cfg.SMTP.Server,
			Port:     cfg.SMTP.Port,
			Login:    cfg.SMTP.Login,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Timeout:  cfg.SMTP.Timeout,
		},
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		FeedStore:         repos.Feed,
		ItemStore:         repos.Item,
		Fetcher:           feed.NewParser(cfg.Fetch.Timeout, cfg.Fetch.UserAgent),
		Notifier:          notifier,
		Publisher:         pub,
		UpdateInterval:    cfg.Schedule.Interval,
		MaxWorkers:        cfg.Schedule.MaxWorkers,
		MaxRetries:        cfg.Escalation.MaxRetries,
		NotifyEnabled:     cfg.Notification.Enabled,
		RetryAttempts:     cfg.Schedule.RetryAttempts,
		RetryInitialDelay: cfg.Schedule.RetryInitialDelay,
		RetryMaxDelay:     cfg.Schedule.RetryMaxDelay,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(&cfg, server.NewRepositoryAdapter(repos), sched, revision, cfg.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// buildConfig makes application config from cli options, unset values keep defaults
func buildConfig(opts Opts) config.Config {
	cfg := config.Default()
	cfg.Schedule.Interval = time.Duration(opts.Interval) * time.Second
	cfg.Schedule.MaxWorkers = opts.Workers
	cfg.Schedule.RetryAttempts = opts.TickRetries
	cfg.Escalation.MaxRetries = opts.MaxRetries
	cfg.Fetch.Timeout = opts.FetchTimeout
	cfg.Notification.Enabled = opts.Notification
	cfg.Notification.Type = opts.NotificationType
	cfg.SMTP.Server = opts.SMTP.Server
	cfg.SMTP.Port = opts.SMTP.Port
	cfg.SMTP.Login = opts.SMTP.Login
	cfg.SMTP.Password = opts.SMTP.Password
	cfg.SMTP.From = opts.SMTP.From
	cfg.SMTP.Timeout = opts.SMTP.Timeout
	cfg.Database.DSN = fmt.Sprintf("file:%s?cache=shared&mode=rwc&_txlock=immediate", opts.DB)
	cfg.Server.Listen = opts.Listen
	cfg.Events.URL = opts.AMQP.URL
	cfg.Events.Exchange = opts.AMQP.Exchange
	cfg.Events.RoutingKey = opts.AMQP.RoutingKey
	cfg.Events.Queue = opts.AMQP.Queue
	cfg.Debug = opts.Debug
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = config.Default().Fetch.Timeout
	}
	if cfg.SMTP.Timeout == 0 {
		cfg.SMTP.Timeout = config.Default().SMTP.Timeout
	}
	return cfg
}

type feedCreator interface {
	CreateFeed(ctx context.Context, feed *domain.Feed) error
}

// seedFeeds follows feeds from the seed file, already known feeds are skipped
func seedFeeds(ctx context.Context, store feedCreator, path string) error {
	seeds, err := config.LoadSeeds(path)
	if err != nil {
		return fmt.Errorf("failed to load feeds: %w", err)
	}

	created := 0
	for _, sf := range seeds.Feeds {
		f := &domain.Feed{Name: sf.Name, URL: sf.URL, OwnerEmail: sf.OwnerEmail}
		if err := store.CreateFeed(ctx, f); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				log.Printf("[DEBUG] feed %s already followed", sf.Name)
				continue
			}
			return fmt.Errorf("failed to follow feed %s: %w", sf.Name, err)
		}
		created++
	}
	log.Printf("[INFO] seeded %d of %d feeds from %s", created, len(seeds.Feeds), path)
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
