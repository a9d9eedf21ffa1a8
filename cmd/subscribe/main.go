// Command subscribe registers the booking webhook once. Later runs find the
// subscription lock and exit without calling the provider.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/bookingclient"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/storefactory"
	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/port/primary"
)

const appName = "demobridge-subscribe"

type options struct {
	events      []string
	callbackURL string
	force       bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := buildContainer(ctx, opts)
	if err != nil {
		return fmt.Errorf("building container: %w", err)
	}

	return c.Invoke(func(
		svc primary.SubscriptionService,
		booking *bookingclient.Client,
		backend *storefactory.Backend,
		logger *zap.Logger,
	) error {
		defer func() {
			booking.Close()
			if err := backend.Close(); err != nil {
				logger.Error("error closing store", zap.Error(err))
			}
			_ = logger.Sync()
		}()

		sub, err := svc.Subscribe(ctx, opts.force)
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Println(sub.URI)
		return nil
	})
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	events := fs.String("events", domain.EventInviteeCreated, "comma-separated webhook events to subscribe to")
	url := fs.String("url", "", "callback URL; overrides WEBHOOK_CALLBACK_URL")
	force := fs.Bool("force", false, "subscribe even if a subscription lock exists, replacing it")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{callbackURL: strings.TrimSpace(*url), force: *force}
	for _, e := range strings.Split(*events, ",") {
		if e = strings.TrimSpace(e); e != "" {
			opts.events = append(opts.events, e)
		}
	}
	return opts, nil
}
