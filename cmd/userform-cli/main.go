package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/goliatone/go-userform"
	"github.com/goliatone/go-userform/internal/config"
	"github.com/goliatone/go-userform/pkg/form"
	"github.com/goliatone/go-userform/pkg/profile"
	"github.com/goliatone/go-userform/pkg/renderers/tui"
	"github.com/goliatone/go-userform/pkg/sink"
	pkguserform "github.com/goliatone/go-userform/pkg/userform"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Optional YAML/JSON config file")
		baseURLFlag = flag.String("base-url", "", "Profile directory URL (overrides config)")
		idFlag      = flag.String("id", "", "Profile id to prefill from (overrides config)")
		timeoutFlag = flag.Duration("timeout", 0, "Profile request timeout (overrides config)")
		outputFlag  = flag.String("output", "", "Submit output format: json or log (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *baseURLFlag != "" {
		cfg.Profile.BaseURL = *baseURLFlag
	}
	if *idFlag != "" {
		cfg.Profile.ID = *idFlag
	}
	if *timeoutFlag > 0 {
		cfg.Profile.Timeout = config.Duration(*timeoutFlag)
	}
	if *outputFlag != "" {
		cfg.Output.Format = *outputFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctrl := userform.NewController(
		[]profile.LoaderOption{
			profile.WithBaseURL(cfg.Profile.BaseURL),
			profile.WithRequestTimeout(time.Duration(cfg.Profile.Timeout)),
		},
		pkguserform.WithProfileID(cfg.Profile.ID),
		pkguserform.WithLockoutThreshold(cfg.Form.LockoutThreshold),
		pkguserform.WithSink(submitSink(cfg.Output.Format)),
	)
	defer ctrl.Close()

	status, err := tui.New().Run(ctx, ctrl)
	switch {
	case errors.Is(err, tui.ErrAborted):
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	case err != nil:
		log.Fatalf("run form: %v", err)
	}
	if status == form.StatusLocked {
		os.Exit(2)
	}
}

func submitSink(format string) form.SubmitSink {
	if format == config.OutputLog {
		return sink.Log(log.New(os.Stderr, "", log.LstdFlags))
	}
	return sink.JSON(os.Stdout)
}
