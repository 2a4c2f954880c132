package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samuu/verter"
	"github.com/samuu/verter/internal/config"
	"github.com/samuu/verter/internal/logging"
	"github.com/samuu/verter/internal/strutil"
	"github.com/samuu/verter/label"
	"github.com/samuu/verter/locale"
	"github.com/samuu/verter/screen"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute returns the exit code instead of exiting so that deferred cleanup runs first
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	flagSet := flag.NewFlagSet("verter", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	var (
		envPath = flagSet.String("env", "", "path to a .env file")
		lang    = flagSet.String("lang", "", "language of the screen labels, e.g. es or en-US")
		once    = flagSet.String("once", "", "convert the amount for every currency and exit")
	)

	if err := flagSet.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(*envPath)
	if err != nil {
		fmt.Fprintf(errOut, "load config: %v\n", err)
		return exitError
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "invalid config: %v\n", err)
		return exitError
	}

	if *lang != "" {
		cfg.Lang = *lang
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = logging.WithLogger(ctx, logging.NewLogger(errOut, cfg.LogLevel))
	logger := logging.FromContext(ctx)

	if err := realMain(ctx, cfg, *once, in, out); err != nil {
		logger.Error(err)
		return exitError
	}

	return exitOK
}

func realMain(ctx context.Context, cfg *config.Config, once string, in io.Reader, out io.Writer) error {
	logger := logging.FromContext(ctx)

	conv, err := verter.New(ctx,
		verter.WithRetryNum(cfg.RetryNum),
		verter.WithRetryDuration(cfg.RetryDuration),
	)
	if err != nil {
		return fmt.Errorf("new converter: %w", err)
	}

	if once != "" {
		return convertAll(conv, once, out)
	}

	bundle := locale.ForTag(cfg.Lang)
	logger.Debugf("lang %q resolved to %s", cfg.Lang, bundle.Tag)

	var opts []screen.Option
	if cfg.Currency != "" {
		if sym := strutil.NormalizeCode(cfg.Currency); conv.IsExchangeable(sym) {
			opts = append(opts, screen.WithCurrency(label.Symbol(sym)))
		} else {
			logger.Warnf("currency %q is not exchangeable, ignored", cfg.Currency)
		}
	}

	return run(ctx, screen.New(conv, bundle, opts...), in, out)
}

// run redraws the screen after every input line until quit, EOF or cancellation
func run(ctx context.Context, s *screen.Screen, in io.Reader, out io.Writer) error {
	if err := screen.Render(out, s.View()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		v, ok := s.Handle(scanner.Text())
		if !ok {
			return nil
		}

		if err := screen.Render(out, v); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return nil
}

func convertAll(conv *verter.Converter, text string, out io.Writer) error {
	for _, sym := range conv.Exchangeable() {
		if _, err := fmt.Fprintln(out, conv.ConvertText(sym.String(), text)); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	return nil
}
