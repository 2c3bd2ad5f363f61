package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/sirupsen/logrus"

	"github.com/ayusman/edgerunner/internal/app"
	"github.com/ayusman/edgerunner/internal/browser"
	"github.com/ayusman/edgerunner/internal/config"
	"github.com/ayusman/edgerunner/internal/logging"
	"github.com/ayusman/edgerunner/internal/server"
	"github.com/ayusman/edgerunner/internal/state"
	"github.com/ayusman/edgerunner/internal/tray"
)

var version = "dev"

const (
	shutdownTimeout = 5 * time.Second
	trayRefresh     = 250 * time.Millisecond
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		log.WithError(err).Warn("Cannot load .env file.")
	}

	var flags config.Flags
	cli := kingpin.New("edgerunner", "Webcam face and hand controls for the Edgerunner browser game.")
	cli.Version(version)
	cli.HelpFlag.Short('h')
	flags.Setup(cli)
	kingpin.MustParse(cli.Parse(os.Args[1:]))

	cfg, err := flags.Load(flags.FileSet())
	if err != nil {
		log.WithError(err).Fatal("Cannot load configuration.")
	}

	logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		log.WithError(err).Fatal("Cannot set up logging.")
	}

	err = run(cfg)
	if err != nil {
		log.WithError(err).Error("Edgerunner stopped with an error.")
	}
	_ = logCloser.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()

	a := app.New(cfg.App(), store)
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Stop()

	srv := server.New(cfg.Server, store)
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	url := cfg.Server.LocalURL()
	log.WithField("addr", cfg.Server.Addr()).
		WithField("url", url).
		WithField("session", srv.Session()).
		Info("Server started.")

	if cfg.Browser.Open {
		browser.OpenAfter(url, cfg.Browser.Delay)
	}

	if cfg.Tray {
		runTray(ctx, stop, a, store, url)
	}

	select {
	case <-ctx.Done():
		log.Info("Shutting down.")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// runTray blocks until the tray quits, either from its menu or because ctx ended.
func runTray(ctx context.Context, stop context.CancelFunc, a *app.App, store *state.Store, url string) {
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		log.WithField("enabled", enabled).Info("Tracking toggled.")
	})
	t.OnOpen(func() {
		browser.OpenAfter(url, 0)
	})
	t.OnQuit(stop)

	followStop := make(chan struct{})
	defer close(followStop)
	go t.Follow(store, trayRefresh, followStop)

	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	t.Run()
}
