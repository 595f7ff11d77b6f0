package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/capcom6/filetracker/internal/changelog"
	"github.com/capcom6/filetracker/internal/client"
	"github.com/capcom6/filetracker/internal/config"
	"github.com/capcom6/filetracker/internal/hasher"
	"github.com/capcom6/filetracker/internal/history"
	"github.com/capcom6/filetracker/internal/publisher"
	"github.com/capcom6/filetracker/internal/tracker"
	"github.com/capcom6/filetracker/internal/watcher"
	"github.com/hashicorp/logutils"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, config.ErrNothingToDo) {
		return
	}
	if err != nil {
		log.Fatalln(err)
	}
	setUpLogging(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	h, err := hasher.New(cfg.Algorithm)
	if err != nil {
		log.Fatalln("[ERROR]", err)
	}

	sinks := make([]tracker.Sink, 0, 2)

	if cfg.History != "" {
		store, openErr := history.Open(cfg.History)
		if openErr != nil {
			log.Fatalln("[ERROR]", openErr)
		}
		defer store.Close()

		sinks = append(sinks, store)
	}

	if cfg.Publish != "" {
		remoteClient, clientErr := client.New(cfg.Publish)
		if clientErr != nil {
			log.Fatalln("[ERROR]", clientErr)
		}

		sinks = append(sinks, publisher.New(remoteClient))
	}

	tr := tracker.New(h, changelog.New(cfg.LogDir), watcher.New(), sinks...)

	if trackErr := tr.Track(ctx, cfg.Paths...); trackErr != nil {
		log.Println("[WARN]", trackErr)
	}
	if len(tr.Status()) == 0 {
		cancel()
		tr.Wait()
		log.Fatalln("[ERROR] no files to track")
	}

	log.Printf("[INFO] Watching %d file(s) using %s...", len(tr.Status()), h.Algorithm())
	<-ctx.Done()
	tr.Wait()

	for _, status := range tr.Status() {
		log.Printf(
			"[INFO] %s: digest %s, %d change(s), last checked %s",
			status.Path, status.Digest, status.Changes, status.CheckedAt.Format("2006-01-02 15:04:05"),
		)
	}

	log.Println("[INFO] Bye!")
}

func setUpLogging(cfg config.Config) {
	logLevel := "INFO"
	if cfg.Debug {
		logLevel = "DEBUG"
	}

	filter := logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERROR"},
		MinLevel: logutils.LogLevel(logLevel),
		Writer:   os.Stdout,
	}

	log.SetOutput(&filter)
}
