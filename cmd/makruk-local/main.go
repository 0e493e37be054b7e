package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"makruk/internal/makruk"
	"makruk/internal/server/archive"
	httpserver "makruk/internal/server/http"
	"makruk/internal/server/lobby"
)

func main() {
	addr := flag.String("addr", getenv("MAKRUK_ADDR", ":2888"), "listen address")
	webDir := flag.String("web", getenv("MAKRUK_WEB", ""), "directory with a presentation layer to serve at /")
	dbDir := flag.String("db", getenv("MAKRUK_DB", ""), "badger directory for game records (empty: keep games in memory)")
	whitePromo := flag.Int("white-promo", 6, "rank on which white pawns become met")
	blackPromo := flag.Int("black-promo", 3, "rank on which black pawns become met")
	flag.Parse()

	rules, err := makruk.NewRuleset(*whitePromo, *blackPromo, nil)
	if err != nil {
		log.Fatalf("rules: %v", err)
	}

	var arc *archive.Archive
	if *dbDir != "" {
		arc, err = archive.Open(*dbDir)
		if err != nil {
			log.Fatalf("open archive %s: %v", *dbDir, err)
		}
		defer arc.Close()
		log.Printf("game records stored in %s", *dbDir)
	}

	h := httpserver.NewHandler(lobby.NewManager(rules, arc))
	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpserver.NewMux(h, *webDir),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("server: %v", err)
	}
	log.Printf("bye")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
