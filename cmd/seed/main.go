// File: cmd/seed/main.go
//
// Seeds a batch of claimable stickers and prints them as CSV
// (code,sig,eventId) for the print shop. Signatures are only emitted
// when signing.secret is configured. With -dump it re-exports the
// event's existing stickers instead of creating new ones.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sticker-hunt-backend/internal/config"
	"sticker-hunt-backend/internal/domain/model"
	pg "sticker-hunt-backend/internal/infra/db/postgres"
	"sticker-hunt-backend/internal/infra/security"
	"sticker-hunt-backend/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	count := flag.Int("count", 50, "number of stickers to create")
	out := flag.String("out", "", "write CSV here instead of stdout")
	dump := flag.Bool("dump", false, "re-export the event's existing stickers instead of creating new ones")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if !*dump && *count <= 0 {
		log.Fatalf("count must be positive, got %d", *count)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pg.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	stickerUC := usecase.NewStickerUseCase(pg.NewStickerRepo(pool))
	signer := security.NewStickerSigner(cfg.Signing)

	var stickers []*model.Sticker
	if *dump {
		stickers, err = dumpStickers(ctx, stickerUC, cfg.Event.ID)
		if err != nil {
			log.Fatalf("dump stickers: %v", err)
		}
	} else {
		stickers, err = stickerUC.CreateBatch(ctx, *count, cfg.Event.StickerPrefix, cfg.Event.ID)
		if err != nil {
			log.Fatalf("create batch: %v", err)
		}
	}

	dst := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("open %s: %v", *out, err)
		}
		defer f.Close()
		dst = f
	}

	w := csv.NewWriter(dst)
	_ = w.Write([]string{"code", "sig", "eventId"})
	for _, s := range stickers {
		sig := ""
		if signer.Enabled() {
			sig = signer.Sign(s.Code)
		}
		if err := w.Write([]string{s.Code, sig, s.EventID}); err != nil {
			log.Fatalf("write csv: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush csv: %v", err)
	}

	total, err := stickerUC.Count(ctx, cfg.Event.ID)
	if err != nil {
		log.Fatalf("count stickers: %v", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d stickers; event %s has %d total\n", len(stickers), cfg.Event.ID, total)
}

// dumpStickers pages through every sticker of the event, claimed or not,
// so a lost CSV can be re-printed.
func dumpStickers(ctx context.Context, uc *usecase.StickerUseCase, eventID string) ([]*model.Sticker, error) {
	const pageSize = 500
	var out []*model.Sticker
	for offset := 0; ; offset += pageSize {
		page, err := uc.List(ctx, eventID, offset, pageSize)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < pageSize {
			return out, nil
		}
	}
}
