package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"homedesignai/internal/config"
	"homedesignai/internal/export"
	"homedesignai/internal/storage"
)

func main() {
	var (
		outputPath = flag.String("out", "layouts.jsonl", "Where to write the export")
		format     = flag.String("format", "jsonl", "Export format: jsonl or text")
		roomFilter = flag.String("room", "", "Optional room type to filter on")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required to export stored layouts")
	}

	ctx := context.Background()
	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect store: %v", err)
	}
	defer store.Close()

	layouts, err := store.ListLayouts(ctx)
	if err != nil {
		log.Fatalf("fetch layouts: %v", err)
	}
	if len(layouts) == 0 {
		log.Fatal("no layouts found to export")
	}

	if trimmed := strings.TrimSpace(*roomFilter); trimmed != "" {
		filtered := layouts[:0]
		for _, l := range layouts {
			if strings.EqualFold(l.Request.RoomType, trimmed) {
				filtered = append(filtered, l)
			}
		}
		layouts = filtered
		if len(layouts) == 0 {
			log.Fatalf("no layouts matched room type %q", trimmed)
		}
	}

	records := export.BuildRecords(layouts)

	switch strings.ToLower(*format) {
	case "jsonl":
		if err := export.WriteJSONL(*outputPath, records); err != nil {
			log.Fatalf("write export: %v", err)
		}
	case "text":
		file, err := os.Create(*outputPath)
		if err != nil {
			log.Fatalf("create export file: %v", err)
		}
		defer file.Close()
		if err := export.EncodeText(file, records); err != nil {
			log.Fatalf("write export: %v", err)
		}
	default:
		log.Fatalf("unsupported format %q (use jsonl or text)", *format)
	}

	log.Printf("exported %d layouts to %s", len(records), *outputPath)
}
