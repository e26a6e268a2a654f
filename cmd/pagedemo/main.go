package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tuannm99/pagestore/internal"
	"github.com/tuannm99/pagestore/internal/buffer"
	"github.com/tuannm99/pagestore/internal/record"
	"github.com/tuannm99/pagestore/internal/storage"
)

func main() {
	cfgPath := flag.String("config", "", "path to yaml config (optional)")
	flag.Parse()

	if *cfgPath != "" {
		cfg, err := internal.LoadConfig(*cfgPath)
		if err != nil {
			slog.Error("load config", "err", err)
			os.Exit(1)
		}
		slog.SetLogLoggerLevel(cfg.LogLevel())
	}

	mgr := buffer.NewManager(storage.NewPageTable())
	page1 := mgr.PageTable().Load(0)

	mustInsert(page1, record.New(10))
	mustInsert(page1, record.New(20))

	fmt.Println("Before compaction:")
	fmt.Print(page1.DumpString())

	page1.Delete(0)
	page1.Compact()

	fmt.Println("After compaction:")
	fmt.Print(page1.DumpString())

	fmt.Println("Moving records across pages:")
	if err := mgr.MoveAll(0, 1); err != nil {
		slog.Error("move records", "err", err)
		os.Exit(1)
	}
	fmt.Print(mgr.PageTable().Load(1).DumpString())
}

func mustInsert(p *storage.Page, r record.Record) {
	if _, err := p.Insert(r); err != nil {
		slog.Error("insert record", "record", r.String(), "err", err)
		os.Exit(1)
	}
}
