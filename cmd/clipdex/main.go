// clipdex is a CLI for searching inside cached video transcripts.
//
// It wires the driven adapters (config, transcript store, full-text index)
// into the core services and hands them to the command tree.
package main

import (
	"fmt"
	"os"
	"time"

	configfile "github.com/clipdex/clipdex-cli/internal/adapters/driven/config/file"
	"github.com/clipdex/clipdex-cli/internal/adapters/driven/index/sqlite"
	"github.com/clipdex/clipdex-cli/internal/adapters/driven/store/file"
	"github.com/clipdex/clipdex-cli/internal/adapters/driving/cli"
	"github.com/clipdex/clipdex-cli/internal/core/services"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config: %w", err)
	}

	recordStore, err := file.NewRecordStore(configStore.GetString(configfile.KeyStoreDir))
	if err != nil {
		return fmt.Errorf("initialising transcript store: %w", err)
	}

	index, err := sqlite.NewIndex(configStore.GetString(configfile.KeyDataDir))
	if err != nil {
		return fmt.Errorf("initialising index: %w", err)
	}
	defer index.Close()

	searcher := services.NewSearcher(index, services.SearcherOptions{
		CacheTTL:         time.Duration(configStore.GetInt(configfile.KeyCacheTTLSeconds)) * time.Second,
		WindowSeconds:    configStore.GetInt(configfile.KeyWindowSeconds),
		ContextSentences: configStore.GetInt(configfile.KeyContextSentences),
	})
	builder := services.NewBuilder(recordStore, index)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:          searcher,
		Index:           builder,
		Config:          configStore,
		TranscriptStore: recordStore,
	})

	return cli.Execute()
}
