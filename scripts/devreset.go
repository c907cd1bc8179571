package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"

	"github.com/franciscosanchezn/little-lemon-app/internal/kvstore"
	"github.com/franciscosanchezn/little-lemon-app/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Development helper: wipes the local menu tables and the seeded flag, and
// optionally reseeds the canonical sample items. Run it with the server
// stopped, it opens the same local store files.
func main() {
	dbPath := flag.String("db", "littlelemon.sqlite", "Path to the sqlite menu store")
	kvPath := flag.String("kv", "littlelemon.kv", "Path to the key-value store")
	reseed := flag.Bool("reseed", true, "Reseed the sample menu after resetting")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		stdlog.Fatal("Failed to open menu store:", err)
	}

	kv, err := kvstore.Open(*kvPath)
	if err != nil {
		stdlog.Fatal("Failed to open key-value store:", err)
	}
	defer kv.Close()

	menu := services.NewMenuService(db, kv)
	ctx := context.Background()

	if err := menu.InitSchema(ctx); err != nil {
		stdlog.Fatal("Failed to initialize schema:", err)
	}
	if err := menu.ResetAll(ctx); err != nil {
		stdlog.Fatal("Failed to reset menu data:", err)
	}
	fmt.Println("✓ Menu data cleared")

	if *reseed {
		if err := menu.Seed(ctx); err != nil {
			stdlog.Fatal("Failed to reseed menu:", err)
		}
		fmt.Printf("✓ Seeded %d sample items\n", len(services.SampleMenuItems))
	}
}
