package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"frota/billing"
	"frota/report"
)

func main() {
	// Auto-load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "migrate":
		// Runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
		initDB()
		fmt.Println("migration and seeding completed")
	case "seed":
		initDB()
		fmt.Println("seeding completed")
	case "billing":
		runBillingCmd(os.Args[2:])
	case "summary":
		runSummaryCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: frota <migrate|seed|billing|summary> [-date YYYY-MM-DD]")
}

// dateFlag parses an optional -date argument, defaulting to today at UTC
// midnight so period arithmetic stays date-only.
func dateFlag(name string, args []string) time.Time {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	dateStr := fs.String("date", "", "reference date (YYYY-MM-DD), defaults to today")
	_ = fs.Parse(args)
	if *dateStr == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	t, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		log.Fatalf("invalid date %q, expected YYYY-MM-DD: %v", *dateStr, err)
	}
	return t
}

// runBillingCmd triggers one billing cycle. Payments created before a
// per-rental failure stay committed; failures are reported without undoing
// earlier progress.
func runBillingCmd(args []string) {
	today := dateFlag("billing", args)
	initDB()

	created, err := billing.RunCycle(db, today)
	fmt.Printf("billing cycle for %s: %d payment(s) created\n", today.Format("2006-01-02"), len(created))
	for _, id := range created {
		fmt.Printf("  payment %d\n", id)
	}
	if err != nil {
		log.Fatalf("billing cycle finished with failures: %v", err)
	}
}

// runSummaryCmd prints the dashboard snapshot as JSON.
func runSummaryCmd(args []string) {
	today := dateFlag("summary", args)
	initDB()

	summary, err := report.GetSummary(db, today)
	if err != nil {
		log.Fatalf("summary failed: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatalf("encode summary: %v", err)
	}
}
