package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/0xquinto/parlay-picker/internal/entity"
	ingestionconfig "github.com/0xquinto/parlay-picker/internal/ingestion/config"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/pkg/postgres"
	"github.com/0xquinto/parlay-picker/pkg/teams"

	"github.com/spf13/cobra"
)

var (
	configPath string
	csvPath    string
)

// importCmd loads expert sources from a CSV with the header
// blog_name,base_url,associated_team,blog_type,feed_url. Rows whose
// associated_team does not resolve to a known team are rejected.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import expert sources from a CSV file",
	Run:   runImport,
}

func runImport(cmd *cobra.Command, args []string) {
	cfg, err := ingestionconfig.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.NewDB(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		TimeZone: cfg.Database.TimeZone,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer f.Close()

	sourceRepo := repository.NewSourceRepository(db.DB)

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		log.Fatalf("Failed to read CSV header: %v", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"blog_name", "base_url"} {
		if _, ok := col[required]; !ok {
			log.Fatalf("CSV is missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	imported, skipped := 0, 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read CSV line %d: %v", line, err)
		}

		source := entity.Source{
			BlogName:   field(record, "blog_name"),
			BaseURL:    field(record, "base_url"),
			BlogType:   field(record, "blog_type"),
			ActiveFlag: true,
		}
		if source.BlogName == "" || source.BaseURL == "" {
			log.Printf("Line %d: missing blog_name or base_url, skipping", line)
			skipped++
			continue
		}

		if raw := field(record, "associated_team"); raw != "" {
			code, ok := teams.Resolve(raw)
			if !ok {
				log.Printf("Line %d: unknown team %q, skipping", line, raw)
				skipped++
				continue
			}
			team := string(code)
			source.AssociatedTeam = &team
		}
		if feed := field(record, "feed_url"); feed != "" {
			source.FeedURL = &feed
		}

		if err := sourceRepo.Create(context.Background(), &source); err != nil {
			log.Printf("Line %d: failed to store %q: %v", line, source.BlogName, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d sources, skipped %d.\n", imported, skipped)
}

func main() {
	rootCmd := &cobra.Command{Use: "import-sources"}

	importCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
	importCmd.Flags().StringVarP(&csvPath, "file", "f", "sources.csv", "Path to the CSV file")

	rootCmd.AddCommand(importCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing import-sources CLI: %s\n", err)
		os.Exit(1)
	}
}
