package main

import (
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed and maintain the KPI database",
		Commands: []*cli.Command{
			{
				Name:  "stores",
				Usage: "Seed store master data from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "stores-file",
						Usage:   "CSV file with store master data",
						Value:   "./data/seeds/stores.csv",
						EnvVars: []string{"SEED_STORES_FILE"},
					},
				},
				Action: runSeedStores,
			},
			{
				Name:  "checklist-items",
				Usage: "Seed checklist template items from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "items-file",
						Usage:   "CSV file with checklist template items",
						Value:   "./data/seeds/checklist_items.csv",
						EnvVars: []string{"SEED_ITEMS_FILE"},
					},
				},
				Action: runSeedChecklistItems,
			},
			{
				Name:  "weights",
				Usage: "Seed complaint channel weights from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "weights-file",
						Usage:   "CSV file with complaint channel weights",
						Value:   "./data/seeds/complaint_weights.csv",
						EnvVars: []string{"SEED_WEIGHTS_FILE"},
					},
				},
				Action: runSeedWeights,
			},
			{
				Name:   "recompute",
				Usage:  "Re-derive stored KPI scores from raw figures",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runRecompute,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
