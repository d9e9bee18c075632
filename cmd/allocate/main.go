package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"vehicle-allocation-service/internal/adapters/catalogfile"
	"vehicle-allocation-service/internal/adapters/repositories"
	"vehicle-allocation-service/internal/api/dto"
	"vehicle-allocation-service/internal/config"
	"vehicle-allocation-service/internal/domain"
	"vehicle-allocation-service/internal/platform/db"
	"vehicle-allocation-service/internal/platform/logger"
	"vehicle-allocation-service/internal/platform/metrics"
	"vehicle-allocation-service/internal/ports"
	"vehicle-allocation-service/internal/services"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:  "allocate",
		Usage: "Recommend vehicle combinations for a passenger group and price stored allocations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "read vehicle types from a YAML or JSON file instead of the database (default from CATALOG_PATH)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format (json or yaml)",
				Value: "json",
			},
		},
		Commands: []*cli.Command{
			recommendCmd,
			priceCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var recommendCmd = &cli.Command{
	Name:    "recommend",
	Usage:   "Rank non-dominated vehicle combinations for a group",
	Aliases: []string{"r"},
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "passengers",
			Aliases:  []string{"p"},
			Required: true,
			Usage:    "number of passengers to seat",
		},
		&cli.Float64Flag{
			Name:    "days",
			Aliases: []string{"d"},
			Value:   1,
			Usage:   "trip duration in days; partial days are billed in full",
		},
		&cli.IntFlag{
			Name:  "max-solutions",
			Usage: "shortlist size (default from OPTIMIZER_MAX_SOLUTIONS)",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "write Prometheus text metrics for the run to this file",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		repo, closeRepo, err := openRepository(cfg, c.String("catalog"))
		if err != nil {
			return err
		}
		defer closeRepo()

		maxSolutions := cfg.MaxSolutions
		if c.IsSet("max-solutions") {
			maxSolutions = c.Int("max-solutions")
		}

		ctx, cancel := context.WithTimeout(c.Context, cfg.Timeout)
		defer cancel()

		m := metrics.NewOptimizer()
		res, runErr := services.RecommendVehicles(ctx, services.RecommendVehiclesRequest{
			Passengers:   c.Int("passengers"),
			Days:         c.Float64("days"),
			MaxSolutions: maxSolutions,
			MaxExplored:  cfg.MaxExplored,
		}, repo, m)

		if path := c.String("metrics-file"); path != "" {
			if err := m.WriteTextfile(path); err != nil {
				log.Warn("write metrics", zap.String("path", path), zap.Error(err))
			}
		}
		if runErr != nil {
			return runErr
		}

		return write(os.Stdout, c.String("format"), dto.NewRecommendationResponse(c.Int("passengers"), *res))
	},
}

var priceCmd = &cli.Command{
	Name:      "price",
	Usage:     "Re-price a stored allocation",
	ArgsUsage: "[vehicle_type_id=count ...]",
	Flags: []cli.Flag{
		&cli.Float64Flag{
			Name:    "days",
			Aliases: []string{"d"},
			Value:   1,
			Usage:   "trip duration in days; ignored when --file sets days",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "read {days, allocation} from a YAML or JSON file",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		req := dto.PriceRequest{Days: c.Float64("days")}
		if path := c.String("file"); path != "" {
			if req, err = readPriceRequest(path); err != nil {
				return err
			}
			if req.Days == 0 {
				req.Days = c.Float64("days")
			}
		}
		items, err := parseAllocationArgs(c.Args().Slice())
		if err != nil {
			return err
		}
		req.Allocation = append(req.Allocation, items...)
		if len(req.Allocation) == 0 {
			return errors.New("price: no allocation given")
		}

		repo, closeRepo, err := openRepository(cfg, c.String("catalog"))
		if err != nil {
			return err
		}
		defer closeRepo()

		b, err := services.PriceStoredAllocation(c.Context, req.Allocation, req.Days, repo)
		if err != nil {
			return err
		}

		return write(os.Stdout, c.String("format"), dto.NewPriceResponse(b))
	},
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}

	log, err := logger.Init("allocate", cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, log, nil
}

// The --catalog flag wins over CATALOG_PATH. Empty means read from the database.
func catalogPath(flagValue string, cfg config.Config) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return cfg.CatalogPath
}

// A catalog file wins over the database so the tool works without one.
func openRepository(cfg config.Config, catalogFlag string) (ports.VehicleTypeRepository, func(), error) {
	if path := catalogPath(catalogFlag, cfg); path != "" {
		return catalogfile.NewFileVehicleTypeRepository(path), func() {}, nil
	}

	if cfg.DatabaseURL == "" {
		return nil, nil, errors.New("either --catalog or DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	return repositories.NewSQLVehicleTypeRepository(conn, cfg.DBDriver), func() { closeDB(conn) }, nil
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		zap.L().Warn("close database", zap.Error(err))
	}
}

func readPriceRequest(path string) (dto.PriceRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dto.PriceRequest{}, fmt.Errorf("read price request %q: %w", path, err)
	}

	var req dto.PriceRequest
	// YAML is a superset of JSON, so one decoder covers both.
	if err := yaml.Unmarshal(data, &req); err != nil {
		return dto.PriceRequest{}, fmt.Errorf("parse price request %q: %w", path, err)
	}
	return req, nil
}

// Parse "id=count" pairs.
func parseAllocationArgs(args []string) ([]domain.AllocationItem, error) {
	items := make([]domain.AllocationItem, 0, len(args))
	for _, arg := range args {
		idStr, countStr, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("allocation %q: want vehicle_type_id=count", arg)
		}

		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, fmt.Errorf("allocation %q: bad vehicle type id: %w", arg, err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return nil, fmt.Errorf("allocation %q: bad count: %w", arg, err)
		}

		items = append(items, domain.AllocationItem{VehicleTypeID: id, Count: count})
	}
	return items, nil
}

func write(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
