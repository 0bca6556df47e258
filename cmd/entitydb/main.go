/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command entitydb prints the rows of a table through an entity manager,
// as a text table or as JSON.
//
//	entitydb -table users
//	entitydb -config entitydb.yaml -table users -id 7 -json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/suparena/entitydb"
	"github.com/suparena/entitydb/condition"
	"github.com/suparena/entitydb/config"
	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/driver/ddb"
	"github.com/suparena/entitydb/driver/sqldb"
	"github.com/suparena/entitydb/errors"
)

var (
	configFlag  = flag.String("config", "", "Path to the YAML config file")
	tableFlag   = flag.String("table", "", "Entity (table) name to print")
	idFlag      = flag.Int64("id", 0, "Print only the row with this id")
	jsonFlag    = flag.Bool("json", false, "Print JSON instead of a text table")
	debugFlag   = flag.Bool("debug", false, "Enable debug logging")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := entitydb.GetVersionInfo()
		fmt.Printf("EntityDB version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "entitydb: %v\n", err)
		if errors.IsNotFound(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *tableFlag == "" {
		return fmt.Errorf("-table is required")
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, closeDriver, err := openDriver(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDriver()

	var repoOpts []entitydb.RepositoryOption
	if p, ok := placeholderFor(cfg, d); ok {
		repoOpts = append(repoOpts, entitydb.WithPlaceholders(p))
	}

	em := entitydb.NewEntityManager(d,
		entitydb.WithNamespace(cfg.RepositoriesNamespace),
		entitydb.WithRepositoryOptions(repoOpts...),
		entitydb.WithManagerLogger(logger),
	)
	em.SetEntitiesNamespace(cfg.EntitiesNamespace)

	return printTable(ctx, os.Stdout, em.GetRepository(*tableFlag), *idFlag, *jsonFlag)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, _, err := config.LoadFromPath(path)
		return cfg, err
	}
	cfg, _, err := config.Load()
	return cfg, err
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stderr"}
		logger, err = z.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}

func openDriver(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (driver.Driver, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqldb.OpenSQLite(ctx, cfg.DSN, sqldb.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case config.DriverMySQL:
		db, err := sqldb.OpenMySQL(ctx, cfg.DSN, sqldb.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case config.DriverDynamoDB:
		opts := []ddb.Option{ddb.WithLogger(logger), ddb.WithSequenceTable(cfg.DynamoDB.SequenceTable)}
		if cfg.DynamoDB.MaxRetries > 0 {
			opts = append(opts, ddb.WithMaxRetries(cfg.DynamoDB.MaxRetries))
		}
		d, err := ddb.Open(ctx, ddb.ClientConfig{
			Region:    cfg.DynamoDB.Region,
			AccessKey: cfg.DynamoDB.AccessKey,
			SecretKey: cfg.DynamoDB.SecretKey,
			Endpoint:  cfg.DynamoDB.Endpoint,
		}, opts...)
		if err != nil {
			return nil, nil, err
		}
		return d, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown driver %q", cfg.Driver)
}

// placeholderFor returns the parameter style find queries should use when
// the config asks for bound values. Drivers that always bind them report
// their style to the repository themselves.
func placeholderFor(cfg *config.Config, d driver.Driver) (condition.Placeholder, bool) {
	if !cfg.Parameterized {
		return 0, false
	}
	if db, ok := d.(*sqldb.DB); ok {
		return db.Placeholder(), true
	}
	return condition.PlaceholderQuestion, true
}

func printTable(ctx context.Context, w io.Writer, repo entitydb.EntityRepository, id int64, asJSON bool) error {
	var out interface {
		MarshalJSON() ([]byte, error)
		String() string
	}

	if id != 0 {
		m, err := repo.FindOneByID(ctx, id)
		if err != nil {
			return err
		}
		if m.Base().IsEmpty() {
			return errors.NewNotFoundError(repo.EntityName(), strconv.FormatInt(id, 10))
		}
		out = m.Base()
	} else {
		all, err := repo.GetAll(ctx)
		if err != nil {
			return err
		}
		out = tableView{all}
	}

	if !asJSON {
		_, err := fmt.Fprint(w, out.String())
		return err
	}
	data, err := out.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

type tableView struct {
	*entitydb.Collection
}

func (v tableView) String() string {
	return v.ToTable(nil)
}
