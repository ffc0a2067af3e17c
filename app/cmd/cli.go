package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/configs"
	"github.com/Rakhulsr/go-seller-ms/app/db/seeders"
	"github.com/Rakhulsr/go-seller-ms/app/listeners"
	"github.com/Rakhulsr/go-seller-ms/app/middlewares"
	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/routes"
	"github.com/Rakhulsr/go-seller-ms/app/utils/calc"
	"github.com/Rakhulsr/go-seller-ms/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

var seedFlags = []cli.Flag{
	&cli.IntFlag{Name: "sellers", Value: 3, Usage: "number of seller accounts"},
	&cli.IntFlag{Name: "categories", Value: 4, Usage: "number of categories"},
	&cli.IntFlag{Name: "products", Value: 5, Usage: "products per seller"},
	&cli.IntFlag{Name: "sales", Value: 1, Usage: "number of sales"},
}

func seedOptions(c *cli.Command) seeders.Options {
	return seeders.Options{
		Sellers:           int(c.Int("sellers")),
		Categories:        int(c.Int("categories")),
		ProductsPerSeller: int(c.Int("products")),
		Sales:             int(c.Int("sales")),
	}
}

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "seller",
		Usage: "Seller pricing and catalogue service",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{Name: "seed", Usage: "seed demo data before serving"},
				}, seedFlags...),
				Action: func(ctx context.Context, c *cli.Command) error {
					app, err := bootstrap(ctx)
					if err != nil {
						return err
					}
					defer app.Close()
					if c.Bool("seed") {
						if _, err := seeders.NewSeeder(app.store, app.products, app.log).Seed(ctx, seedOptions(c)); err != nil {
							return err
						}
					}
					return app.serve(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := configs.LoadEnv()
					if err != nil {
						return err
					}
					log := configs.NewLogger(cfg)
					if err := configs.Migrate(ctx, cfg, log); err != nil {
						return err
					}
					log.WithField("driver", cfg.StoreDriver).Info("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the store with demo sellers, products and sales",
				Flags: seedFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					app, err := bootstrap(ctx)
					if err != nil {
						return err
					}
					defer app.Close()
					_, err = seeders.NewSeeder(app.store, app.products, app.log).Seed(ctx, seedOptions(c))
					return err
				},
			},
			{
				Name:  "reconcile",
				Usage: "Re-run cascade cleanup for every deleted product and bundle",
				Action: func(ctx context.Context, c *cli.Command) error {
					app, err := bootstrap(ctx)
					if err != nil {
						return err
					}
					defer app.Close()
					report, err := app.invalidator.Reconcile(ctx)
					if err != nil {
						return err
					}
					if report.Failed > 0 {
						return fmt.Errorf("%d cascades failed", report.Failed)
					}
					return nil
				},
			},
			{
				Name:  "quote",
				Usage: "Print the price layers for an MRP and discount percents",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mrp", Required: true},
					&cli.StringFlag{Name: "seller", Usage: "seller discount percent"},
					&cli.StringFlag{Name: "admin", Usage: "admin discount percent"},
					&cli.StringFlag{Name: "basis", Value: string(calc.BasisSellerDiscounted), Usage: "MRP or sellerDiscounted"},
					&cli.StringFlag{Name: "currency", Value: "₹"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					in, err := quoteInput(c.String("mrp"), c.String("seller"), c.String("admin"), c.String("basis"))
					if err != nil {
						return err
					}
					return quote(os.Stdout, in, format.NewPriceFormatter(c.String("currency")))
				},
			},
			{
				Name:  "generate-secret",
				Usage: "Generate a new JWT secret for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintSecret(os.Stdout)
				},
			},
			{
				Name:  "issue-token",
				Usage: "Sign a bearer token with JWT_SECRET for local testing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Required: true},
					&cli.StringFlag{Name: "role", Value: models.RoleSeller},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := configs.LoadEnv()
					if err != nil {
						return err
					}
					token, err := middlewares.NewJWTVerifier(cfg.JWTSecret).Issue(c.String("user"), c.String("role"), c.Duration("ttl"))
					if err != nil {
						return err
					}
					fmt.Fprintln(os.Stdout, token)
					return nil
				},
			},
			{
				Name:  "listen-discounts",
				Usage: "Consume admin discount events without serving HTTP",
				Action: func(ctx context.Context, c *cli.Command) error {
					app, err := bootstrap(ctx)
					if err != nil {
						return err
					}
					defer app.Close()
					if len(app.cfg.KafkaBrokers) == 0 {
						return errors.New("KAFKA_BROKERS is not set")
					}
					ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer stop()
					app.discountListener().Start(ctx)
					return nil
				},
			},
		},
	}
}

func RunCli() {
	if err := NewCommand().Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// Serve runs the API with the default configuration, as when no command is given.
func Serve() {
	ctx := context.Background()
	app, err := bootstrap(ctx)
	if err != nil {
		logrus.Fatal(err)
	}
	defer app.Close()
	if err := app.serve(ctx); err != nil {
		app.log.Fatal(err)
	}
}

func (a *application) discountListener() *listeners.DiscountListener {
	reader := listeners.NewKafkaReader(a.cfg.KafkaBrokers, a.cfg.KafkaDiscountTopic, a.cfg.KafkaGroupID)
	return listeners.NewDiscountListener(reader, a.discounts, a.log)
}

func (a *application) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(a.cfg.KafkaBrokers) > 0 {
		go a.discountListener().Start(ctx)
	} else {
		a.log.Info("KAFKA_BROKERS not set; discount listener disabled")
	}

	verifier := middlewares.NewJWTVerifier(a.cfg.JWTSecret)
	server := &http.Server{
		Addr:              ":" + a.cfg.AppPort,
		Handler:           routes.NewRouter(a.routes(), verifier, a.log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func parsePercent(raw string) (decimal.NullDecimal, error) {
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid percent %q", raw)
	}
	return decimal.NewNullDecimal(d), nil
}

func quoteInput(mrp, seller, admin, basis string) (calc.PriceInput, error) {
	var in calc.PriceInput
	m, err := decimal.NewFromString(mrp)
	if err != nil {
		return in, fmt.Errorf("invalid MRP %q", mrp)
	}
	in.MRP = m
	if in.SellerPercent, err = parsePercent(seller); err != nil {
		return in, err
	}
	if in.AdminPercent, err = parsePercent(admin); err != nil {
		return in, err
	}
	in.Basis = calc.Basis(basis)
	if in.AdminPercent.Valid && !in.Basis.Valid() {
		return in, fmt.Errorf("invalid basis %q", basis)
	}
	return in, nil
}

func quote(out io.Writer, in calc.PriceInput, f *format.PriceFormatter) error {
	res, err := calc.Compute(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "MRP:               %s\n", f.Money(in.MRP))
	fmt.Fprintf(out, "Seller discounted: %s\n", f.Nullable(res.SellerDiscounted))
	fmt.Fprintf(out, "Admin discounted:  %s\n", f.Nullable(res.AdminDiscountedPrice))
	return nil
}
