package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mhartvig/colstack/pkg/cache"
	"github.com/mhartvig/colstack/pkg/pipeline"
	"github.com/mhartvig/colstack/pkg/server"
	"github.com/mhartvig/colstack/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // Redis address for the shared cache (empty = file cache)
	mongoURI  string // MongoDB URI for layout persistence (empty = in-memory)
	mongoDB   string // MongoDB database name
	noCache   bool   // disable the result cache
}

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", mongoDB: "colstack"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the colstack HTTP service",
		Long: `Serve runs the solve pipeline as an HTTP service. Solved layouts are
persisted and retrievable by ID. With --redis the result cache is shared
across replicas; with --mongo layouts survive restarts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the result cache (default: file cache)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for layout persistence (default: in-memory)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	resultCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	runner := pipeline.NewRunner(resultCache, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Runner: runner,
		Store:  st,
		Logger: c.Logger,
	})
	return srv.Run(ctx)
}

func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		c.Logger.Info("using redis cache", "addr", opts.redisAddr)
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: opts.redisAddr})
	default:
		return newCache(false)
	}
}

func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	c.Logger.Info("using mongo store", "database", opts.mongoDB)
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:      opts.mongoURI,
		Database: opts.mongoDB,
	})
}
