package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"serviceplus/catalog"
	"serviceplus/collections"
	"serviceplus/config"
	"serviceplus/handlers"
	"serviceplus/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	app := pocketbase.New()
	app.RootCmd.AddCommand(quotesCommand(app, cfg))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		env, err := newEnv(app, cfg)
		if err != nil {
			return err
		}

		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		se.Router.BindFunc(handlers.SessionMiddleware(env))

		// ── Portfolio ────────────────────────────────────────────
		se.Router.GET("/portfolio", handlers.HandlePortfolio(env))

		// ── Service detail & quoter ──────────────────────────────
		se.Router.GET("/services/{id}", handlers.HandleServiceDetail(env))
		se.Router.GET("/services/{id}/confirm", handlers.HandleServiceConfirm(env))
		se.Router.GET("/services/{id}/quote", handlers.HandleQuoter(env))
		se.Router.POST("/services/{id}/quote/preview", handlers.HandleQuotePreview(env))
		se.Router.POST("/services/{id}/quote/export", handlers.HandleQuoteExport(env))

		// ── Quote history (exports before {id} routes) ───────────
		se.Router.GET("/quotes", handlers.HandleMyQuotes(env))
		se.Router.GET("/quotes/export/excel", handlers.HandleQuoteHistoryExcel(env))
		se.Router.GET("/quotes/export/pdf", handlers.HandleQuoteHistoryPDF(env))
		se.Router.POST("/quotes/{id}/duplicate", handlers.HandleQuoteDuplicate(env))

		// ── Products ─────────────────────────────────────────────
		se.Router.GET("/products/new", handlers.HandleProductNew(env))
		se.Router.POST("/products", handlers.HandleProductSave(env))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/portfolio")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func newEnv(app core.App, cfg *config.Config) (*handlers.Env, error) {
	store, err := openStore(context.Background(), app, cfg)
	if err != nil {
		return nil, err
	}
	env := handlers.NewEnv(catalog.New(catalog.Seed()), store)
	env.RecentLimit = cfg.RecentLimit
	env.Popular = cfg.PopularServices
	return env, nil
}

// openStore creates the collections and loads the quote history from the
// configured backend.
func openStore(ctx context.Context, app core.App, cfg *config.Config) (*services.QuoteStore, error) {
	if err := collections.Setup(app); err != nil {
		return nil, fmt.Errorf("setup collections: %w", err)
	}

	var kv services.KeyValueStore
	switch cfg.StoreBackend {
	case config.BackendRedis:
		rkv := services.NewRedisKV(cfg.RedisAddr, cfg.RedisPrefix)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rkv.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
			if err := rkv.Close(); err != nil {
				log.WithError(err).Warn("redis: close failed")
			}
			return e.Next()
		})
		kv = rkv
	case config.BackendMemory:
		log.Warn("quotes: using in-memory store, history is lost on restart")
		kv = services.NewMemoryKV()
	default:
		kv = services.NewPocketBaseKV(app)
	}

	return loadQuoteStore(ctx, kv), nil
}

// loadQuoteStore never fails startup. Unreadable history starts empty and an
// unreachable backend is retried by the store on the next write.
func loadQuoteStore(ctx context.Context, kv services.KeyValueStore) *services.QuoteStore {
	store, err := services.NewQuoteStore(ctx, kv)
	switch {
	case errors.Is(err, services.ErrCorruptState):
		log.WithError(err).Warn("quotes: stored history is unreadable, continuing with an empty list")
	case err != nil:
		log.WithError(err).Warn("quotes: history not loaded, will retry before the next save")
	}
	return store
}

func quotesCommand(app core.App, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Export or import the quote history",
	}

	var format, out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the quote history to an xlsx or pdf file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context(), app, cfg)
			if err != nil {
				return err
			}
			c := catalog.New(catalog.Seed())
			data := services.BuildQuoteHistoryExport(services.BuildListings(store.All(), c), c, time.Now())

			var content []byte
			switch format {
			case "xlsx":
				content, err = services.GenerateQuoteHistoryExcel(data)
			case "pdf":
				content, err = services.GenerateQuoteHistoryPDF(data)
			default:
				return fmt.Errorf("unknown format %q, use xlsx or pdf", format)
			}
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("Cotizaciones_%s.%s", time.Now().Format("2006-01-02"), format)
			}
			if err := os.WriteFile(out, content, 0o644); err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"file":   out,
				"quotes": len(data.Rows),
				"size":   humanize.Bytes(uint64(len(content))),
			}).Info("quotes export: written")
			return nil
		},
	}
	exportCmd.Flags().StringVar(&format, "format", "xlsx", "xlsx or pdf")
	exportCmd.Flags().StringVar(&out, "out", "", "output file (default Cotizaciones_<date>.<format>)")

	var file string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Seed the quote history from a legacy JSON export",
		RunE: func(_ *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			if err := collections.Setup(app); err != nil {
				return fmt.Errorf("setup collections: %w", err)
			}
			imported, err := collections.ImportLegacyValue(app, services.QuotesKey, string(raw))
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"file":     file,
				"size":     humanize.Bytes(uint64(len(raw))),
				"imported": imported,
			}).Info("quotes import: done")
			return nil
		},
	}
	importCmd.Flags().StringVar(&file, "file", "", "JSON array of quotes")
	_ = importCmd.MarkFlagRequired("file")

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}
