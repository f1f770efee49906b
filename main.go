package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"quotebuilder/collections"
	"quotebuilder/config"
	"quotebuilder/handlers"
	"quotebuilder/services"
)

func main() {
	app := pocketbase.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app, cfg); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		g := se.Router.Group("")
		g.BindFunc(handlers.QuoteStateMiddleware(app))

		// ── Catalog ──────────────────────────────────────────────
		g.GET("/api/catalog", handlers.HandleCatalogList(app))
		g.POST("/api/catalog", handlers.HandleCatalogAdd(app))
		g.GET("/api/catalog/options", handlers.HandleCatalogOptions(app))
		g.GET("/api/catalog/template", handlers.HandleCatalogTemplate(app))
		g.POST("/api/catalog/import", handlers.HandleCatalogImport(app))
		g.DELETE("/api/catalog/{productId}", handlers.HandleCatalogDelete(app))

		// ── Working quote ────────────────────────────────────────
		g.GET("/api/quote", handlers.HandleQuoteGet(app))
		g.PATCH("/api/quote", handlers.HandleQuoteUpdate(app))
		g.DELETE("/api/quote", handlers.HandleQuoteReset(app))
		g.POST("/api/quote/lines", handlers.HandleLineAdd(app))
		// reorder must be registered before {uid} so "reorder" is not taken as a line id
		g.POST("/api/quote/lines/reorder", handlers.HandleLineReorder(app))
		g.PATCH("/api/quote/lines/{uid}", handlers.HandleLineUpdate(app))
		g.DELETE("/api/quote/lines/{uid}", handlers.HandleLineDelete(app))

		// ── Saved quotes ─────────────────────────────────────────
		g.GET("/api/quotes", handlers.HandleSavedQuoteList(app))
		g.POST("/api/quotes", handlers.HandleSavedQuoteSave(app))
		g.POST("/api/quotes/{id}/load", handlers.HandleSavedQuoteLoad(app))
		g.DELETE("/api/quotes/{id}", handlers.HandleSavedQuoteDelete(app))

		// ── Settings and helpers ─────────────────────────────────
		g.GET("/api/settings", handlers.HandleSettingsGet(app))
		g.POST("/api/settings", handlers.HandleSettingsSave(app))
		g.GET("/api/words", handlers.HandleWords(app))

		// ── Pages and exports ────────────────────────────────────
		g.GET("/quote/preview", handlers.HandleQuotePreview(app))
		g.GET("/quote/export/pdf", handlers.HandleQuoteExportPDF(app))
		g.GET("/quote/export/excel", handlers.HandleQuoteExportExcel(app))
		g.GET("/quotes", handlers.HandleQuoteHistory(app))
		g.GET("/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))
		g.GET("/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))

		// Redirect home to the quote preview
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quote/preview")
		})

		return se.Next()
	})

	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "words <amount>",
		Short: "Print an amount in Indian English words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount must be a number: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), services.RupeesInWords(amount))
			return nil
		},
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
