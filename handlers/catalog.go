package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// catalogItem is a product plus its lock state against the working quote.
type catalogItem struct {
	services.Product
	Locked   bool   `json:"locked"`
	Requires string `json:"requires,omitempty"`
}

// HandleCatalogList returns the catalog with lock flags. An optional
// ?category= narrows the list.
// Route: GET /api/catalog
func HandleCatalogList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("catalog_list: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		products, err := services.LoadCatalog(app)
		if err != nil {
			log.Printf("catalog_list: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the catalog")
		}

		category := strings.TrimSpace(e.Request.URL.Query().Get("category"))
		items := make([]catalogItem, 0, len(products))
		for _, p := range products {
			if category != "" && !strings.EqualFold(p.Category, category) {
				continue
			}
			item := catalogItem{Product: p}
			if rule, locked := st.Session.LockReason(p.ID); locked {
				item.Locked = true
				item.Requires = rule.RequiredName
			}
			items = append(items, item)
		}

		return e.JSON(http.StatusOK, items)
	}
}

// HandleCatalogAdd validates and stores a new product under the next id.
// Route: POST /api/catalog
func HandleCatalogAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var p services.Product
		if err := decodeJSON(e, &p); err != nil {
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}
		p.Name = strings.TrimSpace(p.Name)

		saved, err := services.AddProduct(app, p)
		if err != nil {
			log.Printf("catalog_add: %v", err)
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}

		log.Printf("catalog_add: added product %d %q", saved.ID, saved.Name)
		SetToast(e, "success", fmt.Sprintf("%s added to the catalog", saved.Name))
		return e.JSON(http.StatusCreated, saved)
	}
}

// HandleCatalogDelete removes a product. Lines already quoted keep their copy.
// Route: DELETE /api/catalog/{productId}
func HandleCatalogDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, ok := parseProductID(e.Request.PathValue("productId"))
		if !ok {
			return ErrorJSON(e, http.StatusBadRequest, "Invalid product ID")
		}

		if err := services.DeleteProduct(app, id); err != nil {
			if errors.Is(err, services.ErrProductNotFound) {
				return ErrorJSON(e, http.StatusNotFound, "Product not found")
			}
			log.Printf("catalog_delete: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("catalog_delete: deleted product %d", id)
		SetToast(e, "success", "Product deleted")
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleCatalogImport validates an uploaded CSV/XLSX catalog and, when every
// row is valid, adds all products in one transaction.
// Route: POST /api/catalog/import
func HandleCatalogImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorJSON(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorJSON(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ParseCatalogFile(file, header.Filename)
		if err != nil {
			log.Printf("catalog_import: %v", err)
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}
		if result.ErrorRows > 0 {
			SetToast(e, "error", fmt.Sprintf("%d of %d rows have errors. Nothing was imported.", result.ErrorRows, result.TotalRows))
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		added, err := services.ImportCatalog(app, result.Products)
		if err != nil {
			log.Printf("catalog_import: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Import failed. Nothing was imported.")
		}

		log.Printf("catalog_import: imported %d products from %s", len(added), result.FileName)
		SetToast(e, "success", fmt.Sprintf("Imported %d products", len(added)))
		return e.JSON(http.StatusCreated, map[string]any{
			"imported": len(added),
			"products": added,
		})
	}
}

// HandleCatalogTemplate downloads the import template.
// Route: GET /api/catalog/template
func HandleCatalogTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		b, err := services.GenerateCatalogTemplate()
		if err != nil {
			log.Printf("catalog_template: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", `attachment; filename="catalog_template.xlsx"`)
		e.Response.Write(b)
		return nil
	}
}

// HandleCatalogOptions returns the choices offered by the catalog and
// settings forms.
// Route: GET /api/catalog/options
func HandleCatalogOptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"categories":   services.CategoryOptions,
			"paymentTypes": services.PaymentTypeOptions,
			"taxRates":     services.TaxRateOptions,
			"sections":     services.SectionOptions,
		})
	}
}
