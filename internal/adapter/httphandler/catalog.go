package httphandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
)

// GET v1/products?category=&featured= (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)
// GET v1/categories (200 OK)
// POST v1/products admin (201 Created, 400 Bad request)
// PUT v1/products/{id} admin (200 OK, 400 Bad request)
// DELETE v1/products/{id} admin (204 No content, 404 Not found)
// POST v1/products/batch admin (204 No content, 400 Bad request)

type CatalogHandler struct {
	catalog port.CatalogProvider
	admin   port.CatalogAdmin
	images  port.ImageStore
}

func RegisterCatalog(
	mux *http.ServeMux,
	auth Authenticator,
	catalog port.CatalogProvider,
	admin port.CatalogAdmin,
	images port.ImageStore,
) {
	h := CatalogHandler{catalog, admin, images}
	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.ListCategories)
	mux.HandleFunc("POST /v1/products", auth.RequireAdmin(h.CreateProduct))
	mux.HandleFunc("PUT /v1/products/{id}", auth.RequireAdmin(h.PutProduct))
	mux.HandleFunc(
		"DELETE /v1/products/{id}", auth.RequireAdmin(h.DeleteProduct),
	)
	mux.HandleFunc(
		"POST /v1/products/batch", auth.RequireAdmin(h.PostProductsBatch),
	)
}

func (h CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListProducts"
	log := slog.With("op", op)

	q := port.ProductQuery{
		Category:     r.URL.Query().Get("category"),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
	}

	ps, err := h.catalog.Products(r.Context(), q)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProduct(p))
}

func (h CatalogHandler) ListCategories(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CatalogHandler.ListCategories"
	log := slog.With("op", op)

	cs, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, cs)
}

func (h CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.CreateProduct"
	log := slog.With("op", op)

	p, ok := decodeProduct(w, r, log)
	if !ok {
		return
	}

	saved, err := h.admin.SaveProduct(r.Context(), p)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProduct(saved))
}

func (h CatalogHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PutProduct"
	log := slog.With("op", op)

	p, ok := decodeProduct(w, r, log)
	if !ok {
		return
	}
	p.ProductID = r.PathValue("id")

	saved, err := h.admin.SaveProduct(r.Context(), p)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProduct(saved))
}

func (h CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.DeleteProduct"
	log := slog.With("op", op)

	p, err := h.catalog.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	if err := h.admin.DeleteProduct(r.Context(), p.ProductID); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	h.dropUploadedImages(r.Context(), log, p)

	w.WriteHeader(http.StatusNoContent)
}

// dropUploadedImages removes stored uploads referenced by the product.
// Seed image paths are static assets and are left alone. The product is
// already gone, so failures here only leave orphaned blobs behind.
func (h CatalogHandler) dropUploadedImages(
	ctx context.Context, log *slog.Logger, p domain.Product,
) {
	for _, img := range p.Images {
		imageID, ok := strings.CutPrefix(img, imageURLPrefix)
		if !ok {
			continue
		}
		if err := h.images.DeleteImage(ctx, imageID); err != nil {
			log.Warn("failed to delete product image",
				"productID", p.ProductID, "imageID", imageID, "err", err)
		}
	}
}

func (h CatalogHandler) PostProductsBatch(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CatalogHandler.PostProductsBatch"
	log := slog.With("op", op)

	var dtos []Product
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	products, err := toDomainProducts(dtos)
	if err != nil {
		http.Error(w, "invalid product data", http.StatusBadRequest)
		log.Warn("failed to parse products", "err", err)
		return
	}

	if err := h.admin.SaveProducts(r.Context(), products); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("products accepted", "nProducts", len(products))
}

func decodeProduct(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (domain.Product, bool) {
	var dto Product
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return domain.Product{}, false
	}

	p, err := toDomainProduct(dto)
	if err != nil {
		http.Error(w, "invalid price", http.StatusBadRequest)
		log.Warn("failed to parse price", "err", err)
		return domain.Product{}, false
	}
	return p, true
}
