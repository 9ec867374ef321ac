package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
)

type StoreRequest struct {
	Name string `json:"name" validate:"required"`
}

type BillboardRequest struct {
	Label    string `json:"label" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	BillboardID string `json:"billboardId" validate:"required,uuid"`
}

type AttributeRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type ImageRequest struct {
	URL string `json:"url" validate:"required"`
}

type ProductRequest struct {
	Name       string         `json:"name" validate:"required"`
	Price      money.Amount   `json:"price" validate:"gt=0"`
	CategoryID string         `json:"categoryId" validate:"required,uuid"`
	SizeID     string         `json:"sizeId" validate:"required,uuid"`
	ColorID    string         `json:"colorId" validate:"required,uuid"`
	Images     []ImageRequest `json:"images" validate:"required,min=1,dive"`
	IsFeatured bool           `json:"isFeatured"`
	IsArchived bool           `json:"isArchived"`
}

func (req ProductRequest) toProduct(storeID uuid.UUID) *catalog.Product {
	images := make([]catalog.Image, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, catalog.Image{URL: img.URL})
	}
	return &catalog.Product{
		StoreID:    storeID,
		CategoryID: uuid.FromStringOrNil(req.CategoryID),
		SizeID:     uuid.FromStringOrNil(req.SizeID),
		ColorID:    uuid.FromStringOrNil(req.ColorID),
		Name:       req.Name,
		Price:      req.Price,
		IsFeatured: req.IsFeatured,
		IsArchived: req.IsArchived,
		Images:     images,
	}
}

type CatalogHandler struct {
	service  catalog.Service
	validate *validator.Validate
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterStoreRoutes mounts the /stores endpoints; all of them need an authenticated user.
func (h *CatalogHandler) RegisterStoreRoutes(router chi.Router) {
	router.Post("/stores", h.handleCreateStore)
	router.Get("/stores", h.handleListStores)
	router.Patch("/stores/{storeId}", h.handleUpdateStore)
	router.Delete("/stores/{storeId}", h.handleDeleteStore)
}

// RegisterRoutes mounts the per-store catalog. Reads are public, writes go through requireAuth.
func (h *CatalogHandler) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.Get("/billboards", h.handleListBillboards)
	router.Get("/billboards/{id}", h.handleGetBillboard)
	router.Get("/categories", h.handleListCategories)
	router.Get("/categories/{id}", h.handleGetCategory)
	router.With(h.ownerWhenArchived(requireAuth)).Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProduct)

	for _, kind := range []catalog.AttributeKind{catalog.KindSize, catalog.KindColor} {
		path := "/" + string(kind)
		router.Get(path, h.handleListAttributes(kind))
		router.Get(path+"/{id}", h.handleGetAttribute(kind))
	}

	router.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/billboards", h.handleCreateBillboard)
		r.Patch("/billboards/{id}", h.handleUpdateBillboard)
		r.Delete("/billboards/{id}", h.handleDeleteBillboard)

		r.Post("/categories", h.handleCreateCategory)
		r.Patch("/categories/{id}", h.handleUpdateCategory)
		r.Delete("/categories/{id}", h.handleDeleteCategory)

		r.Post("/products", h.handleCreateProduct)
		r.Patch("/products/{id}", h.handleUpdateProduct)
		r.Delete("/products/{id}", h.handleDeleteProduct)

		for _, kind := range []catalog.AttributeKind{catalog.KindSize, catalog.KindColor} {
			path := "/" + string(kind)
			r.Post(path, h.handleCreateAttribute(kind))
			r.Patch(path+"/{id}", h.handleUpdateAttribute(kind))
			r.Delete(path+"/{id}", h.handleDeleteAttribute(kind))
		}
	})
}

// ownerWhenArchived leaves the product list public, but a request for archived
// products must come from the store owner.
func (h *CatalogHandler) ownerWhenArchived(requireAuth func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		guarded := requireAuth(RequireOwner(h.service)(next))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if queryBool(r, "includeArchived") {
				guarded.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ---- stores ----

func (h *CatalogHandler) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	const op = "stores.create"
	var req StoreRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	store, err := h.service.CreateStore(r.Context(), currentUser(r), req.Name)
	if err != nil {
		handleError(w, op, err, "Failed to create store")
		return
	}
	respondWithJSON(w, http.StatusCreated, store)
}

func (h *CatalogHandler) handleListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, "stores.list", err, "Failed to list stores")
		return
	}
	respondWithJSON(w, http.StatusOK, stores)
}

func (h *CatalogHandler) handleUpdateStore(w http.ResponseWriter, r *http.Request) {
	const op = "stores.update"
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	var req StoreRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	store := &catalog.Store{ID: storeID, Name: req.Name}
	if err := h.service.UpdateStore(r.Context(), currentUser(r), store); err != nil {
		handleError(w, op, err, "Failed to update store")
		return
	}

	updated, err := h.service.GetStore(r.Context(), storeID)
	if err != nil {
		handleError(w, op, err, "Failed to load updated store")
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) handleDeleteStore(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	if err := h.service.DeleteStore(r.Context(), currentUser(r), storeID); err != nil {
		handleError(w, "stores.delete", err, "Failed to delete store")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- billboards ----

func (h *CatalogHandler) handleCreateBillboard(w http.ResponseWriter, r *http.Request) {
	const op = "billboards.create"
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	var req BillboardRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	b := &catalog.Billboard{StoreID: storeID, Label: req.Label, ImageURL: req.ImageURL}
	if err := h.service.CreateBillboard(r.Context(), currentUser(r), b); err != nil {
		handleError(w, op, err, "Failed to create billboard")
		return
	}
	respondWithJSON(w, http.StatusCreated, b)
}

func (h *CatalogHandler) handleGetBillboard(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	b, err := h.service.GetBillboard(r.Context(), storeID, id)
	if err != nil {
		handleError(w, "billboards.get", err, "Failed to get billboard")
		return
	}
	respondWithJSON(w, http.StatusOK, b)
}

func (h *CatalogHandler) handleListBillboards(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}

	billboards, err := h.service.ListBillboards(r.Context(), storeID)
	if err != nil {
		handleError(w, "billboards.list", err, "Failed to list billboards")
		return
	}
	respondWithJSON(w, http.StatusOK, billboards)
}

func (h *CatalogHandler) handleUpdateBillboard(w http.ResponseWriter, r *http.Request) {
	const op = "billboards.update"
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req BillboardRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	b := &catalog.Billboard{ID: id, StoreID: storeID, Label: req.Label, ImageURL: req.ImageURL}
	if err := h.service.UpdateBillboard(r.Context(), currentUser(r), b); err != nil {
		handleError(w, op, err, "Failed to update billboard")
		return
	}

	updated, err := h.service.GetBillboard(r.Context(), storeID, id)
	if err != nil {
		handleError(w, op, err, "Failed to load updated billboard")
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) handleDeleteBillboard(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBillboard(r.Context(), currentUser(r), storeID, id); err != nil {
		handleError(w, "billboards.delete", err, "Failed to delete billboard")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- categories ----

func (h *CatalogHandler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	const op = "categories.create"
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	var req CategoryRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	c := &catalog.Category{StoreID: storeID, BillboardID: uuid.FromStringOrNil(req.BillboardID), Name: req.Name}
	if err := h.service.CreateCategory(r.Context(), currentUser(r), c); err != nil {
		handleError(w, op, err, "Failed to create category")
		return
	}
	respondWithJSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	c, err := h.service.GetCategory(r.Context(), storeID, id)
	if err != nil {
		handleError(w, "categories.get", err, "Failed to get category")
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

func (h *CatalogHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}

	categories, err := h.service.ListCategories(r.Context(), storeID)
	if err != nil {
		handleError(w, "categories.list", err, "Failed to list categories")
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	const op = "categories.update"
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	c := &catalog.Category{ID: id, StoreID: storeID, BillboardID: uuid.FromStringOrNil(req.BillboardID), Name: req.Name}
	if err := h.service.UpdateCategory(r.Context(), currentUser(r), c); err != nil {
		handleError(w, op, err, "Failed to update category")
		return
	}

	updated, err := h.service.GetCategory(r.Context(), storeID, id)
	if err != nil {
		handleError(w, op, err, "Failed to load updated category")
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(r.Context(), currentUser(r), storeID, id); err != nil {
		handleError(w, "categories.delete", err, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- sizes and colors ----

func (h *CatalogHandler) handleCreateAttribute(kind catalog.AttributeKind) http.HandlerFunc {
	op := string(kind) + ".create"
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, ok := uuidParam(w, r, "storeId")
		if !ok {
			return
		}
		var req AttributeRequest
		if !decodeAndValidate(w, r, h.validate, op, &req) {
			return
		}

		a := &catalog.Attribute{Kind: kind, StoreID: storeID, Name: req.Name, Value: req.Value}
		if err := h.service.CreateAttribute(r.Context(), currentUser(r), a); err != nil {
			handleError(w, op, err, "Failed to create "+string(kind))
			return
		}
		respondWithJSON(w, http.StatusCreated, a)
	}
}

func (h *CatalogHandler) handleGetAttribute(kind catalog.AttributeKind) http.HandlerFunc {
	op := string(kind) + ".get"
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, ok := uuidParam(w, r, "storeId")
		if !ok {
			return
		}
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}

		a, err := h.service.GetAttribute(r.Context(), kind, storeID, id)
		if err != nil {
			handleError(w, op, err, "Failed to get "+string(kind))
			return
		}
		respondWithJSON(w, http.StatusOK, a)
	}
}

func (h *CatalogHandler) handleListAttributes(kind catalog.AttributeKind) http.HandlerFunc {
	op := string(kind) + ".list"
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, ok := uuidParam(w, r, "storeId")
		if !ok {
			return
		}

		attrs, err := h.service.ListAttributes(r.Context(), kind, storeID)
		if err != nil {
			handleError(w, op, err, "Failed to list "+string(kind))
			return
		}
		respondWithJSON(w, http.StatusOK, attrs)
	}
}

func (h *CatalogHandler) handleUpdateAttribute(kind catalog.AttributeKind) http.HandlerFunc {
	op := string(kind) + ".update"
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, ok := uuidParam(w, r, "storeId")
		if !ok {
			return
		}
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}
		var req AttributeRequest
		if !decodeAndValidate(w, r, h.validate, op, &req) {
			return
		}

		a := &catalog.Attribute{ID: id, Kind: kind, StoreID: storeID, Name: req.Name, Value: req.Value}
		if err := h.service.UpdateAttribute(r.Context(), currentUser(r), a); err != nil {
			handleError(w, op, err, "Failed to update "+string(kind))
			return
		}

		updated, err := h.service.GetAttribute(r.Context(), kind, storeID, id)
		if err != nil {
			handleError(w, op, err, "Failed to load updated "+string(kind))
			return
		}
		respondWithJSON(w, http.StatusOK, updated)
	}
}

func (h *CatalogHandler) handleDeleteAttribute(kind catalog.AttributeKind) http.HandlerFunc {
	op := string(kind) + ".delete"
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, ok := uuidParam(w, r, "storeId")
		if !ok {
			return
		}
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}

		if err := h.service.DeleteAttribute(r.Context(), currentUser(r), kind, storeID, id); err != nil {
			handleError(w, op, err, "Failed to delete "+string(kind))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- products ----

func (h *CatalogHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "products.create"
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	var req ProductRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	p := req.toProduct(storeID)
	if err := h.service.CreateProduct(r.Context(), currentUser(r), p); err != nil {
		handleError(w, op, err, "Failed to create product")
		return
	}
	respondWithJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	p, err := h.service.GetProduct(r.Context(), storeID, id)
	if err != nil {
		handleError(w, "products.get", err, "Failed to get product")
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}

	filter := catalog.ProductFilter{
		StoreID:      storeID,
		CategoryID:   queryUUID(r, "categoryId"),
		SizeID:       queryUUID(r, "sizeId"),
		ColorID:      queryUUID(r, "colorId"),
		FeaturedOnly: queryBool(r, "isFeatured"),
	}
	// Only reachable by the store owner, see ownerWhenArchived.
	filter.IncludeArchived = queryBool(r, "includeArchived")

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		handleError(w, "products.list", err, "Failed to list products")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "products.update"
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	p := req.toProduct(storeID)
	p.ID = id
	if err := h.service.UpdateProduct(r.Context(), currentUser(r), p); err != nil {
		handleError(w, op, err, "Failed to update product")
		return
	}

	// Re-read so the response carries timestamps and the joined category, size and color.
	updated, err := h.service.GetProduct(r.Context(), storeID, id)
	if err != nil {
		handleError(w, op, err, "Failed to load updated product")
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), currentUser(r), storeID, id); err != nil {
		handleError(w, "products.delete", err, "Failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
