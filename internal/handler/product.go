package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/httpx"
	"github.com/pkordes/panda-market/internal/service"
)

type createProductRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1"`
}

type updateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Status      *string   `json:"status" validate:"omitempty,oneof=on_sale sold"`
	Stock       *int      `json:"stock" validate:"omitempty,gte=0"`
	Tags        *[]string `json:"tags" validate:"omitempty,dive,min=1"`
}

type productResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Slug        string    `json:"slug"`
	Status      string    `json:"status"`
	Stock       int       `json:"stock"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newProductResponse(p domain.Product) productResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Slug:        p.Slug,
		Status:      p.Status,
		Stock:       p.Stock,
		Tags:        tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// productDetailResponse is the single-item read shape. Unlike the write
// responses it carries no updatedAt.
type productDetailResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Slug        string    `json:"slug"`
	Status      string    `json:"status"`
	Stock       int       `json:"stock"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newProductDetailResponse(p domain.Product) productDetailResponse {
	full := newProductResponse(p)
	return productDetailResponse{
		ID:          full.ID,
		Name:        full.Name,
		Description: full.Description,
		Price:       full.Price,
		Slug:        full.Slug,
		Status:      full.Status,
		Stock:       full.Stock,
		Tags:        full.Tags,
		CreatedAt:   full.CreatedAt,
	}
}

type productSummaryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := httpx.DecodeValid[createProductRequest](w, r)
	if !ok {
		return
	}

	product, err := s.products.Create(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/products/%d", product.ID))
	httpx.JSON(w, http.StatusCreated, newProductResponse(product))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newProductDetailResponse(product))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	items, total, err := s.products.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]productSummaryResponse, 0, len(items))
	for _, p := range items {
		out = append(out, productSummaryResponse{ID: p.ID, Name: p.Name, Price: p.Price, CreatedAt: p.CreatedAt})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": out,
		"meta":  newListMeta(params, total),
	})
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httpx.DecodeValid[updateProductRequest](w, r)
	if !ok {
		return
	}

	product, err := s.products.Update(r.Context(), id, domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
		Stock:       req.Stock,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newProductResponse(product))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
