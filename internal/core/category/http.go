// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/promptdb/internal/platform/request"
	"github.com/taibuivan/promptdb/internal/platform/respond"
	"github.com/taibuivan/promptdb/pkg/optional"
)

// # HTTP Handler

// Handler exposes category management over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /api/categories.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Get("/tree", handler.categoryTree)
	router.Get("/{id}", handler.getCategory)
	router.Put("/{id}", handler.updateCategory)
	router.Delete("/{id}", handler.deleteCategory)

	return router
}

// # Request Payloads

type createCategoryRequest struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	ParentID  *string `json:"parentId"`
	SortOrder int     `json:"sortOrder"`
}

type updateCategoryRequest struct {
	Name      *string                `json:"name"`
	Slug      *string                `json:"slug"`
	ParentID  optional.Field[string] `json:"parentId"`
	SortOrder *int                   `json:"sortOrder"`
}

// # Handlers

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, categories, len(categories))
}

func (handler *Handler) categoryTree(writer http.ResponseWriter, request *http.Request) {
	roots, err := handler.service.Tree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, roots, len(roots))
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest
	if err := requestutil.DecodeJSON(writer, request, &input, requestutil.DefaultBodyLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Create(request.Context(), CreateInput{
		Name:      input.Name,
		Slug:      input.Slug,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input updateCategoryRequest
	if err := requestutil.DecodeJSON(writer, request, &input, requestutil.DefaultBodyLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), Patch{
		Name:      input.Name,
		Slug:      input.Slug,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Success(writer)
}
