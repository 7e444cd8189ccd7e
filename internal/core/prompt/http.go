// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/promptdb/internal/platform/request"
	"github.com/taibuivan/promptdb/internal/platform/respond"
	"github.com/taibuivan/promptdb/pkg/optional"
	"github.com/taibuivan/promptdb/pkg/query"
)

// # HTTP Handler

// Handler exposes prompt management and usage tracking over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /api/prompts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPrompts)
	router.Post("/", handler.createPrompt)
	router.Get("/{id}", handler.getPrompt)
	router.Put("/{id}", handler.updatePrompt)
	router.Delete("/{id}", handler.deletePrompt)
	router.Patch("/{id}/usage", handler.trackUsage)

	return router
}

// # Request Payloads

type createPromptRequest struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	Body            string   `json:"body"`
	Type            Type     `json:"type"`
	Platform        Platform `json:"platform"`
	ModelHint       *string  `json:"modelHint"`
	Language        string   `json:"language"`
	UseCase         string   `json:"useCase"`
	ClientOrProject *string  `json:"clientOrProject"`
	Status          Status   `json:"status"`
	IsFavorite      bool     `json:"isFavorite"`
	Version         int      `json:"version"`
	Changelog       *string  `json:"changelog"`
	Notes           *string  `json:"notes"`
	CategoryID      *string  `json:"categoryId"`
	TagIDs          []string `json:"tagIds"`
}

type updatePromptRequest struct {
	Title           *string                `json:"title"`
	Description     optional.Field[string] `json:"description"`
	Body            *string                `json:"body"`
	Type            *Type                  `json:"type"`
	Platform        *Platform              `json:"platform"`
	ModelHint       optional.Field[string] `json:"modelHint"`
	Language        *string                `json:"language"`
	UseCase         *string                `json:"useCase"`
	ClientOrProject optional.Field[string] `json:"clientOrProject"`
	Status          *Status                `json:"status"`
	IsFavorite      *bool                  `json:"isFavorite"`
	Version         *int                   `json:"version"`
	Changelog       optional.Field[string] `json:"changelog"`
	Notes           optional.Field[string] `json:"notes"`
	CategoryID      optional.Field[string] `json:"categoryId"`
	TagIDs          *[]string              `json:"tagIds"`
}

// filterFromQuery reads the listing criteria. tagIds may be repeated or
// comma separated; isFavorite counts as true only for the literal "true".
func filterFromQuery(values url.Values) Filter {
	filter := Filter{
		Search:     values.Get("search"),
		CategoryID: values.Get("categoryId"),
		TagIDs:     query.Values(values["tagIds"]),
		Platform:   Platform(values.Get("platform")),
		Status:     Status(values.Get("status")),
		Language:   values.Get("language"),
	}

	if values.Has("isFavorite") {
		favorite := values.Get("isFavorite") == "true"
		filter.IsFavorite = &favorite
	}
	return filter
}

// # Handlers

func (handler *Handler) listPrompts(writer http.ResponseWriter, request *http.Request) {
	prompts, err := handler.service.List(request.Context(), filterFromQuery(request.URL.Query()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, prompts, len(prompts))
}

func (handler *Handler) getPrompt(writer http.ResponseWriter, request *http.Request) {
	prompt, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, prompt)
}

func (handler *Handler) createPrompt(writer http.ResponseWriter, request *http.Request) {
	var input createPromptRequest
	if err := requestutil.DecodeJSON(writer, request, &input, requestutil.DefaultBodyLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	prompt, err := handler.service.Create(request.Context(), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, prompt)
}

func (handler *Handler) updatePrompt(writer http.ResponseWriter, request *http.Request) {
	var input updatePromptRequest
	if err := requestutil.DecodeJSON(writer, request, &input, requestutil.DefaultBodyLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	prompt, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), Patch(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, prompt)
}

func (handler *Handler) deletePrompt(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Success(writer)
}

// trackUsage is called by clients whenever a prompt body is copied.
func (handler *Handler) trackUsage(writer http.ResponseWriter, request *http.Request) {
	prompt, err := handler.service.TrackUsage(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, prompt)
}
