// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/promptdb/internal/platform/constants"
	"github.com/taibuivan/promptdb/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/promptdb/internal/platform/request"
	"github.com/taibuivan/promptdb/internal/platform/respond"
)

// # HTTP Handler

// Handler exposes export and import over HTTP.
type Handler struct {
	service  *Service
	maxBytes int64
}

// NewHandler constructs a new [Handler]. Import bodies above maxBytes get 413.
func NewHandler(service *Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

// Routes returns the router mounted at /api.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/export/prompts", handler.exportPrompts)
	router.Post("/import/prompts", handler.importPrompts)

	return router
}

type importResponse struct {
	Success  bool      `json:"success"`
	Imported Summary   `json:"imported"`
	Warnings []Warning `json:"warnings"`
}

// interruptedResponse is the error envelope of a run cut short by the
// request deadline. Rows written before the cut are kept and counted.
type interruptedResponse struct {
	respond.ErrorEnvelope
	Imported Summary   `json:"imported"`
	Warnings []Warning `json:"warnings"`
}

func (handler *Handler) exportPrompts(writer http.ResponseWriter, request *http.Request) {
	snapshot, err := handler.service.Export(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filename := constants.ExportFilePrefix + time.Now().UTC().Format(time.DateOnly) + ".json"
	writer.Header().Set(constants.HeaderContentDisposition, fmt.Sprintf(constants.ContentDispositionPattern, filename))
	respond.OK(writer, snapshot)
}

func (handler *Handler) importPrompts(writer http.ResponseWriter, request *http.Request) {
	raw, err := requestutil.ReadBody(writer, request, handler.maxBytes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Import(request.Context(), raw)
	if err != nil && result != nil {
		handler.interrupted(writer, request, result, err)
		return
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, importResponse{Success: true, Imported: result.Imported, Warnings: result.Warnings})
}

func (handler *Handler) interrupted(writer http.ResponseWriter, request *http.Request, result *Result, cause error) {
	ctx := request.Context()
	ctxutil.GetLogger(ctx).WarnContext(ctx, "import_interrupted",
		slog.String("error", cause.Error()),
		slog.Int("prompts", result.Imported.Prompts),
	)

	appError := ErrImportInterrupted
	respond.JSON(writer, appError.HTTPStatus, interruptedResponse{
		ErrorEnvelope: respond.ErrorEnvelope{Error: appError.Message, Code: appError.Code},
		Imported:      result.Imported,
		Warnings:      result.Warnings,
	})
}
