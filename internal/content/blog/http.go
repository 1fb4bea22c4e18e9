// Copyright (c) 2026 Inkwell. All rights reserved.

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CodeeWithRafay/inkwell/internal/platform/middleware"
	requestutil "github.com/CodeeWithRafay/inkwell/internal/platform/request"
	"github.com/CodeeWithRafay/inkwell/internal/platform/respond"
	"github.com/CodeeWithRafay/inkwell/internal/platform/validate"
	"github.com/CodeeWithRafay/inkwell/pkg/pagination"
)

// Handler exposes the blog endpoints.
type Handler struct {
	blogService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{blogService: service}
}

// RegisterRoutes mounts the blog endpoints. Reads are public; mutations
// require an authenticated session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/all", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
		protected.Put("/", handler.update)
		protected.Delete("/{id}", handler.remove)
	})
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Photo   string `json:"photo"`
}

type updateRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Photo   string `json:"photo"`
}

// create handles POST / and publishes a new post for the session user.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLen).
		Required(FieldContent, input.Content)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.Create(request.Context(), CreateInput{
		Title:    input.Title,
		Content:  input.Content,
		Photo:    input.Photo,
		AuthorID: userID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

// list handles GET /all with page/limit query parameters.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, total, err := handler.blogService.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

// get handles GET /{id} and returns one post with its author resolved.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	validator.Required(FieldID, id).UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// update handles PUT / with the post id in the body. Author only.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldID, input.ID).
		UUID(FieldID, input.ID).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLen).
		Required(FieldContent, input.Content)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.Update(request.Context(), UpdateInput{
		ID:          input.ID,
		Title:       input.Title,
		Content:     input.Content,
		Photo:       input.Photo,
		RequesterID: userID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// remove handles DELETE /{id}. Author only; comments go with the post.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	validator.Required(FieldID, id).UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.blogService.Delete(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
