// Copyright (c) 2026 Inkwell. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CodeeWithRafay/inkwell/internal/platform/middleware"
	requestutil "github.com/CodeeWithRafay/inkwell/internal/platform/request"
	"github.com/CodeeWithRafay/inkwell/internal/platform/respond"
	"github.com/CodeeWithRafay/inkwell/internal/platform/validate"
)

// Handler exposes the comment endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// RegisterRoutes mounts the comment endpoints. Reading a post's comments is
// public; posting one requires an authenticated session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}", handler.listByBlog)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
	})
}

type createRequest struct {
	BlogID  string `json:"blog"`
	Content string `json:"content"`
}

// create handles POST / and attaches a comment to a post.
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
	validator.Required(FieldBlogID, input.BlogID).
		UUID(FieldBlogID, input.BlogID).
		Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, ContentMaxLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), CreateInput{
		BlogID:   input.BlogID,
		AuthorID: userID,
		Content:  input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// listByBlog handles GET /{id} where {id} is the blog id.
func (handler *Handler) listByBlog(writer http.ResponseWriter, request *http.Request) {
	blogID := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	validator.Required(FieldID, blogID).UUID(FieldID, blogID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.commentService.ListByBlog(request.Context(), blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}
