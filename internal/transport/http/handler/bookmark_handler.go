package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-bookmarks/internal/domain"
	"go-gin-bookmarks/internal/transport/http/ez"
)

type BookmarkUsecase interface {
	List(ctx context.Context, userID uint) ([]domain.Bookmark, error)
	Get(ctx context.Context, userID, id uint) (*domain.Bookmark, error)
	Create(ctx context.Context, userID uint, in domain.BookmarkInput) (*domain.Bookmark, error)
	Edit(ctx context.Context, userID, id uint, p domain.BookmarkPatch) (*domain.Bookmark, error)
	Delete(ctx context.Context, userID, id uint) error
}

type BookmarkHandler struct {
	svc BookmarkUsecase
	log *zap.Logger
}

func NewBookmarkHandler(svc BookmarkUsecase, l *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{svc: svc, log: l}
}

type createBookmarkIn struct {
	Title       string  `json:"title"       binding:"required,max=255"`
	Description *string `json:"description"`
	Link        string  `json:"link"        binding:"required,url"`
}

type editBookmarkIn struct {
	Title       *string             `json:"title"       binding:"omitempty,min=1,max=255"`
	Description ez.Nullable[string] `json:"description"`
	Link        *string             `json:"link"        binding:"omitempty,url"`
}

func (h *BookmarkHandler) Priority() int { return 30 }

func (h *BookmarkHandler) MountAPI(_, authed *gin.RouterGroup) {
	e := ez.New(authed.Group("/bookmarks"), h.log)

	ez.RegisterAction(e, ez.Action[ez.Empty, []domain.Bookmark]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *ez.Empty) ([]domain.Bookmark, error) {
			u, _ := ez.CurrentUser(c)
			return h.svc.List(c.Request.Context(), u.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[ez.Empty, *domain.Bookmark]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *ez.Empty) (*domain.Bookmark, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			u, _ := ez.CurrentUser(c)
			return h.svc.Get(c.Request.Context(), u.ID, id)
		},
	})

	ez.RegisterAction(e, ez.Action[createBookmarkIn, *domain.Bookmark]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createBookmarkIn) (*domain.Bookmark, error) {
			u, _ := ez.CurrentUser(c)
			return h.svc.Create(c.Request.Context(), u.ID, domain.BookmarkInput{
				Title:       in.Title,
				Description: in.Description,
				Link:        in.Link,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[editBookmarkIn, *domain.Bookmark]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSONOptional,
		Auth:   true,
		Handler: func(c *gin.Context, in *editBookmarkIn) (*domain.Bookmark, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			u, _ := ez.CurrentUser(c)
			return h.svc.Edit(c.Request.Context(), u.ID, id, domain.BookmarkPatch{
				Title:            in.Title,
				Description:      in.Description.Value,
				ClearDescription: in.Description.Null(),
				Link:             in.Link,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[ez.Empty, ez.Empty]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *ez.Empty) (ez.Empty, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return ez.Empty{}, err
			}
			u, _ := ez.CurrentUser(c)
			return ez.Empty{}, h.svc.Delete(c.Request.Context(), u.ID, id)
		},
	})
}
