package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/gnn-news/internal/newsportal"
)

// Register handles POST /api/auth/register
// @Summary Register user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body rest.RegisterRequest true "Account"
// @Success 201 {object} rest.User
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/auth/register [post]
func (h *NewsHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if ok, err := h.bindRequest(c, &req, "Invalid user data"); !ok {
		return err
	}

	user, err := h.uc.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if errors.Is(err, newsportal.ErrDuplicate) {
		return h.handleError(c, err, http.StatusBadRequest, "Email already registered")
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to register user")
	}

	return c.JSON(http.StatusCreated, NewUser(*user))
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verifies credentials. No session or token is issued.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body rest.LoginRequest true "Credentials"
// @Success 200 {object} rest.AuthUser
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/auth/login [post]
func (h *NewsHandler) Login(c echo.Context) error {
	var req LoginRequest
	if ok, err := h.bindRequest(c, &req, "Invalid login data"); !ok {
		return err
	}

	user, err := h.uc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, newsportal.ErrUnauthorized) {
		return h.handleError(c, err, http.StatusUnauthorized, "Invalid email or password")
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Login failed")
	}

	return c.JSON(http.StatusOK, NewAuthUser(*user))
}

// Comments handles GET /api/articles/:id/comments
// @Summary List comments of an article
// @Tags comments
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {array} rest.Comment
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/comments [get]
func (h *NewsHandler) Comments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid article ID")
	}

	list, err := h.uc.Comments(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to fetch comments")
	}

	return c.JSON(http.StatusOK, Map(list, NewComment))
}

// CreateComment handles POST /api/articles/:id/comments
// @Summary Comment on an article
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param comment body rest.CommentRequest true "Comment"
// @Success 201 {object} rest.Comment
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/comments [post]
func (h *NewsHandler) CreateComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid article ID")
	}

	var req CommentRequest
	if ok, err := h.bindRequest(c, &req, "Invalid comment data"); !ok {
		return err
	}

	comment, err := h.uc.CreateComment(c.Request().Context(), id, req.UserID, req.Content)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to create comment")
	}
	if comment == nil {
		return h.handleError(c, nil, http.StatusNotFound, "Article not found")
	}

	return c.JSON(http.StatusCreated, NewComment(*comment))
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Delete comment
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *NewsHandler) DeleteComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid comment ID")
	}

	ok, err := h.uc.DeleteComment(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to delete comment")
	}
	if !ok {
		return h.handleError(c, nil, http.StatusNotFound, "Comment not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// Images handles GET /api/articles/:id/images
// @Summary List images of an article
// @Tags images
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {array} rest.Image
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/images [get]
func (h *NewsHandler) Images(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid article ID")
	}

	list, err := h.uc.Images(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to fetch images")
	}

	return c.JSON(http.StatusOK, Map(list, NewImage))
}

// CreateImage handles POST /api/articles/:id/images
// @Summary Attach image to an article
// @Tags images
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param image body rest.ImageRequest true "Image"
// @Success 201 {object} rest.Image
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/images [post]
func (h *NewsHandler) CreateImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid article ID")
	}

	var req ImageRequest
	if ok, err := h.bindRequest(c, &req, "Invalid image data"); !ok {
		return err
	}

	img, err := h.uc.CreateImage(c.Request().Context(), id, req.URL)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to upload image")
	}
	if img == nil {
		return h.handleError(c, nil, http.StatusNotFound, "Article not found")
	}

	return c.JSON(http.StatusCreated, NewImage(*img))
}

// DeleteImage handles DELETE /api/images/:id
// @Summary Delete image
// @Tags images
// @Param id path int true "Image ID"
// @Success 204
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/images/{id} [delete]
func (h *NewsHandler) DeleteImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid image ID")
	}

	ok, err := h.uc.DeleteImage(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to delete image")
	}
	if !ok {
		return h.handleError(c, nil, http.StatusNotFound, "Image not found")
	}

	return c.NoContent(http.StatusNoContent)
}
