package handler

import (
	"net/http"
	"strconv"

	"contact-keeper/internal/middleware"
	"contact-keeper/internal/usecase/contact"
	"contact-keeper/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContactHandler struct {
	service *contact.Service
}

func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// RegisterRoutes mounts the contact endpoints; the group is expected to sit
// behind the auth middleware.
func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.List)
	router.GET("/birthday", h.Birthdays)
	router.GET("/search_name/:query", h.SearchName)
	router.GET("/search_mail/:query", h.SearchMail)
	router.GET("/:id", h.Get)
	router.POST("/add", h.Add)
	router.PATCH("/:id/edit", h.Edit)
	router.DELETE("/:id/delete", h.Delete)
}

func (h *ContactHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "limit must be an integer")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "offset must be an integer")
		return
	}

	contacts, err := h.service.List(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Birthdays(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contacts, err := h.service.UpcomingBirthdays(c.Request.Context(), user.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), user.ID, contactID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ContactHandler) Add(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req contact.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.FirstName = utils.SanitizeString(req.FirstName)
	req.LastName = utils.SanitizeString(req.LastName)

	result, err := h.service.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ContactHandler) Edit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	var req contact.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email != nil {
		sanitized := utils.SanitizeEmail(*req.Email)
		req.Email = &sanitized
	}
	if req.FirstName != nil {
		sanitized := utils.SanitizeString(*req.FirstName)
		req.FirstName = &sanitized
	}
	if req.LastName != nil {
		sanitized := utils.SanitizeString(*req.LastName)
		req.LastName = &sanitized
	}

	result, err := h.service.Edit(c.Request.Context(), user.ID, contactID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, result)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	result, err := h.service.Delete(c.Request.Context(), user.ID, contactID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ContactHandler) SearchName(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contacts, err := h.service.SearchByName(c.Request.Context(), user.ID, c.Param("query"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) SearchMail(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contacts, err := h.service.SearchByEmail(c.Request.Context(), user.ID, c.Param("query"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}
