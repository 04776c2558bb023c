package handler

import (
	"net/http"

	"contact-keeper/internal/middleware"
	"contact-keeper/internal/usecase/auth"
	"contact-keeper/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes mounts the unauthenticated auth endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/signup", h.Signup)
	router.POST("/token", h.Token)
	router.GET("/refresh_token", h.RefreshToken)
	router.GET("/activate", h.Activate)
}

// RegisterProtectedRoutes mounts the endpoints requiring an access token.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/user", h.CurrentUser)
	router.GET("/mail", h.SendMail)
}

// RegisterAvatarRoute mounts the avatar upload endpoint; it is only called
// when object storage is configured.
func (h *AuthHandler) RegisterAvatarRoute(router *gin.RouterGroup) {
	router.POST("/avatar", h.UploadAvatar)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req auth.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	user, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Token implements the OAuth2 password flow: form-encoded username and
// password in, bearer token pair out.
func (h *AuthHandler) Token(c *gin.Context) {
	req := auth.LoginRequest{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	req.Username = utils.SanitizeEmail(req.Username)

	tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	bearer, ok := middleware.BearerToken(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token required")
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), bearer)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Activate(c *gin.Context) {
	email := utils.SanitizeEmail(c.Query("user_mail"))
	otp := c.Query("otp")
	if email == "" || otp == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "user_mail and otp are required")
		return
	}

	user, err := h.service.Activate(c.Request.Context(), email, otp)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	c.JSON(http.StatusOK, auth.ToUserResponse(user))
}

func (h *AuthHandler) SendMail(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	h.service.SendTestMail(user)
	c.JSON(http.StatusOK, gin.H{"status": "message sent"})
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.service.SetAvatar(c.Request.Context(), user, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
