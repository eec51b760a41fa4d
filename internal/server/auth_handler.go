package server

import (
	"net/http"

	"github.com/jonathan/jobboard/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user, "User registered successfully")
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, r, err)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user, "Login successful")
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *types.User, message string) {
	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	jsonResponse(w, status, types.LoginResponse{
		User:    user,
		Token:   token,
		Message: message,
	})
}
