package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/middleware"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/SubhamSahu809/ProRental/internal/platform/metrics"
	"github.com/SubhamSahu809/ProRental/internal/usecase"
)

// UserHandler serves signup, login, logout and the current-user probe.
type UserHandler struct {
	uc      *usecase.UserUsecase
	metrics *metrics.Manager
	logger  *logger.Logger
}

func NewUserHandler(uc *usecase.UserUsecase, mm *metrics.Manager, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, metrics: mm, logger: log.Named("UserHandler")}
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup responds to POST /api/users/signup and starts a session
// for the new account.
func (h *UserHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: invalid JSON body", domain.ErrInvalidInput))
		return
	}

	user, session, err := h.uc.Signup(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.metrics.UsersRegisteredTotal.Inc()
	setSessionCookie(w, session)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully!",
		"user":    toUserResponse(user),
	})
}

// HandleLogin responds to POST /api/users/login.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: invalid JSON body", domain.ErrInvalidInput))
		return
	}

	user, session, err := h.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful!",
		"user":    toUserResponse(user),
	})
}

// HandleLogout responds to GET /api/users/logout. The session, if
// any, is revoked server-side and the cookie cleared; a missing or
// expired session still logs out cleanly.
func (h *UserHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if tokenID, ok := middleware.TokenIDFromContext(r.Context()); ok {
		if err := h.uc.Logout(r.Context(), tokenID); err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "You are logged out!"})
}

// HandleMe responds to GET /api/users/me with the authenticated
// user's profile.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	user, err := h.uc.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": toUserResponse(user)})
}

func setSessionCookie(w http.ResponseWriter, session *usecase.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
