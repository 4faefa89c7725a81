package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/plazahq/plaza/internal/crypto"
	"github.com/plazahq/plaza/internal/dal"
	"github.com/plazahq/plaza/internal/middleware"
	"github.com/plazahq/plaza/internal/schemas"
	"github.com/plazahq/plaza/internal/validation"
)

func (h *RouteHandler) Register(w http.ResponseWriter, req *http.Request) {
	data := schemas.NewUserRequest{}
	if err := json.NewDecoder(req.Body).Decode(&data); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(data.Username); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(data.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if existing, _ := dal.GetUserByUsername(h.db, data.Username); existing != nil {
		http.Error(w, "username taken", http.StatusConflict)
		return
	}

	hashedPassword, err := crypto.HashPassword(data.Password)
	if err != nil {
		h.logger.Errorw("hashing password", "err", err)
		http.Error(w, "password error", http.StatusInternalServerError)
		return
	}

	user, err := dal.CreateUser(h.db, data.Username, hashedPassword)
	if err != nil {
		h.logger.Errorw("creating user", "err", err)
		http.Error(w, "error creating new user", http.StatusInternalServerError)
		return
	}

	h.logger.Infow("registered user", "user", user.Name)
	WriteJSON(w, &schemas.RegistrationResponse{UserID: user.Id, Username: user.Name})
}

func (h *RouteHandler) Login(w http.ResponseWriter, req *http.Request) {
	data := schemas.NewUserRequest{}
	if err := json.NewDecoder(req.Body).Decode(&data); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := dal.GetUserByUsername(h.db, data.Username)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !crypto.CheckPasswordHash(data.Password, user.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := dal.CreateToken(h.db, user.Id)
	if err != nil {
		h.logger.Errorw("issuing token", "err", err)
		http.Error(w, "error issuing token", http.StatusInternalServerError)
		return
	}

	h.logger.Infow("user logged in", "user", user.Name)
	WriteJSON(w, &schemas.LoginResponse{Token: token, UserID: user.Id, Username: user.Name})
}

// Logout revokes the presented bearer token.
func (h *RouteHandler) Logout(w http.ResponseWriter, req *http.Request) {
	token := middleware.GetToken(req)
	if token == "" {
		http.Error(w, errors.New("no token").Error(), http.StatusBadRequest)
		return
	}
	if err := dal.DeleteToken(h.db, token); err != nil {
		h.logger.Errorw("revoking token", "err", err)
		http.Error(w, "error revoking token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RouteHandler) Status(w http.ResponseWriter, req *http.Request) {
	res := schemas.StatusResponse{
		Username: middleware.GetUsername(req),
		Floors:   h.floors.FloorIDs(),
		Online:   h.floors.Online(),
	}
	WriteJSON(w, &res)
}

// Metrics dumps the per-floor counters.
func (h *RouteHandler) Metrics(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, h.floors.MetricsSnapshot())
}
