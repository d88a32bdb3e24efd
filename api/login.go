package api

import (
	"encoding/json"
	"net/http"

	"smart-extract/auth"
	"smart-extract/config"
	"smart-extract/logging"
)

func LoginHandler(cfg *config.Config, users *auth.UsersFile, loginLogger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Méthode non autorisée", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON invalide", http.StatusBadRequest)
			loginLogger.Write("LOGIN FAIL (bad json)")
			return
		}
		isAdmin, ok := auth.CheckPassword(cfg, users, req.Username, req.Password)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			loginLogger.Write("LOGIN FAIL user=" + req.Username)
			return
		}
		tokenString, err := auth.GenerateJWT(cfg.JWT.Secret, req.Username, isAdmin, cfg.JWT.ExpirationMinutes)
		if err != nil {
			http.Error(w, "Erreur serveur", http.StatusInternalServerError)
			loginLogger.Write("LOGIN FAIL (jwt error) user=" + req.Username)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"token": tokenString})
		loginLogger.Write("LOGIN OK user=" + req.Username)
	}
}
