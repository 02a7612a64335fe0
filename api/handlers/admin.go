package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/autogallery/dealership-api/config"
	"github.com/autogallery/dealership-api/models"
)

// Admin issues and validates the signed tokens gating the metrics endpoints
type Admin struct {
	Config config.Config
}

type adminTokenRequest struct {
	Secret string `json:"secret"`
}

type adminTokenResponse struct {
	Token string `json:"token"`
}

// AdminTokenHandler exchanges the configured admin secret for a short-lived JWT
func (h Admin) AdminTokenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req adminTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Error:   "Invalid request body",
			Code:    "INVALID_BODY",
		})
		return
	}

	if h.Config.AdminSecret == "" ||
		subtle.ConstantTimeCompare(hash(req.Secret), hash(h.Config.AdminSecret)) != 1 {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Error:   "Invalid credentials",
			Code:    "INVALID_CREDENTIALS",
		})
		return
	}

	jwtSecret := []byte(h.Config.JWTSecret)
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"scope": "admin",
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(adminTokenResponse{Token: signed})
}

// AdminMiddleware requires a valid admin-scoped JWT on the wrapped routes
func (h Admin) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, "Bearer ")
		if len(parts) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "missing bearer token"}`))
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(h.Config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid token"}`))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["scope"] != "admin" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "insufficient scope"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func hash(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}
