package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	userRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/user"
)

const (
	msgMissingToken         = "отсутствует токен авторизации"
	msgInvalidToken         = "недействительный токен авторизации"
	msgNoCommunity          = "пользователю не назначен жилой комплекс"
	msgCommunityUnavailable = "жилой комплекс недоступен"
)

// Auth возвращает middleware, резолвящий тенант-контекст из сессионного
// токена. Валидирует Bearer-токен (HS256), загружает пользователя и его ЖК
// из БД и кладет Tenant в контекст запроса.
//
// Роль и код ЖК всегда берутся из БД, а не из claims токена: токен
// подтверждает только идентичность, всё остальное - состояние сервера.
func Auth(secret string, users UserProvider, communities CommunityProvider, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("Auth: missing bearer token: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			rawToken := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := parseSubject(rawToken, secret)
			if err != nil {
				log.Warn("Auth: invalid token: %v", err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) {
					log.Warn("Auth: token subject not found: user_id=%s", userID)
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
				log.Error("Auth: failed to load user id=%s: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			if !user.HasCommunity() {
				log.Warn("Auth: user id=%s has no community assigned", userID)
				handlers.RespondForbidden(w, msgNoCommunity)
				return
			}

			community, err := communities.GetByCode(r.Context(), *user.CommunityCode)
			if err != nil {
				log.Error("Auth: failed to load community code=%s: %v", *user.CommunityCode, err)
				handlers.RespondInternalError(w)
				return
			}

			if !community.IsActive() {
				log.Warn("Auth: community code=%s is inactive, user_id=%s", community.Code, userID)
				handlers.RespondForbidden(w, msgCommunityUnavailable)
				return
			}

			tenant := Tenant{
				UserID:        user.ID,
				CommunityCode: community.Code,
				Role:          user.Role,
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenant)))
		})
	}
}

// parseSubject валидирует токен и извлекает subject (ID пользователя)
func parseSubject(rawToken string, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(rawToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}
