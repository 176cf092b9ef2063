package middleware

import (
	"context"
	"net/http"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/token"
)

// ContextKey é o tipo da chave usada para armazenar as claims no contexto.
// Usamos um tipo próprio para garantir que esta chave seja única e não haja
// conflito com outras chaves string.
type ContextKey int

const (
	StaffClaimsKey ContextKey = iota
)

// StaffClaims representa os dados do funcionário extraídos do token JWT,
// que serão anexados ao contexto.
type StaffClaims struct {
	StaffID string
	Role    domain.StaffRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT e anexa as
// claims (StaffID e Role) ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
				http.Error(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado.").Error(), http.StatusUnauthorized)
				return
			}

			tokenString := authHeader[7:]

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, apperror.NewUnauthorizedError("Token inválido ou expirado.").Error(), http.StatusUnauthorized)
				return
			}

			// 3. Anexar Claims ao Contexto
			staffClaims := StaffClaims{
				StaffID: claims.StaffID,
				Role:    domain.StaffRole(claims.Role),
			}

			ctx := context.WithValue(r.Context(), StaffClaimsKey, staffClaims)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetStaffClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetStaffClaimsFromContext(ctx context.Context) (StaffClaims, bool) {
	claims, ok := ctx.Value(StaffClaimsKey).(StaffClaims)
	return claims, ok
}

// PermissionMiddleware restringe o acesso às roles informadas.
// Deve ser aplicado após o NewAuthMiddleware, que anexa as claims ao contexto.
func PermissionMiddleware(requiredRoles ...domain.StaffRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			claims, ok := GetStaffClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado.").Error(), http.StatusUnauthorized)
				return
			}

			isAuthorized := false
			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					isAuthorized = true
					break
				}
			}

			if !isAuthorized {
				http.Error(w, apperror.NewUnauthorizedError("Acesso negado. Você não tem a permissão necessária.").Error(), http.StatusForbidden) // 403 Forbidden
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}
