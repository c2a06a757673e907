package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclut les claims standards JWT plus les champs propres à l'application.
// Role est embarqué pour que le middleware RBAC décide sans interroger la base.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	LabID  string `json:"lab_id"`
	Role   string `json:"role"` // "admin" | "prothesiste" | "assistant"
}

// Generate génère un token JWT signé incluant userID, labID et role.
func Generate(secret, userID, labID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vide")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		LabID:  labID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valide le token et renvoie userID, labID et role.
// Retourne une erreur si le token est invalide, expiré ou de signature incorrecte.
func Parse(secret, tokenString string) (userID, labID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vide")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("claims invalides")
	}
	return claims.UserID, claims.LabID, claims.Role, nil
}
