package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind discrimina las dos clases de token. Va firmado dentro de los claims
// para que un refresh token nunca pueda usarse donde se esperan claims de acceso.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Errores del codec. Todos terminan en 401 para el cliente; la distinción
// expirado/malformado/clase-equivocada se conserva para logging.
var (
	ErrExpired   = errors.New("token expirado")
	ErrInvalid   = errors.New("token inválido")
	ErrWrongKind = errors.New("clase de token incorrecta")
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Los tokens de acceso llevan id, email, role y name; los de refresh solo id y email.
type Claims struct {
	jwt.RegisteredClaims
	Kind   string `json:"kind"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Config parámetros del codec. Un único secret firma ambas clases de token.
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration // por defecto 7 días
	RefreshTTL time.Duration // por defecto 30 días
}

// Codec emite y verifica tokens firmados HS256.
type Codec struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec construye el codec. Falla si el secret está vacío.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token: secret vacío")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 7 * 24 * time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	return &Codec{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// IssueAccess emite un token de acceso con id, email, role y name.
func (c *Codec) IssueAccess(userID int64, email, role, name string) (string, error) {
	return c.sign(Claims{
		Kind:   KindAccess,
		UserID: userID,
		Email:  email,
		Role:   role,
		Name:   name,
	}, c.accessTTL)
}

// IssueRefresh emite un token de refresh con solo id y email.
func (c *Codec) IssueRefresh(userID int64, email string) (string, error) {
	return c.sign(Claims{
		Kind:   KindRefresh,
		UserID: userID,
		Email:  email,
	}, c.refreshTTL)
}

func (c *Codec) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   fmt.Sprintf("%d", claims.UserID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// VerifyAccess valida firma, expiración y clase; solo acepta tokens de acceso.
func (c *Codec) VerifyAccess(tokenString string) (*Claims, error) {
	return c.verify(tokenString, KindAccess)
}

// VerifyRefresh valida firma, expiración y clase; solo acepta tokens de refresh.
func (c *Codec) VerifyRefresh(tokenString string) (*Claims, error) {
	return c.verify(tokenString, KindRefresh)
}

func (c *Codec) verify(tokenString, kind string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalid
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: se esperaba %q", ErrWrongKind, kind)
	}
	return claims, nil
}

// ExtractBearer extrae el token del header Authorization.
// Solo reconoce el esquema "Bearer <token>"; cualquier otra cosa devuelve "".
func ExtractBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
