package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"baggage/internal/core/domain/model/kernel"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorIDKey = "actor_id"

const defaultLeeway = 30 * time.Second

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Authenticator validates bearer tokens issued by the identity provider.
// The token subject is the id of the caller's actor profile.
type Authenticator struct {
	keyfunc jwt.Keyfunc
	methods []string
	issuer  string
	logger  *slog.Logger
}

// NewHMACAuthenticator accepts HS256 tokens signed with secret.
func NewHMACAuthenticator(secret []byte, issuer string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		keyfunc: func(*jwt.Token) (any, error) { return secret, nil },
		methods: []string{jwt.SigningMethodHS256.Alg()},
		issuer:  issuer,
		logger:  logger.With("component", "jwt_auth"),
	}
}

// NewJWKSAuthenticator fetches and refreshes signing keys from jwksURL in
// the background until ctx is cancelled.
func NewJWKSAuthenticator(ctx context.Context, jwksURL string, issuer string, logger *slog.Logger) (*Authenticator, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("create JWKS keyfunc: %w", err)
	}
	return NewAuthenticatorWithKeyfunc(k, issuer, logger), nil
}

// NewAuthenticatorWithKeyfunc accepts RS256 and ES256 tokens verified by k.
func NewAuthenticatorWithKeyfunc(k keyfunc.Keyfunc, issuer string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		keyfunc: k.Keyfunc,
		methods: []string{jwt.SigningMethodRS256.Alg(), jwt.SigningMethodES256.Alg()},
		issuer:  issuer,
		logger:  logger.With("component", "jwt_auth"),
	}
}

// Authenticate returns the actor id carried by a valid token.
func (a *Authenticator) Authenticate(token string) (kernel.UUID, error) {
	if token == "" {
		return kernel.UUID{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(a.methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(defaultLeeway),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, a.keyfunc, opts...); err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	return id, nil
}

// Middleware rejects requests without a valid bearer token with 401 and
// stores the actor id in the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication credentials were not provided."})
			}

			id, err := a.Authenticate(token)
			if err != nil {
				a.logger.DebugContext(c.Request().Context(), "token rejected",
					"error", err,
					"remote_addr", c.RealIP(),
				)
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Given token not valid for any token type"})
			}

			c.Set(actorIDKey, id)
			return next(c)
		}
	}
}

// ActorIDFromContext returns the id stored by Middleware.
func ActorIDFromContext(c echo.Context) (kernel.UUID, bool) {
	id, ok := c.Get(actorIDKey).(kernel.UUID)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
