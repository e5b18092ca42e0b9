package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"p9e.in/fleetops/models"
)

// Identity is the caller identity asserted by the upstream gateway through
// the x-storm-userid / x-storm-username headers. The id is trusted as-is;
// verification happens at the edge, not here.
type Identity struct {
	ID   string
	Name string
}

// unexported type prevents collisions in context
type ctxKey int

const (
	identityKey ctxKey = iota
	userKey
)

const (
	HeaderUserID   = "x-storm-userid"
	HeaderUsername = "x-storm-username"
)

// ExtractIdentity stashes the caller identity in the request context when
// present: the x-storm-userid header first, else a signed session token from
// the login endpoint as a bearer Authorization header. It never rejects;
// routes that need an identity wrap themselves in RequireIdentity or
// RequireManager.
func ExtractIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ident := identityFromRequest(r); ident != nil {
			r = r.WithContext(context.WithValue(r.Context(), identityKey, ident))
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromRequest(r *http.Request) *Identity {
	if id := r.Header.Get(HeaderUserID); id != "" {
		return &Identity{ID: id, Name: r.Header.Get(HeaderUsername)}
	}
	raw := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(raw, "Bearer "); ok {
		if claims, err := ParseToken(token); err == nil {
			return &Identity{ID: claims.UserID, Name: claims.Name}
		}
	}
	return nil
}

// GetIdentity pulls the caller identity out of the request context (or nil).
func GetIdentity(r *http.Request) *Identity {
	if ident, ok := r.Context().Value(identityKey).(*Identity); ok {
		return ident
	}
	return nil
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id, name string) context.Context {
	return context.WithValue(ctx, identityKey, &Identity{ID: id, Name: name})
}

// RequireIdentity rejects requests that carry no caller identity.
func RequireIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if GetIdentity(r) == nil {
			writeError(w, http.StatusUnauthorized, "User ID not found in request headers.")
			return
		}
		next(w, r)
	}
}

// ErrUnknownUser is returned by a Resolver when the asserted id matches no
// account.
var ErrUnknownUser = errors.New("unknown user")

// Resolver maps an external user id to an account. The DB-backed
// implementation below is the default; a verified-token resolver can be
// swapped in without touching any handler.
type Resolver interface {
	Resolve(ctx context.Context, externalID string) (*models.User, error)
}

// DBResolver resolves identities against the users table.
type DBResolver struct {
	DB *gorm.DB
}

func (d DBResolver) Resolve(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	err := d.DB.WithContext(ctx).
		First(&user, "external_id = ? AND is_active = ?", externalID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RequireManager resolves the caller and rejects anyone whose role is not
// manager.
func RequireManager(res Resolver, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := GetIdentity(r)
		if ident == nil {
			writeError(w, http.StatusUnauthorized, "User ID not found in request headers.")
			return
		}
		user, err := res.Resolve(r.Context(), ident.ID)
		if errors.Is(err, ErrUnknownUser) {
			writeError(w, http.StatusUnauthorized, "User not found.")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if !user.IsManager() {
			writeError(w, http.StatusForbidden, "Access denied. Only managers can access this endpoint.")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

// GetUser returns the account resolved by RequireManager (or nil on routes
// without that gate).
func GetUser(r *http.Request) *models.User {
	if u, ok := r.Context().Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
