package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	authdomain "shopfolders/backend/internal/domain/auth"
	collectiondomain "shopfolders/backend/internal/domain/collection"
	collectionusecase "shopfolders/backend/internal/usecase/collection"

	"go.uber.org/zap"
)

// listingRedirect is the admin view a successful write acknowledges.
const listingRedirect = "/app"

// newCollectionSentinel is the path segment meaning "no collection yet".
const newCollectionSentinel = "new"

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/auth/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/auth/login", http.HandlerFunc(s.handleLogin))

	authenticated := s.authMiddleware
	s.router.Handle("/collections", authenticated(http.HandlerFunc(s.handleCollections)))
	s.router.Handle("/collections/", authenticated(http.HandlerFunc(s.handleCollectionByID)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.authService.Register(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, user, err := s.authService.Login(r.Context(), authdomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		items, err := s.reader.List(ctx)
		if err != nil {
			s.logger.Error("list collections failed", zap.Error(err))
			writeFieldError(w, http.StatusInternalServerError, "form", "An error occurred while processing your request.")
			return
		}
		if items == nil {
			items = []*collectiondomain.Summary{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": items})
	case http.MethodPost:
		s.handleSaveCollection(w, r, nil)
	default:
		writeInvalidMethod(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleCollectionByID(w http.ResponseWriter, r *http.Request) {
	segment := strings.Trim(strings.TrimPrefix(r.URL.Path, "/collections/"), "/")
	if segment == "" {
		writeFieldError(w, http.StatusNotFound, "form", "Collection not found")
		return
	}

	if segment == newCollectionSentinel {
		if r.Method != http.MethodGet {
			writeInvalidMethod(w, http.MethodGet)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"collection": nil})
		return
	}

	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		writeFieldError(w, http.StatusNotFound, "form", "Collection not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := s.reader.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, collectiondomain.ErrNotFound) {
				writeFieldError(w, http.StatusNotFound, "form", "Collection not found")
				return
			}
			s.logger.Error("get collection failed", zap.Int64("collectionId", id), zap.Error(err))
			writeFieldError(w, http.StatusInternalServerError, "form", "An error occurred while processing your request.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"collection": detail})
	case http.MethodPut:
		s.handleSaveCollection(w, r, &id)
	default:
		writeInvalidMethod(w, http.MethodGet, http.MethodPut)
	}
}

// handleSaveCollection services both create (nil collectionID) and update.
// Structural validation happens here in the same order the admin form reports
// errors; the synchronizer revalidates before touching storage.
func (s *Server) handleSaveCollection(w http.ResponseWriter, r *http.Request, collectionID *int64) {
	form, ferr := decodeSaveRequest(r)
	if ferr != nil {
		writeFieldError(w, http.StatusBadRequest, ferr.field, ferr.message)
		return
	}

	if strings.TrimSpace(form.name) == "" {
		writeFieldError(w, http.StatusBadRequest, "name", "Name is required")
		return
	}
	if !form.productsProvided {
		writeFieldError(w, http.StatusBadRequest, "products", "Products are required")
		return
	}
	if len(form.products) == 0 {
		writeFieldError(w, http.StatusBadRequest, "products", "At least one product is required")
		return
	}
	priority, err := collectiondomain.ParsePriority(form.priority)
	if err != nil {
		writeFieldError(w, http.StatusBadRequest, "form", "Priority must be HIGH, MEDIUM, or LOW")
		return
	}

	id, err := s.syncer.Save(r.Context(), collectionusecase.SaveInput{
		CollectionID: collectionID,
		Name:         form.name,
		Priority:     priority,
		Products:     form.products,
	})
	if err != nil {
		switch {
		case errors.Is(err, collectiondomain.ErrNameRequired):
			writeFieldError(w, http.StatusBadRequest, "name", "Name is required")
		case errors.Is(err, collectiondomain.ErrProductsRequired):
			writeFieldError(w, http.StatusBadRequest, "products", "At least one product is required")
		case errors.Is(err, collectiondomain.ErrInvalidPriority):
			writeFieldError(w, http.StatusBadRequest, "form", "Priority must be HIGH, MEDIUM, or LOW")
		case errors.Is(err, collectiondomain.ErrNotFound):
			writeFieldError(w, http.StatusNotFound, "form", "Collection not found")
		default:
			writeFieldError(w, http.StatusInternalServerError, "form", "An error occurred while processing your request.")
		}
		return
	}

	if user, ok := currentUserFromContext(r.Context()); ok {
		s.logger.Info("collection saved",
			zap.Int64("collectionId", id),
			zap.String("actor", user.Email),
		)
	}

	status := http.StatusCreated
	if collectionID != nil {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{"id": id, "redirect": listingRedirect})
}

type saveForm struct {
	name             string
	priority         string
	products         []collectionusecase.ProductRef
	productsProvided bool
}

type fieldError struct {
	field   string
	message string
}

// decodeSaveRequest accepts either a JSON body or an HTML form post. The
// admin form submits products as a JSON-encoded string field; JSON callers
// may send the array directly or the same encoded string.
func decodeSaveRequest(r *http.Request) (*saveForm, *fieldError) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if strings.HasPrefix(ct, "multipart/form-data") {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				return nil, &fieldError{"form", "invalid form payload"}
			}
		} else if err := r.ParseForm(); err != nil {
			return nil, &fieldError{"form", "invalid form payload"}
		}

		form := &saveForm{
			name:     r.FormValue("name"),
			priority: r.FormValue("priority"),
		}
		raw := strings.TrimSpace(r.FormValue("products"))
		if raw == "" {
			return form, nil
		}
		form.productsProvided = true
		if err := json.Unmarshal([]byte(raw), &form.products); err != nil {
			return nil, &fieldError{"products", "At least one product is required"}
		}
		return form, nil
	}

	var body struct {
		Name     string          `json:"name"`
		Priority string          `json:"priority"`
		Products json.RawMessage `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &fieldError{"form", "request body required"}
		}
		return nil, &fieldError{"form", "invalid JSON payload"}
	}

	form := &saveForm{name: body.Name, priority: body.Priority}
	raw := strings.TrimSpace(string(body.Products))
	if raw == "" || raw == "null" {
		return form, nil
	}
	form.productsProvided = true
	if err := json.Unmarshal(body.Products, &form.products); err == nil {
		return form, nil
	}

	var encoded string
	if err := json.Unmarshal(body.Products, &encoded); err != nil {
		return nil, &fieldError{"products", "At least one product is required"}
	}
	if strings.TrimSpace(encoded) == "" {
		form.productsProvided = false
		return form, nil
	}
	if err := json.Unmarshal([]byte(encoded), &form.products); err != nil {
		return nil, &fieldError{"products", "At least one product is required"}
	}
	return form, nil
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authorization token required")
			return
		}

		user, err := s.authService.VerifyToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUserFromContext exposes the identity the gate attached to the
// request; the collection core trusts it without re-checking.
func currentUserFromContext(ctx context.Context) (*authdomain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser{}).(*authdomain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

type ctxKeyUser struct{}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
