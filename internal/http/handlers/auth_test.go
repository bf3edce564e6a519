package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mercatodev/storefront/internal/domain/user"
	"github.com/mercatodev/storefront/internal/http/handlers"
	"github.com/mercatodev/storefront/internal/http/middlewares"
	mongorepo "github.com/mercatodev/storefront/internal/repo/mongo"
	"github.com/mercatodev/storefront/internal/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// small helper which returns a gin engine with the error translator
// mounted, so handler failures take the same path as in production

func setupRouter(method, path string, hs ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.ErrorHandler("test"))

	r.Handle(method, path, hs...)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body == "" {
		buf = bytes.NewBuffer(nil)
	} else {
		buf = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any

	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}

	return out
}

// Fake implementation of the handlers.UserStore interface

type fakeUserStore struct {
	createFn     func(ctx context.Context, u user.User) (user.User, error)
	getByPhoneFn func(ctx context.Context, phone string) (user.User, error)
	existsFn     func(ctx context.Context, email, phone string) (bool, error)
}

func (f *fakeUserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}

	u.ID = primitive.NewObjectID()
	return u, nil
}

func (f *fakeUserStore) GetByPhone(ctx context.Context, phone string) (user.User, error) {
	if f.getByPhoneFn != nil {
		return f.getByPhoneFn(ctx, phone)
	}

	return user.User{}, mongorepo.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, email, phone)
	}

	return false, nil
}

type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) GenerateToken(userID string) (string, error) {
	return f.token, f.err
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		storeSetUp func(*fakeUserStore)
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"A","email":"a@x.com","phone":"555","password":"pw"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing phone",
			body:       `{"name":"A","email":"a@x.com","password":"pw"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing everything",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "email already taken",
			body: `{"name":"A","email":"a@x.com","phone":"555","password":"pw"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.existsFn = func(ctx context.Context, email, phone string) (bool, error) {
					return true, nil
				}
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "phone already taken reports the same conflict",
			body: `{"name":"B","email":"b@x.com","phone":"555","password":"pw"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.existsFn = func(ctx context.Context, email, phone string) (bool, error) {
					return phone == "555", nil
				}
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeUserStore{}

			if tc.storeSetUp != nil {
				tc.storeSetUp(store)
			}

			h := handlers.NewAuthHandler(store, &fakeTokenIssuer{token: "tok"})
			r := setupRouter(http.MethodPost, "/api/auth/signup", h.SignUp)

			w := doJSON(t, r, http.MethodPost, "/api/auth/signup", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestSignUpResponseNeverContainsPassword(t *testing.T) {
	store := &fakeUserStore{}
	h := handlers.NewAuthHandler(store, &fakeTokenIssuer{token: "tok"})
	r := setupRouter(http.MethodPost, "/api/auth/signup", h.SignUp)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup",
		`{"name":"A","email":"a@x.com","phone":"555","password":"pw"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	body := decodeBody(t, w)

	if body["token"] != "tok" {
		t.Errorf("token = %v, want tok", body["token"])
	}

	userBody, ok := body["user"].(map[string]any)

	if !ok {
		t.Fatalf("missing user in response: %v", body)
	}

	if _, found := userBody["password"]; found {
		t.Error("response user contains password")
	}

	if userBody["role"] != "user" {
		t.Errorf("role = %v, want user", userBody["role"])
	}
}

func TestSignUpSelfAssignedAdminRole(t *testing.T) {
	var created user.User

	store := &fakeUserStore{
		createFn: func(ctx context.Context, u user.User) (user.User, error) {
			u.ID = primitive.NewObjectID()
			created = u
			return u, nil
		},
	}

	h := handlers.NewAuthHandler(store, &fakeTokenIssuer{token: "tok"})
	r := setupRouter(http.MethodPost, "/api/auth/signup", h.SignUp)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup",
		`{"name":"A","email":"a@x.com","phone":"555","password":"pw","role":"admin"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	if created.Role != "admin" {
		t.Errorf("role = %q, want admin (legacy behavior)", created.Role)
	}
}

func TestSignUpStoresHashNotPlaintext(t *testing.T) {
	var created user.User

	store := &fakeUserStore{
		createFn: func(ctx context.Context, u user.User) (user.User, error) {
			u.ID = primitive.NewObjectID()
			created = u
			return u, nil
		},
	}

	h := handlers.NewAuthHandler(store, &fakeTokenIssuer{token: "tok"})
	r := setupRouter(http.MethodPost, "/api/auth/signup", h.SignUp)

	doJSON(t, r, http.MethodPost, "/api/auth/signup",
		`{"name":"A","email":"a@x.com","phone":"555","password":"pw"}`)

	if created.Password == "pw" {
		t.Fatal("password persisted as plaintext")
	}

	if err := security.CheckPassword(created.Password, "pw"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := security.HashPassword("right-pw")
	if err != nil {
		t.Fatal(err)
	}

	known := user.User{
		ID:       primitive.NewObjectID(),
		Name:     "A",
		Email:    "a@x.com",
		Phone:    "555",
		Password: hash,
		Role:     "user",
	}

	store := &fakeUserStore{
		getByPhoneFn: func(ctx context.Context, phone string) (user.User, error) {
			if phone == "555" {
				return known, nil
			}
			return user.User{}, mongorepo.ErrUserNotFound
		},
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "success", body: `{"phone":"555","password":"right-pw"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"phone":"555","password":"wrong"}`, wantStatus: http.StatusUnauthorized},
		{name: "unknown phone", body: `{"phone":"000","password":"right-pw"}`, wantStatus: http.StatusUnauthorized},
		{name: "missing password", body: `{"phone":"555"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := handlers.NewAuthHandler(store, &fakeTokenIssuer{token: "tok"})
			r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

			w := doJSON(t, r, http.MethodPost, "/api/auth/login", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

// wrong password and unknown phone must be indistinguishable to the client
func TestLoginNoAccountEnumeration(t *testing.T) {
	hash, err := security.HashPassword("right-pw")
	if err != nil {
		t.Fatal(err)
	}

	store := &fakeUserStore{
		getByPhoneFn: func(ctx context.Context, phone string) (user.User, error) {
			if phone == "555" {
				return user.User{ID: primitive.NewObjectID(), Phone: "555", Password: hash}, nil
			}
			return user.User{}, mongorepo.ErrUserNotFound
		},
	}

	h := handlers.NewAuthHandler(store, &fakeTokenIssuer{token: "tok"})
	r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

	wrongPw := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"phone":"555","password":"wrong"}`)
	noUser := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"phone":"000","password":"wrong"}`)

	if wrongPw.Code != noUser.Code {
		t.Fatalf("status differs: %d vs %d", wrongPw.Code, noUser.Code)
	}

	if wrongPw.Body.String() != noUser.Body.String() {
		t.Errorf("bodies differ: %s vs %s", wrongPw.Body.String(), noUser.Body.String())
	}
}
