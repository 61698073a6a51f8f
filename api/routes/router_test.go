package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/listplus/listplus-backend/internal/favourites"
	"github.com/listplus/listplus-backend/internal/groups"
	"github.com/listplus/listplus-backend/internal/lists"
	"github.com/listplus/listplus-backend/internal/shops"
	"github.com/listplus/listplus-backend/internal/users"
	pkgauth "github.com/listplus/listplus-backend/pkg/auth"
	"github.com/listplus/listplus-backend/pkg/config"
	"github.com/listplus/listplus-backend/pkg/logger"
	"github.com/listplus/listplus-backend/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubUserService struct{}

func (stubUserService) StoreUser(ctx context.Context, input users.StoreUserInput) (*users.UserDTO, bool, error) {
	return &users.UserDTO{ID: input.UID}, true, nil
}

func (stubUserService) GetProfile(ctx context.Context, uid string) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uid}, nil
}

func (stubUserService) UpdateProfile(ctx context.Context, uid string, input users.UpdateProfileInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uid}, nil
}

func (stubUserService) DeleteProfile(ctx context.Context, uid string) error { return nil }

func (stubUserService) GetByIDs(ctx context.Context, ids []string) ([]users.UserDTO, error) {
	return nil, nil
}

type stubListService struct{}

func (stubListService) Create(ctx context.Context, actor string, input lists.CreateListInput) (*lists.ListDTO, error) {
	return &lists.ListDTO{Name: input.Name, CreatedBy: actor}, nil
}

func (stubListService) ListMine(ctx context.Context, actor string) ([]lists.ListDTO, error) {
	return []lists.ListDTO{}, nil
}

func (stubListService) Get(ctx context.Context, actor string, id uuid.UUID) (*lists.ListDTO, error) {
	return &lists.ListDTO{ID: id}, nil
}

func (stubListService) Update(ctx context.Context, actor string, id uuid.UUID, input lists.UpdateListInput) (*lists.ListDTO, error) {
	return &lists.ListDTO{ID: id}, nil
}

func (stubListService) Delete(ctx context.Context, actor string, id uuid.UUID) error { return nil }

func (stubListService) AddMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*lists.ListDTO, error) {
	return &lists.ListDTO{ID: id}, nil
}

func (stubListService) RemoveMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*lists.ListDTO, error) {
	return &lists.ListDTO{ID: id}, nil
}

func (stubListService) RegenerateInvite(ctx context.Context, actor string, id uuid.UUID) (*lists.InviteDTO, error) {
	return &lists.InviteDTO{}, nil
}

func (stubListService) JoinByInvite(ctx context.Context, actor, code string) (*lists.ListDTO, error) {
	return &lists.ListDTO{}, nil
}

func (stubListService) ListItems(ctx context.Context, actor string, listID uuid.UUID) ([]lists.ItemDTO, error) {
	return nil, nil
}

func (stubListService) AddItem(ctx context.Context, actor string, listID uuid.UUID, input lists.AddItemInput) (*lists.ItemDTO, error) {
	return &lists.ItemDTO{}, nil
}

func (stubListService) UpdateItem(ctx context.Context, actor string, listID, itemID uuid.UUID, input lists.UpdateItemInput) (*lists.ItemDTO, error) {
	return &lists.ItemDTO{}, nil
}

func (stubListService) DeleteItem(ctx context.Context, actor string, listID, itemID uuid.UUID) error {
	return nil
}

type stubGroupService struct{}

func (stubGroupService) Create(ctx context.Context, actor string, input groups.CreateGroupInput) (*groups.GroupDTO, error) {
	return &groups.GroupDTO{Name: input.Name}, nil
}

func (stubGroupService) ListMine(ctx context.Context, actor string) ([]groups.GroupDTO, error) {
	return nil, nil
}

func (stubGroupService) Get(ctx context.Context, actor string, id uuid.UUID) (*groups.GroupDTO, error) {
	return &groups.GroupDTO{ID: id}, nil
}

func (stubGroupService) Update(ctx context.Context, actor string, id uuid.UUID, input groups.UpdateGroupInput) (*groups.GroupDTO, error) {
	return &groups.GroupDTO{ID: id}, nil
}

func (stubGroupService) Delete(ctx context.Context, actor string, id uuid.UUID) error { return nil }

func (stubGroupService) AddMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*groups.GroupDTO, error) {
	return &groups.GroupDTO{ID: id}, nil
}

func (stubGroupService) RemoveMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*groups.GroupDTO, error) {
	return &groups.GroupDTO{ID: id}, nil
}

func (stubGroupService) RegenerateInvite(ctx context.Context, actor string, id uuid.UUID) (*groups.InviteDTO, error) {
	return &groups.InviteDTO{}, nil
}

func (stubGroupService) JoinByInvite(ctx context.Context, actor, code string) (*groups.GroupDTO, error) {
	return &groups.GroupDTO{}, nil
}

func (stubGroupService) ListItems(ctx context.Context, actor string, groupID uuid.UUID) ([]groups.ItemDTO, error) {
	return nil, nil
}

func (stubGroupService) AddItem(ctx context.Context, actor string, groupID uuid.UUID, input groups.AddItemInput) (*groups.ItemDTO, error) {
	return &groups.ItemDTO{}, nil
}

func (stubGroupService) UpdateItem(ctx context.Context, actor string, groupID, itemID uuid.UUID, input groups.UpdateItemInput) (*groups.ItemDTO, error) {
	return &groups.ItemDTO{}, nil
}

func (stubGroupService) DeleteItem(ctx context.Context, actor string, groupID, itemID uuid.UUID) error {
	return nil
}

func (stubGroupService) ListCancelledItems(ctx context.Context, actor string, groupID uuid.UUID) ([]groups.CancelledItemDTO, error) {
	return nil, nil
}

type stubShopService struct{}

func (stubShopService) Create(ctx context.Context, actor string, input shops.CreateShopInput) (*shops.ShopDTO, error) {
	return &shops.ShopDTO{Name: input.Name}, nil
}

func (stubShopService) ListMine(ctx context.Context, actor string) ([]shops.ShopDTO, error) {
	return nil, nil
}

func (stubShopService) Get(ctx context.Context, actor string, id uuid.UUID) (*shops.ShopDTO, error) {
	return &shops.ShopDTO{ID: id}, nil
}

func (stubShopService) Update(ctx context.Context, actor string, id uuid.UUID, input shops.UpdateShopInput) (*shops.ShopDTO, error) {
	return &shops.ShopDTO{ID: id}, nil
}

func (stubShopService) Delete(ctx context.Context, actor string, id uuid.UUID) error { return nil }

func (stubShopService) ListItems(ctx context.Context, actor string, shopID uuid.UUID) ([]shops.ItemDTO, error) {
	return nil, nil
}

func (stubShopService) AddItem(ctx context.Context, actor string, shopID uuid.UUID, input shops.AddItemInput) (*shops.ItemDTO, error) {
	return &shops.ItemDTO{}, nil
}

func (stubShopService) UpdateItem(ctx context.Context, actor string, shopID, itemID uuid.UUID, input shops.UpdateItemInput) (*shops.ItemDTO, error) {
	return &shops.ItemDTO{}, nil
}

func (stubShopService) DeleteItem(ctx context.Context, actor string, shopID, itemID uuid.UUID) error {
	return nil
}

type stubFavouritesService struct{}

func (stubFavouritesService) Add(ctx context.Context, userID string, shopID uuid.UUID) error {
	return nil
}

func (stubFavouritesService) Remove(ctx context.Context, userID string, shopID uuid.UUID) error {
	return nil
}

func (stubFavouritesService) List(ctx context.Context, userID string) ([]shops.ShopDTO, error) {
	return nil, nil
}

var _ favourites.Service = stubFavouritesService{}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "test", Port: "0"},
		Auth: config.AuthConfig{Secret: "test-secret", Issuer: "listplus-test"},
	}
}

func newTestRouter(t *testing.T, database stubPinger) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	registry := prometheus.NewRegistry()
	return NewRouter(
		testConfig(),
		logg,
		database,
		nil,
		registry,
		metrics.NewHTTPMetrics(registry),
		stubUserService{},
		stubListService{},
		stubGroupService{},
		stubShopService{},
		stubFavouritesService{},
	)
}

func bearerToken(t *testing.T, uid string) string {
	t.Helper()
	cfg := testConfig().Auth
	claims := pkgauth.IdentityClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + raw
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if env := resp.Header().Get("X-ListPlus-Env"); env != "test" {
		t.Fatalf("unexpected env header %q", env)
	}
}

func TestRouterWelcome(t *testing.T) {
	router := newTestRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestRouterProtectedRouteWithoutToken(t *testing.T) {
	router := newTestRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/api/list", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterProtectedRouteWithToken(t *testing.T) {
	router := newTestRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/api/list", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d body %s", resp.Code, resp.Body.String())
	}
}

func TestRouterStoreUserSkipsBearerAuth(t *testing.T) {
	router := newTestRouter(t, stubPinger{})
	body := `{"uid":"user-1","email":"u@example.com","name":"User One"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/store-user", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestRouterJoinRouteReachesService(t *testing.T) {
	router := newTestRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodPost, "/api/list/join/a1b2c3d4e5f60718", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-2"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d body %s", resp.Code, resp.Body.String())
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
