package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialstore/database"
	"socialstore/models"
	"socialstore/routes"
	"socialstore/store"
	"socialstore/utils"
)

func setupTestServer(t *testing.T) (*gin.Engine, *store.Storage) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "socialstore_api_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserSocialAuth{},
		&models.Nonce{},
		&models.Association{},
		&models.Code{},
		&models.Partial{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	database.DB = db
	database.DBType = "sqlite"
	utils.InitAuditLog(db)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r)

	return r, store.NewStorage(db)
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)

	w := doRequest(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Health response is not JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Health status = %v", body["status"])
	}
}

func TestListUserSocialAuths(t *testing.T) {
	r, storage := setupTestServer(t)

	user, err := storage.User.CreateUser("alice", "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	link, _ := storage.User.CreateSocialAuth(user, "1", "github")
	storage.User.SetExtraData(link, map[string]interface{}{"access_token": "gho_secretsecretsecret"})
	storage.User.CreateSocialAuth(user, "2", "google-oauth2")

	w := doRequest(t, r, http.MethodGet, "/api/users/"+strconv.Itoa(int(user.ID))+"/social", "")
	if w.Code != http.StatusOK {
		t.Fatalf("List social = %d, want 200: %s", w.Code, w.Body.String())
	}

	var links []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &links); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(links))
	}

	// Provider tokens must never leave the store unmasked.
	for _, l := range links {
		if extra, ok := l["extra_data"].(map[string]interface{}); ok {
			if tok, ok := extra["access_token"].(string); ok && strings.Contains(tok, "secretsecret") {
				t.Errorf("Access token leaked unmasked: %s", tok)
			}
		}
	}

	w = doRequest(t, r, http.MethodGet, "/api/users/99999/social", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown user = %d, want 404", w.Code)
	}
}

func TestDisconnectSafety(t *testing.T) {
	r, storage := setupTestServer(t)

	// Password-less account with one link: refusal.
	bob, _ := storage.User.CreateUser("bob", "bob@example.com", "")
	only, _ := storage.User.CreateSocialAuth(bob, "10", "github")

	w := doRequest(t, r, http.MethodDelete, "/api/social/"+strconv.Itoa(int(only.ID)), "")
	if w.Code != http.StatusConflict {
		t.Fatalf("Disconnecting the last login method = %d, want 409: %s", w.Code, w.Body.String())
	}
	if remaining, _ := storage.User.GetSocialAuth("github", "10"); remaining == nil {
		t.Fatal("Refused disconnect must not delete the link")
	}

	// With a second link the same request goes through.
	storage.User.CreateSocialAuth(bob, "11", "google-oauth2")
	w = doRequest(t, r, http.MethodDelete, "/api/social/"+strconv.Itoa(int(only.ID)), "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("Disconnect with another link = %d, want 204: %s", w.Code, w.Body.String())
	}
	if gone, _ := storage.User.GetSocialAuth("github", "10"); gone != nil {
		t.Error("Disconnected link should be gone")
	}

	w = doRequest(t, r, http.MethodDelete, "/api/social/99999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown link = %d, want 404", w.Code)
	}
}

func TestCodeEndpoints(t *testing.T) {
	r, _ := setupTestServer(t)

	w := doRequest(t, r, http.MethodPost, "/api/codes", `{"email":"alice@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Create code = %d, want 201: %s", w.Code, w.Body.String())
	}

	var created map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &created)
	code, _ := created["code"].(string)
	if code == "" {
		t.Fatal("Created code is empty")
	}

	w = doRequest(t, r, http.MethodGet, "/api/codes/"+code, "")
	if w.Code != http.StatusOK {
		t.Errorf("Lookup code = %d, want 200", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/codes/doesnotexist", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown code = %d, want 404", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/api/codes", `{"email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Invalid email = %d, want 400", w.Code)
	}
}

func TestMaintenancePurgeEndpoints(t *testing.T) {
	r, storage := setupTestServer(t)

	storage.Association.Store("https://openid.example.com", store.OpenIDAssociation{
		Handle: "stale", Secret: []byte("s"), Issued: 1000, Lifetime: 1, AssocType: "HMAC-SHA1",
	})

	w := doRequest(t, r, http.MethodPost, "/api/maintenance/associations/purge", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Purge associations = %d, want 200: %s", w.Code, w.Body.String())
	}
	remaining, _ := storage.Association.Get("", "")
	if len(remaining) != 0 {
		t.Errorf("Expired association should be purged, %d left", len(remaining))
	}

	w = doRequest(t, r, http.MethodPost, "/api/maintenance/partials/purge?max_age=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Bad max_age = %d, want 400", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/api/maintenance/partials/purge", "")
	if w.Code != http.StatusOK {
		t.Errorf("Purge partials = %d, want 200", w.Code)
	}
}
