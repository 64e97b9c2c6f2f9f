package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/config"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/catalog"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/session"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/interfaces/http/routes"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// fakeBackOffice is an httptest stand-in for the remote back-office API
func fakeBackOffice(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
		var req gateway.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
			return
		}
		role := "STAFF"
		if req.Username == "owner" {
			role = "ADMIN"
		}
		json.NewEncoder(w).Encode(gateway.LoginResponse{
			User: gateway.AuthUser{ID: 1, Username: req.Username, Role: role},
		})
	})
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Espresso", "price": "50.00", "category": 1}]`))
	})
	mux.HandleFunc("/api/inventory/low-stock/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/bills/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 7, "bill_number": "B-0007", "total_amount": "100.00",
		})
	})
	mux.HandleFunc("/api/staff/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "username": "barista", "role": "STAFF", "is_active": true}]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newShellAPI wires the full shell surface against a fake back office
func newShellAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backOffice := fakeBackOffice(t)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = backOffice.URL + "/api/"
	cfg.Store.Path = filepath.Join(t.TempDir(), "pos-test.db")
	cfg.Shop.Name = "Test Cafe"

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	db, err := gorm.Open(sqlite.Open(cfg.Store.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&session.Session{}))

	gw, err := gateway.NewClient(cfg, logger)
	require.NoError(t, err)

	sessions := session.NewManager(db, gw, logger)
	catalogSvc := catalog.NewService(gw, logger)
	term := terminal.New(sessions, catalogSvc, gw, logger)
	require.NoError(t, term.Start())

	engine := gin.New()
	routes.SetupRoutes(engine.Group("/api"), term, gw, cfg)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, engine *gin.Engine, username string) {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", gin.H{
		"username": username, "password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestProtectedRoutesNeedLogin(t *testing.T) {
	engine := newShellAPI(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newShellAPI(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", gin.H{
		"username": "barista", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid username or password", resp.Error)
}

func TestAdminRoutesNeedAdminRole(t *testing.T) {
	engine := newShellAPI(t)
	login(t, engine, "barista")

	rec := doJSON(t, engine, http.MethodGet, "/api/staff", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCanListStaff(t *testing.T) {
	engine := newShellAPI(t)
	login(t, engine, "owner")

	rec := doJSON(t, engine, http.MethodGet, "/api/staff", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data []gateway.StaffUser `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "barista", resp.Data[0].Username)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	engine := newShellAPI(t)
	login(t, engine, "barista")

	// The POS screen loads the catalog (prices land in paise)
	rec := doJSON(t, engine, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var catalogResp struct {
		Data []struct {
			ID        int64 `json:"id"`
			Price     int64 `json:"price"`
			Available bool  `json:"available"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalogResp))
	require.Len(t, catalogResp.Data, 1)
	assert.Equal(t, int64(5000), catalogResp.Data[0].Price)
	assert.True(t, catalogResp.Data[0].Available)

	// Two espressos
	rec = doJSON(t, engine, http.MethodPost, "/api/cart/items", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/cart/items/1/increment", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cartResp struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	assert.Equal(t, int64(10000), cartResp.Data.Total)

	// Cash payment with change
	rec = doJSON(t, engine, http.MethodPost, "/api/payment/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/payment/method", gin.H{"method": "CASH"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/payment/cash", gin.H{"amount": "200.00"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/payment/confirm", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var confirmResp struct {
		Data struct {
			BillNumber string `json:"bill_number"`
			Total      int64  `json:"total_amount"`
			CashGiven  int64  `json:"cash_given"`
			Change     int64  `json:"change"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmResp))
	assert.Equal(t, "B-0007", confirmResp.Data.BillNumber)
	assert.Equal(t, int64(10000), confirmResp.Data.Total)
	assert.Equal(t, int64(20000), confirmResp.Data.CashGiven)
	assert.Equal(t, int64(10000), confirmResp.Data.Change)

	// Cart is empty again
	rec = doJSON(t, engine, http.MethodGet, "/api/cart", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	assert.Equal(t, int64(0), cartResp.Data.Total)

	// The receipt stays until new-bill
	rec = doJSON(t, engine, http.MethodGet, "/api/receipt", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/receipt/new-bill", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, engine, http.MethodGet, "/api/receipt", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmptyCartCannotOpenPayment(t *testing.T) {
	engine := newShellAPI(t)
	login(t, engine, "barista")

	rec := doJSON(t, engine, http.MethodPost, "/api/payment/open", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNavigationFallsBackByRole(t *testing.T) {
	engine := newShellAPI(t)
	login(t, engine, "barista")

	rec := doJSON(t, engine, http.MethodGet, "/api/nav?page=staff", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Page string `json:"page"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pos", resp.Data.Page)
}
