package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"finquery/internal/analytics"
	"finquery/internal/auth"
	"finquery/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires the full route table over an in-memory database,
// mirroring the production wiring in cmd/api.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserCompany{},
		&models.Company{},
		&models.Financial{},
		&models.StockPrice{},
	))

	tokens, err := auth.NewTokenIssuer("controllers-test-secret")
	require.NoError(t, err)

	log := zap.NewNop().Sugar()
	queryEngine := analytics.NewEngine(db)

	engine := gin.New()
	router := Router{
		HealthController:    &HealthController{DB: db},
		UsersController:     &UsersController{DB: db, Tokens: tokens, Logger: log},
		CompaniesController: &CompaniesController{DB: db, Engine: queryEngine, Logger: log},
		StocksController:    &StocksController{DB: db, Engine: queryEngine, Logger: log},
		SearchController:    &SearchController{Engine: queryEngine, Logger: log},
		Auth:                RequireAuth(tokens),
	}
	router.RegisterRoutes(engine)

	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

func ptr(v float64) *float64 { return &v }
