package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/audit"
	"github.com/ohmypoop/backend/internal/export"
	"github.com/ohmypoop/backend/internal/handler"
	"github.com/ohmypoop/backend/internal/pdf"
	"github.com/ohmypoop/backend/internal/repository"
	"github.com/ohmypoop/backend/internal/service"
)

// TestRecordFlowIntegration exercises the full record lifecycle over HTTP:
// create, list, statistics, calendar, reports, privacy export and purge.
func TestRecordFlowIntegration(t *testing.T) {
	// Skip if not in integration test mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	logger := zap.NewNop()

	db, cleanup := setupTestDatabase(t, ctx)
	defer cleanup()

	router := setupRouter(db, logger)

	userID := uuid.New().String()

	t.Run("Create and list records", func(t *testing.T) {
		// Step 1: log a successful record
		recordID := createRecord(t, router, map[string]any{
			"user_id":          userID,
			"start_time":       "2024-03-06T08:30:00Z",
			"duration_seconds": 180,
			"success":          true,
			"amount":           "normal",
			"memo":             "after breakfast",
		})
		require.NotEmpty(t, recordID)

		// Step 2: log a failed attempt later the same day
		createRecord(t, router, map[string]any{
			"user_id":    userID,
			"start_time": "2024-03-06T13:00:00Z",
			"success":    false,
		})

		// Step 3: list the day's records
		w := doRequest(t, router, http.MethodGet,
			fmt.Sprintf("/api/v1/records?user_id=%s&period=day&date=2024-03-06", userID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var listResp struct {
			Records []map[string]any `json:"records"`
			Count   int              `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
		assert.Equal(t, 2, listResp.Count)
	})

	t.Run("Statistics summary", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet,
			fmt.Sprintf("/api/v1/statistics/summary?user_id=%s&period=month&date=2024-03-06", userID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var report struct {
			Period  string `json:"period"`
			Summary struct {
				TotalCount   int `json:"total_count"`
				SuccessCount int `json:"success_count"`
				SuccessRate  int `json:"success_rate"`
			} `json:"summary"`
			BestHour int `json:"best_hour"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, "month", report.Period)
		assert.Equal(t, 2, report.Summary.TotalCount)
		assert.Equal(t, 1, report.Summary.SuccessCount)
		assert.Equal(t, 50, report.Summary.SuccessRate)
		assert.GreaterOrEqual(t, report.BestHour, 0)
	})

	t.Run("Calendar view", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet,
			fmt.Sprintf("/api/v1/calendar/2024/3?user_id=%s", userID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var calResp struct {
			Year  int              `json:"year"`
			Month int              `json:"month"`
			Days  []map[string]any `json:"days"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &calResp))
		assert.Equal(t, 2024, calResp.Year)
		assert.Equal(t, 3, calResp.Month)
		// 5 padding cells before Friday March 1st plus 31 day cells
		assert.Len(t, calResp.Days, 36)
	})

	t.Run("Report downloads", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet,
			fmt.Sprintf("/api/v1/reports/pdf?user_id=%s&period=month&date=2024-03-06", userID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, "%PDF", w.Body.String()[:4])

		w = doRequest(t, router, http.MethodGet,
			fmt.Sprintf("/api/v1/reports/xlsx?user_id=%s&period=month&date=2024-03-06", userID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		assert.NotZero(t, w.Body.Len())
	})

	t.Run("Delete record", func(t *testing.T) {
		recordID := createRecord(t, router, map[string]any{
			"user_id":    userID,
			"start_time": "2024-03-07T09:00:00Z",
			"success":    true,
		})

		w := doRequest(t, router, http.MethodDelete,
			fmt.Sprintf("/api/v1/records/%s?user_id=%s", recordID, userID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		// Deleting again reports not found
		w = doRequest(t, router, http.MethodDelete,
			fmt.Sprintf("/api/v1/records/%s?user_id=%s", recordID, userID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Privacy export and purge", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet,
			fmt.Sprintf("/api/v1/privacy/export?user_id=%s", userID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var exportResp struct {
			UserID  string           `json:"user_id"`
			Records []map[string]any `json:"records"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exportResp))
		assert.Equal(t, userID, exportResp.UserID)
		assert.NotEmpty(t, exportResp.Records)

		w = doRequest(t, router, http.MethodDelete,
			fmt.Sprintf("/api/v1/privacy/data?user_id=%s", userID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var purgeResp struct {
			DeletedCount int64 `json:"deleted_count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &purgeResp))
		assert.NotZero(t, purgeResp.DeletedCount)

		// Everything is gone afterwards
		w = doRequest(t, router, http.MethodGet,
			fmt.Sprintf("/api/v1/records?user_id=%s&period=month&date=2024-03-06", userID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var listResp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
		assert.Zero(t, listResp.Count)
	})

	t.Run("Validation errors", func(t *testing.T) {
		// Amount on a failed attempt is rejected
		body, _ := json.Marshal(map[string]any{
			"user_id":    userID,
			"start_time": "2024-03-06T08:00:00Z",
			"success":    false,
			"amount":     "large",
		})
		w := doRequest(t, router, http.MethodPost, "/api/v1/records", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp handler.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	})
}

// setupTestDatabase starts a PostgreSQL testcontainer with the schema applied
func setupTestDatabase(t *testing.T, ctx context.Context) (*pgxpool.Pool, func()) {
	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("ohmypoop_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connString, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS poop_records (
			id UUID PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ,
			duration_seconds INTEGER CHECK (duration_seconds >= 0),
			success BOOLEAN NOT NULL,
			amount VARCHAR(50),
			memo TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id UUID PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			summary TEXT,
			content TEXT NOT NULL,
			category VARCHAR(100),
			image_url VARCHAR(1000),
			published_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			operation_type VARCHAR(50) NOT NULL,
			resource_type VARCHAR(50) NOT NULL,
			resource_id VARCHAR(255),
			timestamp TIMESTAMPTZ NOT NULL,
			ip_address VARCHAR(100),
			user_agent TEXT
		)`,
	}
	for _, migration := range migrations {
		_, err := pool.Exec(ctx, migration)
		require.NoError(t, err)
	}

	cleanup := func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return pool, cleanup
}

// setupRouter wires the full application stack against the test database
func setupRouter(db *pgxpool.Pool, logger *zap.Logger) *gin.Engine {
	recordRepo := repository.NewRecordRepository(db, logger)
	articleRepo := repository.NewArticleRepository(db, logger)
	auditLogger := audit.NewLogger(db, logger)

	pdfGenerator := pdf.NewGenerator(logger)
	excelExporter := export.NewExcelExporter(logger)

	recordService := service.NewRecordService(recordRepo, auditLogger, logger)
	statisticsService := service.NewStatisticsService(recordRepo, logger)
	articleService := service.NewArticleService(articleRepo, time.Hour, logger)
	reportService := service.NewReportService(recordRepo, pdfGenerator, excelExporter, logger)
	privacyService := service.NewPrivacyService(recordRepo, auditLogger, logger)

	recordHandler := handler.NewRecordHandler(recordService, logger)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, logger)
	articleHandler := handler.NewArticleHandler(articleService, 20, 100, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	privacyHandler := handler.NewPrivacyHandler(privacyService, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		v1.POST("/records", recordHandler.CreateRecord)
		v1.GET("/records", recordHandler.ListRecords)
		v1.DELETE("/records/:id", recordHandler.DeleteRecord)

		v1.GET("/statistics/summary", statisticsHandler.GetSummary)
		v1.GET("/calendar/:year/:month", statisticsHandler.GetCalendar)

		v1.GET("/articles", articleHandler.ListArticles)

		v1.GET("/reports/pdf", reportHandler.DownloadPDF)
		v1.GET("/reports/xlsx", reportHandler.DownloadXLSX)

		v1.GET("/privacy/export", privacyHandler.ExportData)
		v1.DELETE("/privacy/data", privacyHandler.PurgeData)
	}

	return router
}

// createRecord posts a record and returns its generated ID
func createRecord(t *testing.T, router *gin.Engine, payload map[string]any) string {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := doRequest(t, router, http.MethodPost, "/api/v1/records", body)
	require.Equal(t, http.StatusCreated, w.Code, "create failed: %s", w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.ID
}

// doRequest performs a request against the router and records the response
func doRequest(t *testing.T, router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
