package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/converter"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/models"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/repo"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/service"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/currencies"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/database"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/integrations/memcache"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubLister struct {
	mu   sync.Mutex
	list []convert.Currency
	err  error
}

func (s *stubLister) TopCryptos(ctx context.Context) ([]convert.Currency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list, s.err
}

// stubConverter prices every crypto at 65000 per unit unless err is set.
type stubConverter struct {
	mu    sync.Mutex
	err   error
	calls atomic.Int32
}

func (s *stubConverter) ConvertCurrency(ctx context.Context, req convert.Request) (convert.Result, error) {
	s.calls.Add(1)
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return convert.Result{}, err
	}
	amount, err := convert.ParseAmount(req.Amount)
	if err != nil {
		return convert.Result{}, err
	}
	return convert.Result{ConvertedAmount: amount.Mul(decimal.NewFromInt(65000))}, nil
}

type ControllerTestSuite struct {
	suite.Suite
	ctx       context.Context
	cancel    context.CancelFunc
	db        *database.Database
	repo      *repo.Repository
	lister    *stubLister
	converter *stubConverter
	ctrl      *Controller
	router    *gin.Engine
}

func (s *ControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctx, s.cancel = context.WithCancel(context.Background())

	db, err := database.New(database.WithLogger(discardLogger))
	s.Require().NoError(err)
	s.db = db

	repository, err := repo.New(db.Get())
	s.Require().NoError(err)
	s.Require().NoError(repository.Migrate())
	s.repo = repository

	journal, err := service.NewJournal(
		service.WithJournalLogger(discardLogger),
		service.WithJournalRepo(repository),
		service.WithJournalSource(models.SourceAPI),
	)
	s.Require().NoError(err)

	s.lister = &stubLister{list: []convert.Currency{
		{ID: "1", Name: "Bitcoin", Symbol: "BTC"},
		{ID: "1027", Name: "Ethereum", Symbol: "ETH"},
	}}
	s.converter = &stubConverter{}

	ctrl, err := New(
		WithContext(s.ctx),
		WithLogger(discardLogger),
		WithRepository(repository),
		WithLister(s.lister),
		WithConverter(s.converter),
		WithJournals(journal, journal.WithSource(models.SourceWidget)),
		WithDebounceDelay(5*time.Millisecond),
		WithSessions(memcache.New[string, *converter.Controller]()),
		WithCatalog(currencies.Catalog{Fiat: []string{"USD", "EUR"}, Crypto: []string{"ETH"}}),
		WithCatalogAge(func() (time.Duration, bool) { return 90 * time.Second, true }),
	)
	s.Require().NoError(err)
	s.ctrl = ctrl

	s.router = gin.New()
	api := s.router.Group("/api")
	api.GET("/health", ctrl.Health)
	api.GET("/cryptos", ctrl.ListCryptos)
	api.GET("/currencies", ctrl.ListCurrencies)
	api.POST("/convert", ctrl.Convert)
	api.GET("/conversions", ctrl.ListConversions)
	api.GET("/conversions/stats", ctrl.ConversionStats)
	api.GET("/conversions/:id", ctrl.GetConversion)
	api.GET("/converter/ws", ctrl.ConverterSession)
}

func (s *ControllerTestSuite) TearDownTest() {
	s.cancel()
	s.Require().NoError(s.db.Close())
}

func (s *ControllerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ControllerTestSuite) TestNew_InvalidConfig() {
	_, err := New(WithContext(s.ctx), WithLogger(discardLogger))
	s.ErrorIs(err, ErrInvalidControllerConfig)

	_, err = New(
		WithContext(s.ctx),
		WithLogger(discardLogger),
		WithRepository(s.repo),
		WithLister(s.lister),
		WithConverter(s.converter),
	)
	s.ErrorIs(err, ErrInvalidControllerConfig)
}

func (s *ControllerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp HealthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("ok", resp.Status)
	s.Equal(0, resp.Sessions)
	s.Equal(90.0, resp.CatalogAgeSeconds)
}

func (s *ControllerTestSuite) TestListCryptos() {
	w := s.do(http.MethodGet, "/api/cryptos", nil)
	s.Equal(http.StatusOK, w.Code)

	var list []convert.Currency
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Require().Len(list, 2)
	s.Equal("BTC", list[0].Symbol)
	s.Equal(convert.ID("1027"), list[1].ID)
}

func (s *ControllerTestSuite) TestListCryptos_RemoteFailure() {
	s.lister.mu.Lock()
	s.lister.err = errors.New("unexpected status code: 503")
	s.lister.mu.Unlock()

	w := s.do(http.MethodGet, "/api/cryptos", nil)
	s.Equal(http.StatusBadGateway, w.Code)

	var apiErr APIError
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &apiErr))
	s.Equal("Failed to fetch cryptocurrencies", apiErr.Error)
	s.Contains(apiErr.Details, "503")
}

func (s *ControllerTestSuite) TestListCurrencies() {
	w := s.do(http.MethodGet, "/api/currencies", nil)
	s.Equal(http.StatusOK, w.Code)

	var cat currencies.Catalog
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cat))
	s.Equal([]string{"USD", "EUR"}, cat.Fiat)
	s.Equal([]string{"ETH"}, cat.Crypto)
}

func (s *ControllerTestSuite) TestConvert() {
	w := s.do(http.MethodPost, "/api/convert", ConvertRequest{Symbol: "btc", Amount: "1.5"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp ConvertResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("BTC", resp.Symbol)
	s.Equal("1.5", resp.Amount)
	s.Equal("USD", resp.Convert)
	s.Equal("97500", resp.ConvertedAmount)

	conversions, err := s.repo.ListConversions(repo.ConversionFilter{})
	s.Require().NoError(err)
	s.Require().Len(conversions, 1)
	s.Equal(models.SourceAPI, conversions[0].Source)
	s.Equal("97500", conversions[0].ConvertedAmount)
}

func (s *ControllerTestSuite) TestConvert_InvalidRequests() {
	tests := []struct {
		name string
		body ConvertRequest
	}{
		{"zero amount", ConvertRequest{Symbol: "BTC", Amount: "0"}},
		{"negative amount", ConvertRequest{Symbol: "BTC", Amount: "-2"}},
		{"non numeric amount", ConvertRequest{Symbol: "BTC", Amount: "abc"}},
		{"missing amount", ConvertRequest{Symbol: "BTC"}},
		{"missing symbol", ConvertRequest{Amount: "1"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/api/convert", tt.body)
			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
	s.Equal(int32(0), s.converter.calls.Load())
}

func (s *ControllerTestSuite) TestConvert_RemoteFailureIsJournaled() {
	s.converter.mu.Lock()
	s.converter.err = errors.New("timeout")
	s.converter.mu.Unlock()

	w := s.do(http.MethodPost, "/api/convert", ConvertRequest{Symbol: "ETH", Amount: "2", Convert: "eur"})
	s.Equal(http.StatusBadGateway, w.Code)

	conversions, err := s.repo.ListConversions(repo.ConversionFilter{})
	s.Require().NoError(err)
	s.Require().Len(conversions, 1)
	s.Equal("EUR", conversions[0].Convert)
	s.Equal("timeout", conversions[0].Error)
}

func (s *ControllerTestSuite) TestListConversions() {
	for _, amount := range []string{"1", "2", "3"} {
		w := s.do(http.MethodPost, "/api/convert", ConvertRequest{Symbol: "BTC", Amount: amount})
		s.Require().Equal(http.StatusOK, w.Code)
	}

	w := s.do(http.MethodGet, "/api/conversions?limit=2", nil)
	s.Equal(http.StatusOK, w.Code)

	var conversions []models.Conversion
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &conversions))
	s.Require().Len(conversions, 2)
	s.Equal("3", conversions[0].Amount)
	s.Equal("2", conversions[1].Amount)

	w = s.do(http.MethodGet, "/api/conversions?limit=many", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/conversions?source=widget", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", w.Body.String())
}

func (s *ControllerTestSuite) TestGetConversion() {
	s.do(http.MethodPost, "/api/convert", ConvertRequest{Symbol: "BTC", Amount: "1"})

	conversions, err := s.repo.ListConversions(repo.ConversionFilter{})
	s.Require().NoError(err)
	s.Require().Len(conversions, 1)

	w := s.do(http.MethodGet, fmt.Sprintf("/api/conversions/%d", conversions[0].ID), nil)
	s.Equal(http.StatusOK, w.Code)

	var got models.Conversion
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("65000", got.ConvertedAmount)

	w = s.do(http.MethodGet, "/api/conversions/9999", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/conversions/abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ControllerTestSuite) TestConversionStats() {
	s.do(http.MethodPost, "/api/convert", ConvertRequest{Symbol: "BTC", Amount: "1"})

	w := s.do(http.MethodGet, "/api/conversions/stats", nil)
	s.Equal(http.StatusOK, w.Code)

	var stats models.ConversionStats
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &stats))
	s.Equal(int64(1), stats.Total)
	s.Equal(int64(0), stats.Failed)
	s.Equal(int64(1), stats.BySource[models.SourceAPI])
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func TestAPIErrorShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	badGateway(ctx, "Conversion failed", "timeout")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"details":"timeout"`))
}

// websocket helpers

func (s *ControllerTestSuite) dial() (*websocket.Conn, *httptest.Server) {
	server := httptest.NewServer(s.router)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/converter/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	resp.Body.Close()
	return conn, server
}

// wireFrame reads the list state as sent, since ListState only marshals.
type wireFrame struct {
	SessionFrame
	ListState string `json:"listState"`
}

var listLoaded = converter.ListLoaded.String()

func (s *ControllerTestSuite) readUntil(conn *websocket.Conn, match func(wireFrame) bool) wireFrame {
	deadline := time.Now().Add(3 * time.Second)
	s.Require().NoError(conn.SetReadDeadline(deadline))
	for {
		var frame wireFrame
		s.Require().NoError(conn.ReadJSON(&frame))
		if match(frame) {
			return frame
		}
	}
}

func (s *ControllerTestSuite) sessions() int {
	w := s.do(http.MethodGet, "/api/health", nil)
	var resp HealthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Sessions
}

func (s *ControllerTestSuite) TestConverterSession() {
	conn, server := s.dial()
	defer server.Close()

	first := s.readUntil(conn, func(f wireFrame) bool { return f.ListState == listLoaded })
	s.NotEmpty(first.Session)
	s.Len(first.Cryptos, 2)
	s.Equal("-", first.Display)
	s.Equal(1, s.sessions())

	s.Require().NoError(conn.WriteJSON(FieldUpdate{Field: "amount", Value: "2"}))
	done := s.readUntil(conn, func(f wireFrame) bool {
		return f.ConvertedAmount != nil && *f.ConvertedAmount != ""
	})
	s.Equal("130000", *done.ConvertedAmount)
	s.Equal("130000 BTC", done.Display)
	s.Equal(first.Session, done.Session)

	s.Require().NoError(conn.WriteJSON(FieldUpdate{Field: "amount", Value: ""}))
	cleared := s.readUntil(conn, func(f wireFrame) bool { return f.Amount == "" && f.ConvertedAmount == nil })
	s.Equal("-", cleared.Display)

	conversions, err := s.repo.ListConversions(repo.ConversionFilter{Source: models.SourceWidget})
	s.Require().NoError(err)
	s.Require().Len(conversions, 1)
	s.Equal("2", conversions[0].Amount)

	s.Require().NoError(conn.Close())
	s.Eventually(func() bool { return s.sessions() == 0 }, 3*time.Second, 10*time.Millisecond)
}

func (s *ControllerTestSuite) TestConverterSession_BadFrames() {
	conn, server := s.dial()
	defer server.Close()
	defer conn.Close()

	s.readUntil(conn, func(f wireFrame) bool { return f.ListState == listLoaded })

	s.Require().NoError(conn.WriteJSON(FieldUpdate{Field: "colour", Value: "red"}))
	frame := s.readUntil(conn, func(f wireFrame) bool { return f.Error != "" })
	s.Equal("unknown field colour", frame.Error)

	for _, bad := range []string{"{not json", "{", `{"field": 1}`} {
		s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(bad)))
		frame = s.readUntil(conn, func(f wireFrame) bool { return f.Error != "" })
		s.Equal("invalid frame", frame.Error, bad)
	}

	s.Require().NoError(conn.WriteJSON(FieldUpdate{Field: "symbol", Value: "ETH"}))
	frame = s.readUntil(conn, func(f wireFrame) bool { return f.Symbol == "ETH" })
	s.Empty(frame.Error)
}
