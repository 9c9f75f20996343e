//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"farewatch/internal/handler/api"
	resdto "farewatch/internal/handler/dto/response"
	"farewatch/internal/pkg/errs"
	"farewatch/internal/usecase/queries"
	"farewatch/tests/common/httptest"
	queriesmock "farewatch/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DealHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockDealQueries
	handler     *api.DealHandler
}

func (s *DealHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockDealQueries(s.mockCtrl)
	s.handler = api.NewDealHandler(s.mockQueries)

	s.router.GET("/deals", s.handler.ListDeals)
}

func (s *DealHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDealHandlerSuite(t *testing.T) {
	suite.Run(t, new(DealHandlerTestSuite))
}

func sampleDealView() *queries.DealView {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	return &queries.DealView{
		ID:            uuid.New(),
		Origin:        "JFK",
		Destination:   "LHR",
		Price:         decimal.RequireFromString("489.99"),
		Currency:      "USD",
		Airline:       "VS",
		DepartureDate: now.AddDate(0, 1, 0),
		Score:         85,
		AffiliateLink: "https://example.com/deal",
		CreatedAt:     now,
		ExpiresAt:     now.AddDate(0, 0, 7),
	}
}

func (s *DealHandlerTestSuite) TestListDeals() {
	s.Run("success: returns formatted deals", func() {
		s.mockQueries.EXPECT().ActiveDeals(gomock.Any(), 0, 0).
			Return([]*queries.DealView{sampleDealView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals", nil, "")

		var body resdto.DealsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Deals, 1)
		s.Equal("489.99", body.Deals[0].Price)
		s.Equal(85, body.Deals[0].Score)
	})

	s.Run("query params are forwarded", func() {
		s.mockQueries.EXPECT().ActiveDeals(gomock.Any(), 70, 10).
			Return([]*queries.DealView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals?min_score=70&limit=10", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on bad min_score", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals?min_score=abc", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 on bad limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals?limit=abc", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: query failure is 500", func() {
		s.mockQueries.EXPECT().ActiveDeals(gomock.Any(), 0, 0).
			Return(nil, errs.New("db down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals", nil, "")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}
