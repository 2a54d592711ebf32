package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"shopdesk/internal/catalog"
	"shopdesk/internal/middleware"
	"shopdesk/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Search(ctx context.Context, criteria model.ProductCriteria) (*model.Page[model.Product], error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Product]), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) GetLowInventory(ctx context.Context, threshold int) (*model.LowInventoryReport, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LowInventoryReport), args.Error(1)
}

func (m *MockProductService) GetByCategory(ctx context.Context, category string) (*model.ProductCategoryResult, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductCategoryResult), args.Error(1)
}

// MockImporter is a mock implementation of CatalogImporter.
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, cat *catalog.Catalog, mode catalog.Mode) (*model.ImportResult, error) {
	args := m.Called(ctx, cat, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportResult), args.Error(1)
}

// MockCustomerService is a mock implementation of CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Search(ctx context.Context, criteria model.CustomerCriteria) (*model.Page[model.Customer], error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Customer]), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Create(ctx context.Context, input model.CustomerInput) (*model.Customer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id int64, input model.CustomerInput) (*model.Customer, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) GetWithHistory(ctx context.Context, id int64) (*model.CustomerHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerHistory), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Search(ctx context.Context, criteria model.OrderCriteria) (*model.Page[model.Order], error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Order]), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReportService is a mock implementation of ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetSalesSummary(ctx context.Context, start, end *time.Time) (model.SalesSummary, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(model.SalesSummary), args.Error(1)
}

func (m *MockReportService) GetDailySalesReport(ctx context.Context, days int) ([]model.DailySales, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailySales), args.Error(1)
}

func (m *MockReportService) GetInventoryValue(ctx context.Context) (model.InventoryValue, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.InventoryValue), args.Error(1)
}

func (m *MockReportService) GetTopSellingProducts(ctx context.Context, limit int) ([]model.TopSellingProduct, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TopSellingProduct), args.Error(1)
}

// serveRoute mounts h on a chi router under pattern so URL parameters
// resolve, then serves a single request against it.
func serveRoute(method, pattern string, h http.HandlerFunc, target string, body io.Reader) *httptest.ResponseRecorder {
	return serveRequest(method, pattern, h, httptest.NewRequest(method, target, body))
}

func serveRequest(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.MethodFunc(method, pattern, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newImportRequest(query string, body []byte, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/products/import"+query, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}
