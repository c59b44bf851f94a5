package generate_excel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dashboard-curvas/internal/service/curvas"
	"dashboard-curvas/internal/storage"
)

type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) GenerateCurvaS(ctx context.Context, scope storage.Scope, f curvas.Filter) ([]byte, error) {
	args := m.Called(ctx, scope, f)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func TestGenerateReportExcel_Success(t *testing.T) {
	gen := new(MockReportGenerator)
	gen.On("GenerateCurvaS", mock.Anything, storage.Scope{Lider: "Ana"}, curvas.Filter{Projetos: []string{"P1"}}).
		Return([]byte("PK-xlsx"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/report/curva-s/excel?projeto=P1", nil)
	req.Header.Set("X-Lider", "Ana")
	rr := httptest.NewRecorder()

	GenerateReportExcel(slog.Default(), gen, 0).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Curva_S_")
	assert.Equal(t, "PK-xlsx", rr.Body.String())
	gen.AssertExpectations(t)
}

func TestGenerateReportExcel_Error(t *testing.T) {
	gen := new(MockReportGenerator)
	gen.On("GenerateCurvaS", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	req := httptest.NewRequest(http.MethodGet, "/api/report/curva-s/excel", nil)
	rr := httptest.NewRecorder()

	GenerateReportExcel(slog.Default(), gen, 0).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
