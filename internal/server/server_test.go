package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/common"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/graph"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/rag"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type stubLLM struct{}

func (stubLLM) Generate(_ context.Context, _ string) (string, error) {
	return "All quiet on 15/9-19 A.", nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reports := []model.Report{
		{
			Filename: "a.pdf",
			Wellbore: "15/9-19 A",
			Operator: "Equinor Energy",
			DepthMD:  common.Float(2800),
			Operations: []model.Operation{
				{StartTime: "08:00", EndTime: "10:30", Depth: common.Float(2800), Activity: "drilling", State: model.StateOK, Remark: "Drilled ahead"},
			},
			Lithology: []model.LithologyInterval{
				{StartDepth: 2700, EndDepth: 2900, Description: "SANDSTONE"},
			},
			GasReadings: []model.GasReading{
				{Depth: common.Float(2795), GasPercentage: common.Float(1.8)},
			},
		},
	}

	index := rag.NewIndex(stubEmbedder{}, nil, stubLLM{}, "")
	require.NoError(t, index.AddReports(context.Background(), reports))

	return &Server{
		Reports:        reports,
		Graph:          graph.NewBuilder(1.2).Build(reports),
		Index:          index,
		Trends:         model.Trends{DepthProgress: []model.DepthPoint{}, GasTrends: []model.GasPoint{}, AnomalyTimeline: []model.AnomalyPoint{}},
		GasThreshold:   1.2,
		DepthTolerance: 10,
	}
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.SetupRouter().ServeHTTP(w, req)
	return w
}

func TestGetReports(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodGet, "/reports", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reports []model.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 1)
	assert.Equal(t, "15/9-19 A", resp.Reports[0].Wellbore)
}

func TestGetReportsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := &Server{Graph: graph.New(), Index: rag.NewIndex(nil, nil, nil, "")}

	w := doRequest(t, s, http.MethodGet, "/reports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reports": []}`, w.Body.String())
}

func TestGetWellbores(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodGet, "/wellbores", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"wellbores": ["15/9-19 A"]}`, w.Body.String())
}

func TestGetGraphStatistics(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodGet, "/graph/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats graph.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Wellbores)
	assert.Equal(t, 1, stats.Anomalies)
}

func TestGetGasPeaks(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/graph/gas-peaks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		GasPeaks []graph.GasPeak `json:"gas_peaks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.GasPeaks, 1)
	assert.Equal(t, 1.8, resp.GasPeaks[0].GasPercentage)

	// A higher threshold filters everything out but stays a 200.
	w = doRequest(t, s, http.MethodGet, "/graph/gas-peaks?threshold=2.5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"gas_peaks": []}`, w.Body.String())

	w = doRequest(t, s, http.MethodGet, "/graph/gas-peaks?threshold=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLithology(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/graph/lithology?wellbore=15%2F9-19+A&depth=2800", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"lithology": ["SANDSTONE"]}`, w.Body.String())

	w = doRequest(t, s, http.MethodGet, "/graph/lithology?depth=2800", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetActivities(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/graph/activities?wellbore=15%2F9-19+A&depth=2805", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Activities []graph.ActivityHit `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Activities, 1)
	assert.Equal(t, "drilling", resp.Activities[0].Activity)

	w = doRequest(t, s, http.MethodGet, "/graph/activities?wellbore=15%2F9-19+A", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/search", SearchRequest{Query: "drilling progress"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results []rag.SearchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "15/9-19 A", resp.Results[0].Metadata.Wellbore)

	w = doRequest(t, s, http.MethodPost, "/search", SearchRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAsk(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/ask", AskRequest{Question: "Any problems today?"})
	require.Equal(t, http.StatusOK, w.Code)

	var answer rag.Answer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))
	assert.Equal(t, "Any problems today?", answer.Question)
	assert.Equal(t, "All quiet on 15/9-19 A.", answer.Answer)
	assert.Equal(t, 1, answer.ContextUsed)

	w = doRequest(t, s, http.MethodPost, "/ask", AskRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
