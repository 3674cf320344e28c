package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
	"github.com/yasunstudio/sppg-app-sub005/internal/predict"
)

var frozenNow = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

type stubStore struct {
	history []contracts.HistoricalRecord
	live    []contracts.LiveCondition
	err     error

	gotDomain contracts.Domain
	gotSince  time.Time
	gotIDs    []string
}

func (s *stubStore) Historical(_ context.Context, domain contracts.Domain, since time.Time) ([]contracts.HistoricalRecord, error) {
	s.gotDomain = domain
	s.gotSince = since
	return s.history, s.err
}

func (s *stubStore) Live(_ context.Context, domain contracts.Domain, ids []string) ([]contracts.LiveCondition, error) {
	s.gotIDs = ids
	return s.live, s.err
}

type stubEnvironment struct {
	snapshot contracts.EnvironmentalSnapshot
	err      error
	calls    int
}

func (s *stubEnvironment) Snapshot() (contracts.EnvironmentalSnapshot, error) {
	s.calls++
	return s.snapshot, s.err
}

type stubSink struct {
	published []contracts.Alert
}

func (s *stubSink) Publish(_ context.Context, alerts []contracts.Alert) {
	s.published = append(s.published, alerts...)
}

type predictionResponse struct {
	Success bool                       `json:"success"`
	Error   string                     `json:"error"`
	Data    contracts.PredictionResult `json:"data"`
}

func newTestServer(store Store, env EnvironmentProvider, sink AlertSink) *Server {
	engine := predict.NewEngine(predict.DefaultParams()).WithClock(func() time.Time { return frozenNow })
	return NewServer(store, env, engine, sink).WithClock(func() time.Time { return frozenNow })
}

func doPredict(t *testing.T, server *Server, body string) (*httptest.ResponseRecorder, predictionResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/quality/predictions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	var resp predictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandlePredict_Success(t *testing.T) {
	days := 2
	store := &stubStore{
		live: []contracts.LiveCondition{
			{ID: "inv-1", Domain: contracts.DomainInventory, QualityStatus: "GOOD", Quantity: 50, DaysUntilExpiry: &days},
			{ID: "inv-2", Domain: contracts.DomainInventory, QualityStatus: "GOOD", Quantity: 10},
		},
	}
	sink := &stubSink{}
	server := newTestServer(store, nil, sink)

	rec, resp := doPredict(t, server, `{"targetType":"inventory","riskThreshold":0.3,"includeEnvironmentalFactors":false}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	assert.Equal(t, contracts.DomainInventory, resp.Data.TargetType)
	assert.Equal(t, 7, resp.Data.PredictionHorizon)

	require.Len(t, resp.Data.Predictions, 2)
	assert.Equal(t, "inv-1", resp.Data.Predictions[0].ItemID)
	assert.Equal(t, contracts.RiskHigh, resp.Data.Predictions[0].RiskLevel)

	require.Len(t, resp.Data.Alerts, 1)
	assert.Equal(t, "critical", resp.Data.Alerts[0].Severity)
	assert.Len(t, sink.published, 1)

	assert.Equal(t, 2, resp.Data.Summary.TotalItemsAnalyzed)
	assert.Equal(t, 1, resp.Data.Summary.HighRiskItems)

	// Lookback window is horizon x 4 days.
	assert.Equal(t, frozenNow.Add(-28*24*time.Hour), store.gotSince)
}

func TestHandlePredict_DefaultsOnEmptyBody(t *testing.T) {
	store := &stubStore{}
	env := &stubEnvironment{snapshot: contracts.EnvironmentalSnapshot{Temperature: 28, SeasonalFactor: 1, WeatherCondition: "sunny"}}
	server := newTestServer(store, env, nil)

	rec, resp := doPredict(t, server, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	assert.Equal(t, contracts.DomainProduction, resp.Data.TargetType)
	assert.Equal(t, 7, resp.Data.PredictionHorizon)
	assert.Equal(t, contracts.DomainProduction, store.gotDomain)
	assert.Equal(t, 1, env.calls)
}

func TestHandlePredict_EnvironmentOptOut(t *testing.T) {
	env := &stubEnvironment{}
	server := newTestServer(&stubStore{}, env, nil)

	_, resp := doPredict(t, server, `{"includeEnvironmentalFactors":false}`)
	require.True(t, resp.Success)
	assert.Zero(t, env.calls)
}

func TestHandlePredict_EnvironmentFailureTolerated(t *testing.T) {
	days := 2
	store := &stubStore{live: []contracts.LiveCondition{
		{ID: "inv-1", Domain: contracts.DomainInventory, QualityStatus: "GOOD", DaysUntilExpiry: &days},
	}}
	env := &stubEnvironment{err: errors.New("sensor feed down")}
	server := newTestServer(store, env, nil)

	rec, resp := doPredict(t, server, `{"targetType":"inventory"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	require.Len(t, resp.Data.Predictions, 1)
	// Confidence loses the environmental bonus but the run completes.
	assert.InDelta(t, 0.6, resp.Data.Predictions[0].ConfidenceLevel, 1e-9)
}

func TestHandlePredict_UnknownTargetTypeEmptyResult(t *testing.T) {
	server := newTestServer(&stubStore{}, nil, nil)

	rec, resp := doPredict(t, server, `{"targetType":"warehouse"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	assert.Empty(t, resp.Data.Predictions)
	assert.Empty(t, resp.Data.Alerts)
	assert.Empty(t, resp.Data.Recommendations)
	assert.Equal(t, 0, resp.Data.Summary.TotalItemsAnalyzed)
	assert.Zero(t, resp.Data.Summary.AverageQualityScore)
}

func TestHandlePredict_StoreFailure(t *testing.T) {
	server := newTestServer(&stubStore{err: errors.New("connection refused")}, nil, nil)

	rec, resp := doPredict(t, server, `{"targetType":"production"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to generate quality predictions", resp.Error)
	assert.Empty(t, resp.Data.Predictions)
}

func TestHandlePredict_MalformedBody(t *testing.T) {
	server := newTestServer(&stubStore{}, nil, nil)

	rec, resp := doPredict(t, server, `{"targetType":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid request body", resp.Error)
}

func TestHandlePredict_TargetIDsForwarded(t *testing.T) {
	store := &stubStore{}
	server := newTestServer(store, nil, nil)

	_, resp := doPredict(t, server, `{"targetType":"production","targetIds":["batch-1","batch-2"]}`)
	require.True(t, resp.Success)
	assert.Equal(t, []string{"batch-1", "batch-2"}, store.gotIDs)
}
