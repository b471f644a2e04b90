package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/finpulse/finpulse-cli/internal/metrics"
	"github.com/finpulse/finpulse-cli/internal/model"
	"github.com/finpulse/finpulse-cli/internal/percentile"
	"github.com/finpulse/finpulse-cli/internal/questionnaire"
	"github.com/finpulse/finpulse-cli/internal/recommend"
	"github.com/finpulse/finpulse-cli/internal/store"
)

type scoreRequest struct {
	Answers model.AnswerMap `json:"answers"`
}

type percentileRequest struct {
	Age     int             `json:"age"`
	Answers model.AnswerMap `json:"answers"`
}

type saveResultRequest struct {
	UserID  string          `json:"user_id,omitempty"`
	Age     int             `json:"age"`
	Answers model.AnswerMap `json:"answers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		writeError(w, http.StatusBadRequest, "answers is required")
		return
	}

	result := s.engine.ComputeScore(req.Answers)
	metrics.AssessmentsScored.WithLabelValues("api").Inc()
	metrics.ScoreDistribution.Observe(float64(result.Percentage))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		writeError(w, http.StatusBadRequest, "answers is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": recommend.Generate(req.Answers),
	})
}

func (s *Server) handlePercentiles(w http.ResponseWriter, r *http.Request) {
	var req percentileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Age == 0 {
		req.Age = int(req.Answers.Number(questionnaire.QAge))
	}

	bucket, err := percentile.AgeBucket(req.Age)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid age")
		return
	}

	peers, err := s.store.FindPeerSample(r.Context(), bucket)
	if err != nil {
		zap.L().Error("peer sample lookup failed", zap.String("bucket", bucket), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to calculate percentiles")
		return
	}

	result := s.engine.ComputeScore(req.Answers)
	ranked := percentile.Compute(bucket, result, peers)

	resp := map[string]any{"percentiles": ranked}
	if ranked.TotalPercentile == nil {
		// Too few peers for a real ranking; fall back to population
		// benchmarks so the caller still gets something to show.
		metrics.PercentileLookups.WithLabelValues("benchmark").Inc()
		resp["benchmark"] = percentile.EstimateBenchmark(req.Age, req.Answers)
	} else {
		metrics.PercentileLookups.WithLabelValues("peers").Inc()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveResult(w http.ResponseWriter, r *http.Request) {
	var req saveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		writeError(w, http.StatusBadRequest, "answers is required")
		return
	}
	if req.Age == 0 {
		req.Age = int(req.Answers.Number(questionnaire.QAge))
	}

	bucket, err := percentile.AgeBucket(req.Age)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid age")
		return
	}

	result := s.engine.ComputeScore(req.Answers)
	saved, err := s.store.SaveResult(r.Context(), &model.SavedResult{
		UserID:    req.UserID,
		Key:       req.Answers.Hash(),
		Age:       req.Age,
		AgeBucket: bucket,
		Answers:   req.Answers,
		Result:    result,
	})
	if err != nil {
		metrics.StoreOperations.WithLabelValues("save_result", "error").Inc()
		zap.L().Error("save result failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save result")
		return
	}
	metrics.StoreOperations.WithLabelValues("save_result", "ok").Inc()
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := s.store.GetResult(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	filter := store.ResultFilter{
		UserID:    r.URL.Query().Get("user_id"),
		AgeBucket: r.URL.Query().Get("age_bucket"),
	}

	results, err := s.store.ListResults(r.Context(), filter)
	if err != nil {
		zap.L().Error("list results failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list results")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
