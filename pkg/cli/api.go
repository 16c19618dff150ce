package cli

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mchmarny/acmg/pkg/data"
	"github.com/mchmarny/acmg/pkg/score"
)

const maxScoreBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func queryParamInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Error("error converting query string to int", "value", v, "error", err)
		return def
	}

	if i < 1 {
		return def
	}

	return i
}

func healthAPIHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version,
	})
}

func codesAPIHandler(w http.ResponseWriter, r *http.Request) {
	list, err := filterCodes(r.URL.Query().Get("category"), r.URL.Query().Get("strength"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ScoreRequest is the POST /api/score payload.
type ScoreRequest struct {
	Evidence string `json:"evidence"`
	NoSave   bool   `json:"no_save,omitempty"`
}

func scoreAPIHandler(db *data.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxScoreBodyBytes)

		var req ScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("error binding json", "error", err)
			writeError(w, http.StatusBadRequest, "error binding json")
			return
		}

		res, err := score.Evaluate(req.Evidence)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if !req.NoSave {
			if _, saveErr := data.SaveEvaluation(db, res); saveErr != nil {
				slog.Error("failed to save evaluation", "error", saveErr)
			}
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func historyAPIHandler(db *data.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		class := r.URL.Query().Get("class")
		if class != "" && !score.Classification(class).Valid() {
			writeError(w, http.StatusBadRequest, "invalid classification filter")
			return
		}

		q := &data.EvaluationQuery{
			Classification: class,
			Limit:          queryParamInt(r, "limit", data.QueryLimitDefault),
		}

		list, err := data.QueryEvaluations(db, q)
		if err != nil {
			slog.Error("failed to query history", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying history")
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}
