package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"smart-extract/auth"
	"smart-extract/config"
	"smart-extract/history"
	"smart-extract/logging"
)

type runPayload struct {
	ID         string `json:"id"`
	ReportID   string `json:"report_id"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	File       string `json:"file"`
	Object     string `json:"object"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Error      string `json:"error,omitempty"`
}

func toPayload(r history.Run) runPayload {
	const layout = "2006-01-02 15:04:05"
	return runPayload{
		ID:         r.ID,
		ReportID:   r.ReportID,
		Status:     r.Status,
		Rows:       r.Rows,
		File:       r.File,
		Object:     r.Object,
		StartedAt:  r.StartedAt.Format(layout),
		FinishedAt: r.FinishedAt.Format(layout),
		Error:      r.Error,
	}
}

// RunsHandler liste les derniers runs d'extraction (paramètre GET limit)
func RunsHandler(cfg *config.Config, store *history.Store, accessLogger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, _, err := auth.ExtractUserAndAdminFromJWT(r, cfg.JWT.Secret)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if store == nil {
			http.Error(w, "Historique désactivé", http.StatusNotFound)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		runs, err := store.LastRuns(limit)
		if err != nil {
			http.Error(w, "Erreur historique", http.StatusInternalServerError)
			accessLogger.Write("RUNS FAIL user=" + username + " " + err.Error())
			return
		}
		out := []runPayload{}
		for _, run := range runs {
			out = append(out, toPayload(run))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
		accessLogger.Write("RUNS OK user=" + username)
	}
}

// LastRunHandler renvoie le dernier run d'un rapport (paramètre GET report)
func LastRunHandler(cfg *config.Config, store *history.Store, accessLogger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, _, err := auth.ExtractUserAndAdminFromJWT(r, cfg.JWT.Secret)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if store == nil {
			http.Error(w, "Historique désactivé", http.StatusNotFound)
			return
		}
		reportID := r.URL.Query().Get("report")
		if reportID == "" {
			http.Error(w, "Missing report", http.StatusBadRequest)
			return
		}
		run, err := store.LastRunFor(reportID)
		if err != nil {
			http.Error(w, "Erreur historique", http.StatusInternalServerError)
			accessLogger.Write("LASTRUN FAIL user=" + username + " " + err.Error())
			return
		}
		if run == nil {
			http.Error(w, "Aucun run pour ce rapport", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toPayload(*run))
		accessLogger.Write("LASTRUN OK user=" + username + " report=" + reportID)
	}
}
