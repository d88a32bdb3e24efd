package api

import (
	"net/http"

	"smart-extract/auth"
	"smart-extract/config"
	"smart-extract/history"
	"smart-extract/logging"
)

func RegisterHandlers(cfg *config.Config, users *auth.UsersFile, store *history.Store, accessLogger, loginLogger *logging.Logger) {
	http.HandleFunc("/api/login", LoginHandler(cfg, users, loginLogger))
	http.HandleFunc("/api/runs", RunsHandler(cfg, store, accessLogger))
	http.HandleFunc("/api/runs/last", LastRunHandler(cfg, store, accessLogger))
	http.HandleFunc("/api/reports/download", DownloadHandler(cfg, accessLogger))
}

func StartServer(listenAddr string) error {
	return http.ListenAndServe(listenAddr, nil)
}
