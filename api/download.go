package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"smart-extract/auth"
	"smart-extract/config"
	"smart-extract/logging"
	"smart-extract/utils"
)

// DownloadHandler sert le dernier fichier extrait d'un rapport (nécessite JWT valide)
// Paramètres GET : id (obligatoire), type=csv|xlsx (optionnel, défaut : csv)
func DownloadHandler(cfg *config.Config, accessLogger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, _, err := auth.ExtractUserAndAdminFromJWT(r, cfg.JWT.Secret)
		if err != nil {
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		reportID := r.URL.Query().Get("id")
		if reportID == "" {
			http.Error(w, "Paramètre id manquant", http.StatusBadRequest)
			return
		}
		// l'id sert de segment de chemin, on refuse toute traversée
		if reportID != filepath.Base(reportID) || strings.HasPrefix(reportID, ".") {
			http.Error(w, "Id invalide", http.StatusBadRequest)
			return
		}

		fileType := r.URL.Query().Get("type")
		if fileType == "" {
			fileType = "csv"
		}

		dataDir := utils.ResolvePath(cfg.Extract.DataDir)
		var filePath, contentType string
		switch strings.ToLower(fileType) {
		case "excel", "xlsx":
			filePath = filepath.Join(dataDir, reportID, reportID+".xlsx")
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		default:
			filePath = filepath.Join(dataDir, reportID, reportID+".csv")
			contentType = "text/csv"
		}

		if _, err := os.Stat(filePath); err != nil {
			http.Error(w, "Fichier non trouvé pour ce rapport", http.StatusNotFound)
			return
		}

		accessLogger.Writef("DOWNLOAD user=%s id=%s type=%s path=%s", username, reportID, fileType, filePath)

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filepath.Base(filePath)))
		http.ServeFile(w, r, filePath)
	}
}
