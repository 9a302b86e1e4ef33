package drive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/andresuchdata/storeops/internal/ingest"
	"github.com/gorilla/mux"
)

// Handler exposes manual Drive browsing and on-demand workbook ingestion
// for the importer process.
type Handler struct {
	service *Service
	ingest  *ingest.Service
}

func NewHandler(service *Service, ingestSvc *ingest.Service) *Handler {
	return &Handler{service: service, ingest: ingestSvc}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/drive/files", h.ListFiles).Methods("GET")
	router.HandleFunc("/api/drive/ingest", h.IngestFile).Methods("POST")
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderID := query.Get("folderId")

	if path := query.Get("path"); path != "" {
		resolved, err := h.service.FindFolderByPath(path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		folderID = resolved
	}

	files, err := h.service.ListWorkbooks(folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

func (h *Handler) IngestFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.URL.Query().Get("fileId")
	if fileID == "" {
		http.Error(w, "fileId parameter is required", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.service.DownloadFile(fileID, &buf); err != nil {
		http.Error(w, fmt.Sprintf("download failed: %v", err), http.StatusInternalServerError)
		return
	}

	summary, err := h.ingest.IngestReader(r.Context(), &buf)
	if err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
