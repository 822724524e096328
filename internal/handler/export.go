package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/passforge/passforge-go/internal/export"
	"github.com/passforge/passforge-go/internal/model"
)

// HandleExport handles POST /api/v1/export?format=... requests.
func HandleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var req model.ExportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, req.Passwords); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.DefaultFilename()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
