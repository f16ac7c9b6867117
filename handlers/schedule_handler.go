package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Akhil2453/NRLScoringApp/services"
)

const maxScheduleSize = 5 << 20 // spreadsheet exports are tiny; 5MB is generous

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// UploadSchedule accepts a multipart form with a single "file" part holding
// the CSV export.
func (h *ScheduleHandler) UploadSchedule(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxScheduleSize); err != nil {
		badRequestResponse(w, r, errors.New("request must be multipart/form-data with a file part"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, errors.New("file part is required"))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		badRequestResponse(w, r, errors.New("invalid file format, upload a CSV"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxScheduleSize))
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	result, err := h.scheduleService.UploadSchedule(r.Context(), header.Filename, data)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":       "Schedule uploaded successfully",
		"matches_added": result.MatchesAdded,
		"teams_added":   result.TeamsAdded,
	}
	if result.ArchiveURL != "" {
		response["archive_url"] = result.ArchiveURL
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
