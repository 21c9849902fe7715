package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/internal/application/usecase"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/infrastructure/tabular"
)

const maxBodyBytes = 10 << 20

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error           string   `json:"error"`
	MissingFeatures []string `json:"missing_features,omitempty"`
}

// ScoringHandler exposes the scoring use cases over HTTP.
type ScoringHandler struct {
	scoreClients     *usecase.ScoreClients
	getFeatureSchema *usecase.GetFeatureSchema
	logger           *slog.Logger
}

// NewScoringHandler creates a new ScoringHandler.
func NewScoringHandler(
	scoreClients *usecase.ScoreClients,
	getFeatureSchema *usecase.GetFeatureSchema,
	logger *slog.Logger,
) *ScoringHandler {
	return &ScoringHandler{
		scoreClients:     scoreClients,
		getFeatureSchema: getFeatureSchema,
		logger:           logger,
	}
}

// RegisterRoutes registers the scoring endpoints on the provided ServeMux.
func (h *ScoringHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/score", h.Score)
	mux.HandleFunc("GET /v1/schema", h.Schema)
}

// Score handles POST /v1/score. The body is either a JSON ScoreClientsPayload
// or delimited text with a header row, in which case the risk parameters come
// from the lgd_percent, ead and currency query parameters.
func (h *ScoringHandler) Score(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := h.decodeRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()}, h.logger)
		return
	}

	resp, err := h.scoreClients.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp, h.logger)
}

// Schema handles GET /v1/schema.
func (h *ScoringHandler) Schema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.getFeatureSchema.Execute(), h.logger)
}

func (h *ScoringHandler) decodeRequest(r *http.Request) (dto.ScoreClientsRequest, error) {
	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return dto.ScoreClientsRequest{}, fmt.Errorf("invalid content type: %w", err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "text/csv", "text/plain", "text/tab-separated-values":
		records, err := tabular.Read(r.Body)
		if err != nil {
			return dto.ScoreClientsRequest{}, fmt.Errorf("invalid tabular body: %w", err)
		}
		q := r.URL.Query()
		return dto.ScoreClientsRequest{
			LGDPercent: q.Get("lgd_percent"),
			EAD:        q.Get("ead"),
			Currency:   q.Get("currency"),
			Records:    records,
		}, nil
	case "application/json":
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var payload dto.ScoreClientsPayload
		if err := dec.Decode(&payload); err != nil {
			return dto.ScoreClientsRequest{}, fmt.Errorf("invalid JSON body: %w", err)
		}
		return payload.ToRequest(), nil
	default:
		return dto.ScoreClientsRequest{}, fmt.Errorf("unsupported content type %q", mediaType)
	}
}

func (h *ScoringHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if usecase.IsInvalidInput(err) {
		resp := ErrorResponse{Error: err.Error()}
		var missing *model.MissingFeatureError
		if errors.As(err, &missing) {
			resp.MissingFeatures = missing.Missing
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp, h.logger)
		return
	}

	h.logger.ErrorContext(r.Context(), "failed to score clients", "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to score clients"}, h.logger)
}
