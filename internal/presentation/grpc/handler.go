package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/internal/application/usecase"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

// Compile-time assertion that CreditRiskHandler implements CreditRiskServiceServer.
var _ CreditRiskServiceServer = (*CreditRiskHandler)(nil)

// CreditRiskHandler implements the gRPC CreditRiskServiceServer interface.
type CreditRiskHandler struct {
	UnimplementedCreditRiskServiceServer
	scoreClients     *usecase.ScoreClients
	getFeatureSchema *usecase.GetFeatureSchema
	logger           *slog.Logger
}

// NewCreditRiskHandler creates a new gRPC handler.
func NewCreditRiskHandler(
	scoreClients *usecase.ScoreClients,
	getFeatureSchema *usecase.GetFeatureSchema,
	logger *slog.Logger,
) *CreditRiskHandler {
	return &CreditRiskHandler{
		scoreClients:     scoreClients,
		getFeatureSchema: getFeatureSchema,
		logger:           logger,
	}
}

// Proto-aligned request/response message types.

// ScoreClientsRequest represents the proto ScoreClientsRequest message.
// An unset lgd_percent or exposure falls back to the service defaults.
type ScoreClientsRequest struct {
	Exposure   *MoneyMsg          `json:"exposure"`
	LGDPercent string             `json:"lgd_percent"`
	Records    []*ClientRecordMsg `json:"records"`
}

// ClientRecordMsg represents the proto ClientRecord message.
type ClientRecordMsg struct {
	Features map[string]string `json:"features"`
}

// MoneyMsg represents the proto Money message.
type MoneyMsg struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// ScoreResultMsg represents the proto ScoreResult message.
type ScoreResultMsg struct {
	EAD          *MoneyMsg `json:"ead"`
	ExpectedLoss *MoneyMsg `json:"expected_loss"`
	RiskLevel    string    `json:"risk_level"`
	LGD          string    `json:"lgd"`
	PD           float64   `json:"pd"`
	Row          int32     `json:"row"`
}

// ScoreClientsResponse represents the proto ScoreClientsResponse message.
type ScoreClientsResponse struct {
	Exposure          *MoneyMsg         `json:"exposure"`
	TotalExpectedLoss *MoneyMsg         `json:"total_expected_loss"`
	AssessmentID      string            `json:"assessment_id"`
	LGDPercent        string            `json:"lgd_percent"`
	ScoredAt          string            `json:"scored_at"`
	Results           []*ScoreResultMsg `json:"results"`
}

// GetFeatureSchemaRequest represents the proto GetFeatureSchemaRequest message.
type GetFeatureSchemaRequest struct{}

// FeatureMsg represents the proto Feature message.
type FeatureMsg struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Min         float64 `json:"min"`
	Position    int32   `json:"position"`
}

// GetFeatureSchemaResponse represents the proto GetFeatureSchemaResponse message.
type GetFeatureSchemaResponse struct {
	Features []*FeatureMsg `json:"features"`
}

// ScoreClients handles the ScoreClients RPC.
func (h *CreditRiskHandler) ScoreClients(ctx context.Context, req *ScoreClientsRequest) (*ScoreClientsResponse, error) {
	if req == nil || len(req.Records) == 0 {
		return nil, status.Error(codes.InvalidArgument, "at least one record is required")
	}

	records := make([]model.ClientRecord, 0, len(req.Records))
	for i, r := range req.Records {
		if r == nil {
			return nil, status.Errorf(codes.InvalidArgument, "record %d is empty", i)
		}
		records = append(records, model.ClientRecord(r.Features))
	}

	ucReq := dto.ScoreClientsRequest{
		LGDPercent: req.LGDPercent,
		Records:    records,
	}
	if req.Exposure != nil {
		ucReq.EAD = req.Exposure.Amount
		ucReq.Currency = req.Exposure.Currency
	}

	resp, err := h.scoreClients.Execute(ctx, ucReq)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return toScoreClientsResponse(resp), nil
}

// GetFeatureSchema handles the GetFeatureSchema RPC.
func (h *CreditRiskHandler) GetFeatureSchema(_ context.Context, _ *GetFeatureSchemaRequest) (*GetFeatureSchemaResponse, error) {
	resp := h.getFeatureSchema.Execute()

	features := make([]*FeatureMsg, 0, len(resp.Features))
	for _, f := range resp.Features {
		features = append(features, &FeatureMsg{
			Position:    int32(f.Position),
			Name:        f.Name,
			Description: f.Description,
			Min:         f.Min,
		})
	}
	return &GetFeatureSchemaResponse{Features: features}, nil
}

func (h *CreditRiskHandler) toStatus(ctx context.Context, err error) error {
	if usecase.IsInvalidInput(err) {
		var missing *model.MissingFeatureError
		if errors.As(err, &missing) {
			return status.Error(codes.InvalidArgument, missing.Error())
		}
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.ErrorContext(ctx, "failed to score clients", "error", err)
	return status.Error(codes.Internal, "failed to score clients")
}

func toScoreClientsResponse(resp dto.ScoreClientsResponse) *ScoreClientsResponse {
	results := make([]*ScoreResultMsg, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, &ScoreResultMsg{
			Row:          int32(r.Row),
			PD:           r.PD,
			RiskLevel:    r.RiskLevel,
			LGD:          r.LGD,
			EAD:          &MoneyMsg{Amount: r.EAD, Currency: resp.Currency},
			ExpectedLoss: &MoneyMsg{Amount: r.ExpectedLoss, Currency: resp.Currency},
		})
	}

	return &ScoreClientsResponse{
		AssessmentID:      resp.AssessmentID.String(),
		LGDPercent:        resp.LGDPercent,
		Exposure:          &MoneyMsg{Amount: resp.EAD, Currency: resp.Currency},
		Results:           results,
		TotalExpectedLoss: &MoneyMsg{Amount: resp.TotalExpectedLoss, Currency: resp.Currency},
		ScoredAt:          resp.ScoredAt.Format(timeLayout),
	}
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"
