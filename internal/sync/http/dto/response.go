package dto

import (
	"time"

	"github.com/google/uuid"

	alertsDomain "github.com/allisson/agrosync/internal/alerts/domain"
	refdataDomain "github.com/allisson/agrosync/internal/refdata/domain"
	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
	"github.com/allisson/agrosync/internal/sync/usecase"
	ticketsDomain "github.com/allisson/agrosync/internal/tickets/domain"
)

// MarketResponse is the wire form of a market row.
type MarketResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ProvinceCode    string    `json:"province_code"`
	DistrictCode    string    `json:"district_code"`
	SubdistrictCode string    `json:"subdistrict_code"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CropPriceResponse is the wire form of a crop price row.
type CropPriceResponse struct {
	ID        uuid.UUID `json:"id"`
	CropKey   string    `json:"crop_key"`
	MarketID  uuid.UUID `json:"market_id"`
	PriceMin  float64   `json:"price_min"`
	PriceMax  float64   `json:"price_max"`
	Unit      string    `json:"unit"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlertResponse is the wire form of a price alert row.
type AlertResponse struct {
	ID        uuid.UUID `json:"id"`
	CropKey   string    `json:"crop_key"`
	TargetMin float64   `json:"target_min"`
	TargetMax float64   `json:"target_max"`
	Unit      string    `json:"unit"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TicketResponse is the wire form of a ticket row.
type TicketResponse struct {
	ID        uuid.UUID `json:"id"`
	CropKey   string    `json:"crop_key"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReferenceDelta groups the shared collections visible to every client.
type ReferenceDelta struct {
	Markets    []MarketResponse    `json:"markets"`
	CropPrices []CropPriceResponse `json:"crop_prices"`
}

// UserDelta groups the collections owned by the requesting user.
type UserDelta struct {
	Alerts  []AlertResponse  `json:"alerts"`
	Tickets []TicketResponse `json:"tickets"`
}

// SyncResponse is the response body for the sync endpoint.
type SyncResponse struct {
	ServerTime time.Time      `json:"server_time"`
	NextSince  time.Time      `json:"next_since"`
	Reference  ReferenceDelta `json:"refs"`
	User       UserDelta      `json:"user"`
}

// MapSyncOutputToResponse converts the use case output into the wire form.
// Empty collections serialize as empty arrays so clients can range over them
// without null checks.
func MapSyncOutputToResponse(output *usecase.SyncOutput) SyncResponse {
	return SyncResponse{
		ServerTime: output.ServerTime,
		NextSince:  output.NextSince,
		Reference: ReferenceDelta{
			Markets:    mapMarkets(output.Markets),
			CropPrices: mapCropPrices(output.CropPrices),
		},
		User: UserDelta{
			Alerts:  mapAlerts(output.Alerts),
			Tickets: mapTickets(output.Tickets),
		},
	}
}

func mapMarkets(markets []*refdataDomain.Market) []MarketResponse {
	responses := make([]MarketResponse, 0, len(markets))
	for _, market := range markets {
		responses = append(responses, MarketResponse{
			ID:              market.ID,
			Name:            market.Name,
			ProvinceCode:    market.ProvinceCode,
			DistrictCode:    market.DistrictCode,
			SubdistrictCode: market.SubdistrictCode,
			UpdatedAt:       market.UpdatedAt,
		})
	}
	return responses
}

func mapCropPrices(prices []*refdataDomain.CropPrice) []CropPriceResponse {
	responses := make([]CropPriceResponse, 0, len(prices))
	for _, price := range prices {
		responses = append(responses, CropPriceResponse{
			ID:        price.ID,
			CropKey:   price.CropKey,
			MarketID:  price.MarketID,
			PriceMin:  price.PriceMin,
			PriceMax:  price.PriceMax,
			Unit:      price.Unit,
			UpdatedAt: price.UpdatedAt,
		})
	}
	return responses
}

func mapAlerts(alerts []*alertsDomain.Alert) []AlertResponse {
	responses := make([]AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		responses = append(responses, AlertResponse{
			ID:        alert.ID,
			CropKey:   alert.CropKey,
			TargetMin: alert.TargetMin,
			TargetMax: alert.TargetMax,
			Unit:      alert.Unit,
			Active:    alert.Active,
			CreatedAt: alert.CreatedAt,
			UpdatedAt: alert.UpdatedAt,
		})
	}
	return responses
}

func mapTickets(tickets []*ticketsDomain.Ticket) []TicketResponse {
	responses := make([]TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		responses = append(responses, TicketResponse{
			ID:        ticket.ID,
			CropKey:   ticket.CropKey,
			Quantity:  ticket.Quantity,
			Unit:      ticket.Unit,
			Status:    string(ticket.Status),
			CreatedAt: ticket.CreatedAt,
			UpdatedAt: ticket.UpdatedAt,
		})
	}
	return responses
}

// MutationResultResponse is the per-item entry in the queue response.
type MutationResultResponse struct {
	MutationID string `json:"mutation_id"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

// QueueResponse is the response body for the queue endpoint.
type QueueResponse struct {
	OK      bool                     `json:"ok"`
	Results []MutationResultResponse `json:"results"`
}

// MapResultsToQueueResponse converts per-item outcomes into the wire form.
func MapResultsToQueueResponse(results []syncDomain.MutationResult) QueueResponse {
	responses := make([]MutationResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, MutationResultResponse{
			MutationID: result.MutationID,
			Status:     string(result.Status),
			Message:    result.Message,
		})
	}
	return QueueResponse{OK: true, Results: responses}
}
