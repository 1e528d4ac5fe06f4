package models

import (
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/pkg/ptr"
)

// Request модели

// UpsertDraftRequest запрос на сохранение выбора клиента
// Цены в запросе не передаются - сервис сам подтягивает их из каталога
type UpsertDraftRequest struct {
	CustomerID          int64      `json:"customerId"`
	BusinessID          int64      `json:"businessId"`
	LocationID          int64      `json:"locationId"`
	ServiceID           int64      `json:"serviceId"`
	VariantID           int64      `json:"variantId"`
	AddOnIDs            []int64    `json:"addOnIds,omitempty"`
	CustomizableOptions []string   `json:"customizableOptions,omitempty"`
	StartTime           *time.Time `json:"startTime,omitempty"`
	EndTime             *time.Time `json:"endTime,omitempty"`
}

// Response модели

// DraftAddOnResponse добавка в составе черновика
type DraftAddOnResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DraftResponse ответ с текущим черновиком
type DraftResponse struct {
	CustomerID          int64                `json:"customerId"`
	BusinessID          int64                `json:"businessId"`
	LocationID          int64                `json:"locationId"`
	ServiceID           int64                `json:"serviceId"`
	VariantID           int64                `json:"variantId"`
	VariantName         string               `json:"variantName"`
	VariantPrice        float64              `json:"variantPrice"`
	AddOns              []DraftAddOnResponse `json:"addOns,omitempty"`
	CustomizableOptions []string             `json:"customizableOptions,omitempty"`
	StartTime           *string              `json:"startTime,omitempty"` // ISO 8601
	EndTime             *string              `json:"endTime,omitempty"`   // ISO 8601
	TotalPrice          float64              `json:"totalPrice"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// Методы конвертации

// FromDomainDraft конвертирует domain модель в DTO
func FromDomainDraft(d *domain.BookingDraft) *DraftResponse {
	if d == nil {
		return nil
	}

	resp := &DraftResponse{
		CustomerID:          d.CustomerID,
		BusinessID:          d.BusinessID,
		LocationID:          d.LocationID,
		ServiceID:           d.ServiceID,
		VariantID:           d.VariantID,
		VariantName:         d.VariantName,
		VariantPrice:        d.VariantPrice,
		CustomizableOptions: d.CustomizableOptions,
		TotalPrice:          d.TotalPrice,
		UpdatedAt:           d.UpdatedAt,
	}

	for _, addOn := range d.AddOns {
		resp.AddOns = append(resp.AddOns, DraftAddOnResponse{
			ID:    addOn.ID,
			Name:  addOn.Name,
			Price: addOn.Price,
		})
	}

	if !d.StartTime.IsZero() {
		resp.StartTime = ptr.To(d.StartTime.Format(time.RFC3339))
	}
	if !d.EndTime.IsZero() {
		resp.EndTime = ptr.To(d.EndTime.Format(time.RFC3339))
	}

	return resp
}
