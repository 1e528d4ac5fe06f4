package domain

import (
	"fmt"
	"time"
)

// DraftAddOn represents a priced add-on selected into a booking draft
type DraftAddOn struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BookingDraft аккумулирует всё, что нужно для расчёта цены и выполнения одного
// бронирования. Черновик принадлежит ровно одной клиентской сессии, мутабелен до
// коммита или отмены саги и уничтожается при успехе, явной отмене или сбросе сессии
type BookingDraft struct {
	CustomerID int64 `json:"customerId"`
	BusinessID int64 `json:"businessId"`
	LocationID int64 `json:"locationId"`
	ServiceID  int64 `json:"serviceId"`
	VariantID  int64 `json:"variantId"`

	VariantName  string  `json:"variantName"`
	VariantPrice float64 `json:"variantPrice"`

	AddOns              []DraftAddOn `json:"addOns,omitempty"`
	CustomizableOptions []string     `json:"customizableOptions,omitempty"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	TotalPrice float64 `json:"totalPrice"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// IncompleteDraftError описывает первое незаполненное обязательное поле черновика
type IncompleteDraftError struct {
	Field string
}

func (e *IncompleteDraftError) Error() string {
	return fmt.Sprintf("booking draft is incomplete: missing %s", e.Field)
}

// ComputeTotalPrice пересчитывает итоговую стоимость: цена варианта плюс сумма добавок
func (d *BookingDraft) ComputeTotalPrice() float64 {
	total := d.VariantPrice
	for _, addOn := range d.AddOns {
		total += addOn.Price
	}
	return total
}

// AddOnIDs возвращает идентификаторы выбранных добавок
func (d *BookingDraft) AddOnIDs() []int64 {
	ids := make([]int64, len(d.AddOns))
	for i, addOn := range d.AddOns {
		ids[i] = addOn.ID
	}
	return ids
}

// Validate проверяет обязательные поля черновика в фиксированном порядке
// и возвращает первое отсутствующее как типизированную причину.
// Сага обязана вызывать Validate до любого внешнего вызова
func (d *BookingDraft) Validate() error {
	switch {
	case d.BusinessID <= 0:
		return &IncompleteDraftError{Field: "business"}
	case d.LocationID <= 0:
		return &IncompleteDraftError{Field: "location"}
	case d.VariantID <= 0:
		return &IncompleteDraftError{Field: "variant"}
	case d.StartTime.IsZero():
		return &IncompleteDraftError{Field: "start_time"}
	case d.EndTime.IsZero():
		return &IncompleteDraftError{Field: "end_time"}
	case d.TotalPrice <= 0:
		return &IncompleteDraftError{Field: "total_price"}
	case d.CustomerID <= 0:
		return &IncompleteDraftError{Field: "customer_id"}
	}

	if !d.EndTime.After(d.StartTime) {
		return &IncompleteDraftError{Field: "end_time"}
	}

	return nil
}
