package book_appointment

import (
	"time"
)

// Request модель запроса на выполнение бронирования
// Черновик не передаётся снаружи: сага сама читает его из хранилища сессии,
// чтобы оставаться единственным потребителем черновика
type Request struct {
	CustomerID int64  // ID клиента (владелец черновика и плательщик)
	Currency   string // Валюта платежа (пустая - валюта по умолчанию из конфигурации шлюза)
}

// Response модель ответа с подтверждённой записью
type Response struct {
	RunID           string // Идентификатор прогона саги
	AppointmentID   int64
	CustomerID      int64
	BusinessID      int64
	LocationID      int64
	VariantID       int64
	VariantName     string
	StartTime       time.Time
	EndTime         time.Time
	TotalPrice      float64
	Paid            bool
	PaymentIntentID string
	Status          string
	CreatedAt       time.Time
}
