package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/internal/infra/draftcache"
	directoryClient "github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
	"github.com/ant0nk/Trimly-BookingService/internal/service/draft/models"
)

// Service сервис черновика бронирования
// Черновик собирается по шагам на клиенте (бизнес, локация, вариант, добавки,
// слот), каждый шаг перезаписывает черновик целиком с пересчётом цены
type Service struct {
	store     DraftStore
	directory DirectoryClient
	logger    Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(store DraftStore, directory DirectoryClient, logger Logger) *Service {
	return &Service{
		store:     store,
		directory: directory,
		logger:    logger,
	}
}

// Upsert сохраняет текущий выбор клиента
// Название и цена варианта, как и цены добавок, подтягиваются из каталога:
// итоговая стоимость всегда пересчитывается на сервере
func (s *Service) Upsert(ctx context.Context, req *models.UpsertDraftRequest) (*models.DraftResponse, error) {
	s.logger.Info("Upsert: saving draft for customer=%d, business=%d, variant=%d",
		req.CustomerID, req.BusinessID, req.VariantID)

	if err := validateUpsertRequest(req); err != nil {
		s.logger.Warn("Upsert: validation failed for customer=%d: %v", req.CustomerID, err)
		return nil, err
	}

	draft := &domain.BookingDraft{
		CustomerID:          req.CustomerID,
		BusinessID:          req.BusinessID,
		LocationID:          req.LocationID,
		ServiceID:           req.ServiceID,
		VariantID:           req.VariantID,
		CustomizableOptions: req.CustomizableOptions,
		UpdatedAt:           time.Now(),
	}

	if req.StartTime != nil {
		draft.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		draft.EndTime = *req.EndTime
	}

	// Вариант обязателен для расчёта цены, добавки - опциональны
	if req.VariantID > 0 {
		variant, err := s.directory.GetVariant(ctx, req.BusinessID, req.VariantID)
		if err != nil {
			if errors.Is(err, directoryClient.ErrVariantNotFound) {
				s.logger.Warn("Upsert: variant id=%d not found for business=%d", req.VariantID, req.BusinessID)
				return nil, ErrVariantNotFound
			}
			s.logger.Error("Upsert: failed to get variant id=%d: %v", req.VariantID, err)
			return nil, fmt.Errorf("%w: Upsert - directory error: %v", ErrInternal, err)
		}

		draft.VariantName = variant.Name
		draft.VariantPrice = variant.Price
	}

	if len(req.AddOnIDs) > 0 {
		addOns, err := s.directory.GetAddOns(ctx, req.BusinessID, req.AddOnIDs)
		if err != nil {
			if errors.Is(err, directoryClient.ErrAddOnNotFound) {
				s.logger.Warn("Upsert: add-ons %v not found for business=%d", req.AddOnIDs, req.BusinessID)
				return nil, ErrAddOnNotFound
			}
			s.logger.Error("Upsert: failed to get add-ons %v: %v", req.AddOnIDs, err)
			return nil, fmt.Errorf("%w: Upsert - directory error: %v", ErrInternal, err)
		}

		draft.AddOns = make([]domain.DraftAddOn, 0, len(addOns))
		for _, addOn := range addOns {
			draft.AddOns = append(draft.AddOns, domain.DraftAddOn{
				ID:    addOn.ID,
				Name:  addOn.Name,
				Price: addOn.Price,
			})
		}
	}

	draft.TotalPrice = draft.ComputeTotalPrice()

	if err := s.store.Put(ctx, draft); err != nil {
		s.logger.Error("Upsert: failed to store draft for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Upsert - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: draft saved for customer=%d, total=%.2f", req.CustomerID, draft.TotalPrice)
	return models.FromDomainDraft(draft), nil
}

// Get получает текущий черновик клиента
func (s *Service) Get(ctx context.Context, customerID int64) (*models.DraftResponse, error) {
	draft, err := s.store.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, draftcache.ErrDraftNotFound) || errors.Is(err, draftcache.ErrDecode) {
			return nil, ErrDraftNotFound
		}
		s.logger.Error("Get: failed to load draft for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: Get - store error: %v", ErrInternal, err)
	}

	return models.FromDomainDraft(draft), nil
}

// Reset удаляет черновик клиента
// Вызывается при явном сбросе корзины; отсутствие черновика не ошибка
func (s *Service) Reset(ctx context.Context, customerID int64) error {
	if err := s.store.Delete(ctx, customerID); err != nil {
		s.logger.Error("Reset: failed to delete draft for customer=%d: %v", customerID, err)
		return fmt.Errorf("%w: Reset - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Reset: draft deleted for customer=%d", customerID)
	return nil
}

func validateUpsertRequest(req *models.UpsertDraftRequest) error {
	switch {
	case req.CustomerID <= 0:
		return fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	case req.BusinessID <= 0:
		return fmt.Errorf("%w: business id must be positive", ErrInvalidInput)
	case len(req.AddOnIDs) > domain.MaxAddOnsPerDraft:
		return fmt.Errorf("%w: too many add-ons (max %d)", ErrInvalidInput, domain.MaxAddOnsPerDraft)
	case len(req.CustomizableOptions) > domain.MaxCustomizableOptions:
		return fmt.Errorf("%w: too many customizable options (max %d)", ErrInvalidInput, domain.MaxCustomizableOptions)
	}

	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	return nil
}
