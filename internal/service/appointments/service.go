package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	appointmentRepo "github.com/ant0nk/Trimly-BookingService/internal/infra/storage/appointment"
	"github.com/ant0nk/Trimly-BookingService/internal/service/appointments/models"
	"github.com/ant0nk/Trimly-BookingService/pkg/ptr"
)

// Service сервис для работы с существующими записями
// Создание записи сюда не входит - им занимается сага бронирования
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент может видеть только свою запись
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for customer=%d", id, customerID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appointment.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to appointment id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetCustomerAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = ptr.To(status)
	}

	appointments, err := s.appointmentRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: fetched %d appointments for customer=%d", len(appointments), req.CustomerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись клиента
// Клиент может отменить только свою подтверждённую запись.
// Отмена освобождает интервал в расписании, но не выполняет возврат платежа:
// политика возвратов при отмене решается на стороне бизнеса отдельно
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by customer=%d", appointmentID, req.CustomerID)

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appointment.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: access denied for customer=%d to appointment id=%d", req.CustomerID, appointmentID)
		return ErrAccessDenied
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, domain.StatusCancelledByCustomer, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}
