package draftcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
)

const keyPrefix = "booking_draft:"

// Store хранилище черновиков бронирования в Redis
// Черновик принадлежит ровно одному клиенту и живёт не дольше TTL:
// брошенная корзина исчезает сама, без фоновой очистки
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает новое хранилище черновиков
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Get получает черновик клиента
func (s *Store) Get(ctx context.Context, customerID int64) (*domain.BookingDraft, error) {
	data, err := s.client.Get(ctx, draftKey(customerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrStorage, err)
	}

	var draft domain.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		// Битый черновик бесполезен - убираем ключ, чтобы клиент начал заново
		_ = s.client.Del(ctx, draftKey(customerID)).Err()
		return nil, fmt.Errorf("%w: Get: %v", ErrDecode, err)
	}

	return &draft, nil
}

// Put сохраняет черновик клиента, продлевая TTL
// Каждое изменение выбора перезаписывает черновик целиком
func (s *Store) Put(ctx context.Context, draft *domain.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%w: Put: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, draftKey(draft.CustomerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Put: %v", ErrStorage, err)
	}

	return nil
}

// Delete удаляет черновик клиента
// Отсутствие черновика не считается ошибкой
func (s *Store) Delete(ctx context.Context, customerID int64) error {
	if err := s.client.Del(ctx, draftKey(customerID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrStorage, err)
	}

	return nil
}

func draftKey(customerID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, customerID)
}
