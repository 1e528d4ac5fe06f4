package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом бизнесов (профили, локации, услуги)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusiness получает профиль бизнеса: флаг online и включённые локации
func (c *Client) GetBusiness(ctx context.Context, businessID int64) (*Business, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d", c.baseURL, businessID)

	var business Business
	if err := c.getJSON(ctx, url, &business, ErrBusinessNotFound); err != nil {
		return nil, err
	}

	return &business, nil
}

// GetVariant получает вариант услуги бизнеса (цена и длительность)
func (c *Client) GetVariant(ctx context.Context, businessID, variantID int64) (*Variant, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d/variants/%d", c.baseURL, businessID, variantID)

	var variant Variant
	if err := c.getJSON(ctx, url, &variant, ErrVariantNotFound); err != nil {
		return nil, err
	}

	return &variant, nil
}

// GetAddOns получает дополнительные услуги по списку идентификаторов
func (c *Client) GetAddOns(ctx context.Context, businessID int64, addOnIDs []int64) ([]AddOn, error) {
	if len(addOnIDs) == 0 {
		return []AddOn{}, nil
	}

	ids := make([]string, len(addOnIDs))
	for i, id := range addOnIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	url := fmt.Sprintf("%s/internal/businesses/%d/add-ons?ids=%s", c.baseURL, businessID, strings.Join(ids, ","))

	var addOns []AddOn
	if err := c.getJSON(ctx, url, &addOns, ErrAddOnNotFound); err != nil {
		return nil, err
	}

	return addOns, nil
}

// IsLocationEnabled проверяет, что локация принадлежит активному набору локаций бизнеса
func (c *Client) IsLocationEnabled(ctx context.Context, businessID, locationID int64) (bool, error) {
	business, err := c.GetBusiness(ctx, businessID)
	if err != nil {
		return false, err
	}
	return business.IsLocationEnabled(locationID), nil
}

// IsBusinessOnline проверяет, что бизнес принимает бронирования
func (c *Client) IsBusinessOnline(ctx context.Context, businessID int64) (bool, error) {
	business, err := c.GetBusiness(ctx, businessID)
	if err != nil {
		return false, err
	}
	return business.Online, nil
}

// GetBusinessWithGracefulDegradation получает профиль бизнеса с graceful degradation
// При недоступности каталога возвращает ErrServiceDegraded: рекомендательная
// проверка перед оплатой в этом случае прерывает сагу до предъявления платежа -
// лучше не списывать средства, чем захватить их без подтверждённых предусловий
func (c *Client) GetBusinessWithGracefulDegradation(ctx context.Context, businessID int64) (*Business, error) {
	business, err := c.GetBusiness(ctx, businessID)
	if err != nil {
		// Критичная бизнес-ошибка пробрасывается дальше
		if err == ErrBusinessNotFound {
			c.log.Info("Business id=%d not found in directory", businessID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("Directory unavailable, applying graceful degradation for business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: business_id=%d, error=%v", ErrServiceDegraded, businessID, err)
	}

	return business, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid identifier format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
