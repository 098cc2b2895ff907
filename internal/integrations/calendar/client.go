package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/pkg/types"
)

// Client клиент шлюза рабочего календаря тренера.
// Шлюз принимает один POST эндпоинт с конвертом {secret, calendarId, action, ...}
type Client struct {
	url        string
	secret     string
	calendarID string
	// Место проведения тренировок, подставляется в события
	eventLocation string
	httpClient    *http.Client
	log           Logger
}

// NewClient создает новый экземпляр клиента календаря
func NewClient(url, secret, calendarID, eventLocation string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url:           url,
		secret:        secret,
		calendarID:    calendarID,
		eventLocation: eventLocation,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateEventParams параметры создания события тренировки
type CreateEventParams struct {
	StartISO    string
	EndISO      string
	Title       string
	Location    string
	Description string
	BookingID   string
}

// CreateBookingEvent создает событие тренировки и возвращает его идентификатор
func (c *Client) CreateBookingEvent(ctx context.Context, p CreateEventParams) (string, error) {
	if p.Location == "" {
		p.Location = c.eventLocation
	}

	resp, err := c.call(ctx, gatewayRequest{
		Action:      actionCreateEvent,
		StartISO:    p.StartISO,
		EndISO:      p.EndISO,
		Title:       p.Title,
		Location:    p.Location,
		Description: p.Description,
		BookingID:   p.BookingID,
	})
	if err != nil {
		return "", err
	}
	if resp.EventID == "" {
		return "", fmt.Errorf("%w: createEvent returned no event id", ErrInvalidResponse)
	}

	return resp.EventID, nil
}

// ConfirmEvent помечает событие подтвержденным: шлюз дописывает
// маркер ✅ к заголовку
func (c *Client) ConfirmEvent(ctx context.Context, eventID string) error {
	_, err := c.call(ctx, gatewayRequest{
		Action:  actionConfirmEvent,
		EventID: eventID,
	})
	return err
}

// DeleteEvent удаляет событие из календаря
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := c.call(ctx, gatewayRequest{
		Action:  actionDeleteEvent,
		EventID: eventID,
	})
	return err
}

// ListBusy возвращает занятые интервалы календаря на дату (формат YYYY-MM-DD)
func (c *Client) ListBusy(ctx context.Context, day string) ([]domain.BusyInterval, error) {
	resp, err := c.call(ctx, gatewayRequest{
		Action: actionFreeBusy,
		Day:    day,
	})
	if err != nil {
		return nil, err
	}

	busy := make([]domain.BusyInterval, 0, len(resp.Busy))
	for _, b := range resp.Busy {
		start, err := time.Parse(time.RFC3339, b.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: bad busy interval start %q: %v", ErrInvalidResponse, b.Start, err)
		}
		end, err := time.Parse(time.RFC3339, b.End)
		if err != nil {
			return nil, fmt.Errorf("%w: bad busy interval end %q: %v", ErrInvalidResponse, b.End, err)
		}
		busy = append(busy, domain.BusyInterval{Start: start, End: end})
	}

	return busy, nil
}

// UpsertWorkDay синхронизирует рабочие часы дня с календарем тренера
func (c *Client) UpsertWorkDay(ctx context.Context, day string, start, end *types.TimeString, breaks []domain.BreakInterval) error {
	req := gatewayRequest{
		Action: actionUpsertWorkDay,
		Day:    day,
	}
	if start != nil {
		req.StartTime = start.String()
	}
	if end != nil {
		req.EndTime = end.String()
	}
	for _, b := range breaks {
		req.Breaks = append(req.Breaks, breakInterval{Start: b.Start.String(), End: b.End.String()})
	}

	_, err := c.call(ctx, req)
	return err
}

func (c *Client) call(ctx context.Context, req gatewayRequest) (*gatewayResponse, error) {
	req.Secret = c.secret
	req.CalendarID = c.calendarID

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("Calendar gateway unreachable: action=%s, error=%v", req.Action, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(httpResp.Body)
		c.log.Error("Calendar gateway returned status %d: action=%s, body=%s", httpResp.StatusCode, req.Action, string(respBody))
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrGatewayUnavailable, httpResp.StatusCode)
	}

	var resp gatewayResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !resp.OK {
		c.log.Warn("Calendar gateway rejected request: action=%s, error=%s", req.Action, resp.Error)
		return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, resp.Error)
	}

	return &resp, nil
}
