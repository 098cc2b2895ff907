package calendar

// Действия, поддерживаемые шлюзом календаря
const (
	actionCreateEvent   = "createEvent"
	actionConfirmEvent  = "confirmEvent"
	actionDeleteEvent   = "deleteEvent"
	actionFreeBusy      = "freeBusy"
	actionUpsertWorkDay = "upsertWorkday"
)

// gatewayRequest общий конверт запроса к шлюзу
type gatewayRequest struct {
	Secret     string `json:"secret"`
	CalendarID string `json:"calendarId"`
	Action     string `json:"action"`

	// Параметры createEvent
	StartISO    string `json:"startIso,omitempty"`
	EndISO      string `json:"endIso,omitempty"`
	Title       string `json:"title,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	BookingID   string `json:"bookingId,omitempty"`

	// Параметры confirmEvent / deleteEvent
	EventID string `json:"eventId,omitempty"`

	// Параметры freeBusy / upsertWorkday
	Day       string          `json:"day,omitempty"`
	StartTime string          `json:"startTime,omitempty"`
	EndTime   string          `json:"endTime,omitempty"`
	Breaks    []breakInterval `json:"breaks,omitempty"`
}

type breakInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// gatewayResponse общий конверт ответа шлюза
type gatewayResponse struct {
	OK      bool           `json:"ok"`
	Error   string         `json:"error,omitempty"`
	EventID string         `json:"eventId,omitempty"`
	Busy    []busyInterval `json:"busy,omitempty"`
}

// busyInterval занятый интервал в ответе freeBusy, времена в ISO 8601
type busyInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
