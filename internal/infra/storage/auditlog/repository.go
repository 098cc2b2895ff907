package auditlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PT-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий журнала событий системы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал. Полезная нагрузка сериализуется в JSON
func (r *Repository) Append(ctx context.Context, entryType string, payload interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: Append - marshal payload: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("audit_log").
		Columns("id", "type", "payload_json").
		Values(uuid.NewString(), entryType, string(payloadJSON)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
