package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/pkg/errors"
)

type syncLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSyncLogRepository creates a new sync log repository
func NewSyncLogRepository(db *sql.DB, logger *zap.Logger) *syncLogRepository {
	return &syncLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *syncLogRepository) Append(ctx context.Context, log *domain.SyncLog) error {
	query := `
		INSERT INTO sync_logs (id, product_id, product_name, sync_type, status,
		                       provider_type, error_message, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		nullString(log.ProductID),
		nullString(log.ProductName),
		log.SyncType,
		log.Status,
		log.ProviderType,
		nullString(log.ErrorMessage),
		log.CreatedAt,
		log.CompletedAt,
	)

	if err != nil {
		r.logger.Error("Failed to append sync log", zap.Error(err))
		return err
	}

	return nil
}

func (r *syncLogRepository) Complete(ctx context.Context, id string, status domain.SyncStatus, errorMessage string) error {
	query := `
		UPDATE sync_logs
		SET status = $2, error_message = $3, completed_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, nullString(errorMessage), time.Now())
	if err != nil {
		r.logger.Error("Failed to complete sync log", zap.Error(err))
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "sync log", ID: id}
	}

	return nil
}

func (r *syncLogRepository) List(ctx context.Context) ([]domain.SyncLog, error) {
	query := `
		SELECT id, product_id, product_name, sync_type, status,
		       provider_type, error_message, created_at, completed_at
		FROM sync_logs
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list sync logs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var logs []domain.SyncLog
	for rows.Next() {
		var log domain.SyncLog
		var productID, productName, errorMessage sql.NullString
		var completedAt sql.NullTime

		err := rows.Scan(
			&log.ID,
			&productID,
			&productName,
			&log.SyncType,
			&log.Status,
			&log.ProviderType,
			&errorMessage,
			&log.CreatedAt,
			&completedAt,
		)
		if err != nil {
			continue
		}

		log.ProductID = productID.String
		log.ProductName = productName.String
		log.ErrorMessage = errorMessage.String
		if completedAt.Valid {
			log.CompletedAt = &completedAt.Time
		}

		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (r *syncLogRepository) Stats(ctx context.Context) (domain.SyncStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'success'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COUNT(*) FILTER (WHERE status = 'in_progress')
		FROM sync_logs
	`

	var stats domain.SyncStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Success,
		&stats.Failed,
		&stats.InProgress,
	)
	if err != nil {
		r.logger.Error("Failed to compute sync stats", zap.Error(err))
		return domain.SyncStats{}, err
	}

	return stats, nil
}
