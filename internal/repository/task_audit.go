package repository

import (
	"context"
	"fmt"

	"github.com/St1cky1/employee-tracker/internal/entity"
)

type TaskAuditRepository struct {
	db DBTX
}

func NewTaskAuditRepository(db DBTX) *TaskAuditRepository {
	return &TaskAuditRepository{
		db: db,
	}
}

// Create is idempotent per message id, so a redelivered message is stored once.
func (r *TaskAuditRepository) Create(ctx context.Context, audit *entity.TaskAudit) error {
	query := `
	INSERT INTO task_audit (message_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at)
	VALUES ($1, $2, $3, $4, $5::text::jsonb, $6::text::jsonb, $7::text::jsonb, $8)
	ON CONFLICT (message_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		audit.MessageID,
		string(audit.Action),
		audit.EntityType,
		audit.EntityID,
		audit.OldValues,
		audit.NewValues,
		audit.Changes,
		audit.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("create task audit: %w", err)
	}
	return nil
}

func (r *TaskAuditRepository) ListByTaskId(ctx context.Context, taskId int) ([]entity.TaskAudit, error) {
	query := `
	SELECT id, message_id, action, entity_type, entity_id, old_values::text, new_values::text, changes::text, changed_at
	FROM task_audit
	WHERE entity_id = $1 AND entity_type = 'task'
	ORDER BY changed_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, taskId)
	if err != nil {
		return nil, fmt.Errorf("list task audit: %w", err)
	}
	defer rows.Close()

	audits := make([]entity.TaskAudit, 0)
	for rows.Next() {
		var audit entity.TaskAudit
		err := rows.Scan(
			&audit.ID,
			&audit.MessageID,
			&audit.Action,
			&audit.EntityType,
			&audit.EntityID,
			&audit.OldValues,
			&audit.NewValues,
			&audit.Changes,
			&audit.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task audit: %w", err)
		}
		audits = append(audits, audit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list task audit: %w", err)
	}
	return audits, nil
}
