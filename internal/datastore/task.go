package datastore

import (
	"context"

	"farmingpro/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTask(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Task)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateTable().Model((*models.TaskCompletion)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.TaskCompletion)(nil)).Index("index_task_completion_account_id_task_id").Unique().IfNotExists().Column("account_id", "task_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindTaskByID(ctx context.Context, db bun.IDB, id int64) (*models.Task, error) {
	var task models.Task
	err := db.NewSelect().Model(&task).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func ListTasks(ctx context.Context, db bun.IDB, onlyActive bool) ([]models.Task, error) {
	var tasks []models.Task
	q := db.NewSelect().Model(&tasks)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func InsertTask(ctx context.Context, db bun.IDB, task *models.Task) error {
	_, err := db.NewInsert().Model(task).Returning("*").Exec(ctx)
	return err
}

func UpdateTask(ctx context.Context, db bun.IDB, task *models.Task) error {
	_, err := db.NewUpdate().Model(task).Column("is_active").WherePK().Exec(ctx)
	return err
}

func FindTaskCompletion(ctx context.Context, db bun.IDB, accountID int64, taskID int64) (*models.TaskCompletion, error) {
	var completion models.TaskCompletion
	err := db.NewSelect().Model(&completion).Where("account_id = ?", accountID).Where("task_id = ?", taskID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

func ListTaskCompletions(ctx context.Context, db bun.IDB, accountID int64) ([]models.TaskCompletion, error) {
	var completions []models.TaskCompletion
	err := db.NewSelect().Model(&completions).Where("account_id = ?", accountID).Order("completed_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return completions, nil
}

func InsertTaskCompletion(ctx context.Context, db bun.IDB, completion *models.TaskCompletion) error {
	_, err := db.NewInsert().Model(completion).Returning("*").Exec(ctx)
	return err
}
