package database

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/protomem/bizcard-pass/internal/model"
)

func (dao *SubmissionDAO) GetBySerial(ctx context.Context, serial string) (model.Submission, error) {
	query, args, err := dao.Builder.
		Select("*").
		From(_submissionsTable).
		Where(squirrel.Eq{"serial_number": serial}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Submission{}, err
	}

	var sub model.Submission
	if err := dao.QueryRowxContext(ctx, query, args...).StructScan(&sub); err != nil {
		if IsNoRows(err) {
			return model.Submission{}, model.NewError("submission", model.ErrNotFound)
		}
		return model.Submission{}, err
	}

	return sub, nil
}

func (dao *SubmissionDAO) Count(ctx context.Context) (int, error) {
	query, args, err := dao.Builder.
		Select("count(*)").
		From(_submissionsTable).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := dao.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}

	return count, nil
}
