package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/protomem/bizcard-pass/internal/model"
)

const _submissionsTable = "visitors"

type SubmissionDAO struct {
	Logger *slog.Logger
	*DB
}

func NewSubmissionDAO(logger *slog.Logger, db *DB) *SubmissionDAO {
	return &SubmissionDAO{
		Logger: logger.With("dao", "submission"),
		DB:     db,
	}
}

type InsertSubmissionDTO struct {
	Name         string
	Phone        string
	MeetingPlace string
	MeetingDate  time.Time
	SerialNumber string
}

func (dao *SubmissionDAO) Insert(ctx context.Context, dto InsertSubmissionDTO) (model.Submission, error) {
	logger := dao.Logger.With("query", "insert")

	query, args, err := dao.Builder.
		Insert(_submissionsTable).
		Columns("name", "phone", "meeting_place", "meeting_date", "serial_number").
		Values(dto.Name, dto.Phone, dto.MeetingPlace, dto.MeetingDate, dto.SerialNumber).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return model.Submission{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var sub model.Submission
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&sub); err != nil {
		logger.Warn("failed query execute", "error", err, "constraint", ConstraintName(err))

		if IsUniqueViolation(err) {
			return model.Submission{}, model.NewError("submission", model.ErrExists)
		}
		if IsCheckViolation(err) {
			return model.Submission{}, model.NewError("submission", model.ErrValidation)
		}

		return model.Submission{}, err
	}

	logger.Debug("success query execute", "insertId", sub.ID, "serialNumber", sub.SerialNumber)

	return sub, nil
}
