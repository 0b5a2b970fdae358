package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/bizcard-pass/internal/model"
)

const _defaultPlacesTable = "default_places"

type DefaultPlaceDAO struct {
	Logger *slog.Logger
	*DB
}

func NewDefaultPlaceDAO(logger *slog.Logger, db *DB) *DefaultPlaceDAO {
	return &DefaultPlaceDAO{
		Logger: logger.With("dao", "defaultPlace"),
		DB:     db,
	}
}

// GetByDate looks up the place for a calendar date. Only the date part of
// eventDate, in its own location, is used.
func (dao *DefaultPlaceDAO) GetByDate(ctx context.Context, eventDate time.Time) (model.DefaultPlace, error) {
	logger := dao.Logger.With("query", "getByDate")

	query, args, err := dao.Builder.
		Select("*").
		From(_defaultPlacesTable).
		Where(squirrel.Eq{"event_date": eventDate}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.DefaultPlace{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var place model.DefaultPlace
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&place); err != nil {
		if IsNoRows(err) {
			logger.Debug("success query execute", "found", false)
			return model.DefaultPlace{}, model.NewError("defaultPlace", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.DefaultPlace{}, err
	}

	logger.Debug("success query execute", "found", true)

	return place, nil
}

type UpsertDefaultPlaceDTO struct {
	EventDate time.Time
	Place     string
}

func (dao *DefaultPlaceDAO) Upsert(ctx context.Context, dto UpsertDefaultPlaceDTO) (model.DefaultPlace, error) {
	logger := dao.Logger.With("query", "upsert")

	query, args, err := dao.Builder.
		Insert(_defaultPlacesTable).
		Columns("event_date", "place").
		Values(dto.EventDate, dto.Place).
		Suffix("ON CONFLICT (event_date) DO UPDATE SET place = EXCLUDED.place, updated_at = now() RETURNING *").
		ToSql()
	if err != nil {
		return model.DefaultPlace{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var place model.DefaultPlace
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&place); err != nil {
		logger.Warn("failed query execute", "error", err, "constraint", ConstraintName(err))

		if IsCheckViolation(err) {
			return model.DefaultPlace{}, model.NewError("defaultPlace", model.ErrValidation)
		}

		return model.DefaultPlace{}, err
	}

	logger.Debug("success query execute", "upsertId", place.ID)

	return place, nil
}
