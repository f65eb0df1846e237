package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wetee-dao/guildgate/internal/database"
	"github.com/wetee-dao/guildgate/internal/model"
)

// SubmissionRepository is the ledger of guild writes
type SubmissionRepository struct {
	db database.Database
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db database.Database) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create records a submission under sub.ID
func (r *SubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	query := `
		CREATE type::thing('submission', $ref) CONTENT {
			ref: $ref,
			kind: $kind,
			dao_id: $dao_id,
			guild_id: IF $guild_id IS NOT NULL THEN $guild_id ELSE NONE END,
			from_address: $from_address,
			route: $route,
			status: $status,
			block_hash: IF $block_hash IS NOT NULL THEN $block_hash ELSE NONE END,
			extrinsic_hash: IF $extrinsic_hash IS NOT NULL THEN $extrinsic_hash ELSE NONE END,
			error: IF $error IS NOT NULL THEN $error ELSE NONE END,
			created_on: <datetime>$created_on
		}
	`

	var guildID interface{}
	if sub.GuildID != nil {
		guildID = *sub.GuildID
	}

	vars := map[string]interface{}{
		"ref":            sub.ID,
		"kind":           sub.Kind,
		"dao_id":         sub.DaoID,
		"guild_id":       guildID,
		"from_address":   sub.From,
		"route":          sub.Route,
		"status":         string(sub.Status),
		"block_hash":     nilIfEmpty(sub.BlockHash),
		"extrinsic_hash": nilIfEmpty(sub.ExtrinsicHash),
		"error":          nilIfEmpty(sub.Error),
		"created_on":     sub.CreatedOn.UTC().Format(time.RFC3339Nano),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: submission %s", database.ErrDuplicate, sub.ID)
		}
		return err
	}
	return nil
}

// GetByID returns one submission, or nil if it does not exist
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT * FROM type::thing('submission', $ref)`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"ref": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected submission record %T", result)
	}
	return parseSubmission(data), nil
}

// ListByAccount returns the newest submissions sent from address
func (r *SubmissionRepository) ListByAccount(ctx context.Context, address string, limit int) ([]*model.Submission, error) {
	query := `SELECT * FROM submission WHERE from_address = $from_address ORDER BY created_on DESC LIMIT $limit`
	vars := map[string]interface{}{
		"from_address": address,
		"limit":        limit,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, ok := extractQueryResults(results)
	if !ok {
		return []*model.Submission{}, nil
	}

	subs := make([]*model.Submission, 0, len(records))
	for _, rec := range records {
		if data, ok := rec.(map[string]interface{}); ok {
			subs = append(subs, parseSubmission(data))
		}
	}
	return subs, nil
}

func parseSubmission(data map[string]interface{}) *model.Submission {
	sub := &model.Submission{
		ID:            getString(data, "ref"),
		Kind:          getString(data, "kind"),
		From:          getString(data, "from_address"),
		Route:         getString(data, "route"),
		Status:        model.SubmissionStatus(getString(data, "status")),
		BlockHash:     getString(data, "block_hash"),
		ExtrinsicHash: getString(data, "extrinsic_hash"),
		Error:         getString(data, "error"),
		CreatedOn:     parseTime(data["created_on"]),
	}
	sub.DaoID, _ = getUint64(data, "dao_id")
	if guildID, ok := getUint64(data, "guild_id"); ok {
		sub.GuildID = &guildID
	}
	return sub
}
