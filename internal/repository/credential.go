package repository

import (
	"context"

	"github.com/action-register/backend/internal/entity"
	"github.com/action-register/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CredentialRepository interface {
	Upsert(ctx context.Context, data *entity.Credential) error
	GetByUserID(ctx context.Context, userID string) (*entity.Credential, error)
}

type credentialRepository struct{}

func NewCredentialRepository() CredentialRepository {
	return &credentialRepository{}
}

// Upsert inserts or fully replaces the record for the credential's
// partition and user id. Last writer wins.
func (r *credentialRepository) Upsert(ctx context.Context, data *entity.Credential) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "partition_key"}, {Name: "user_id"}},
		UpdateAll: true,
	}).Create(data).Error
}

func (r *credentialRepository) GetByUserID(ctx context.Context, userID string) (*entity.Credential, error) {
	var record entity.Credential
	err := xcontext.DB(ctx).
		Where("partition_key=? AND user_id=?", entity.DiscordPartition, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}
