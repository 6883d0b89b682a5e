package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobRepository defines decoupled operations for job catalogue persistence.
type JobRepository interface {
	Put(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id int) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	SearchByTitle(ctx context.Context, titleSubstr string) ([]Job, error)
	Clear(ctx context.Context) error
}

// CredentialRepository defines decoupled operations for credential persistence.
type CredentialRepository interface {
	Get(ctx context.Context, scope string) (*Credential, error)
	Upsert(ctx context.Context, cred *Credential) error
	Delete(ctx context.Context, scope string) error
}

// gormJobRepo is a GORM-backed implementation of JobRepository.
// Use constructor NewJobRepository to obtain an instance.
type gormJobRepo struct{ db *gorm.DB }

// gormCredentialRepo is a GORM-backed implementation of CredentialRepository.
// Use constructor NewCredentialRepository to obtain an instance.
type gormCredentialRepo struct{ db *gorm.DB }

// NewJobRepository creates a JobRepository. Accepts *gorm.DB to avoid global access.
func NewJobRepository(db *gorm.DB) JobRepository { return &gormJobRepo{db: db} }

// NewCredentialRepository creates a CredentialRepository. Accepts *gorm.DB to avoid global access.
func NewCredentialRepository(db *gorm.DB) CredentialRepository { return &gormCredentialRepo{db: db} }

func (r *gormJobRepo) Put(ctx context.Context, j Job) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&j).Error
}

func (r *gormJobRepo) GetByID(ctx context.Context, id int) (*Job, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var job Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *gormJobRepo) List(ctx context.Context) ([]Job, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var jobs []Job
	if err := r.db.WithContext(ctx).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *gormJobRepo) SearchByTitle(ctx context.Context, titleSubstr string) ([]Job, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var jobs []Job
	if err := r.db.WithContext(ctx).Where("title LIKE ?", "%"+titleSubstr+"%").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *gormJobRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Job{}).Error
}

func (r *gormCredentialRepo) Get(ctx context.Context, scope string) (*Credential, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var cred Credential
	err := r.db.WithContext(ctx).First(&cred, "scope = ?", scope).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *gormCredentialRepo) Upsert(ctx context.Context, cred *Credential) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	if cred.Scope == "" {
		return fmt.Errorf("credential scope is empty")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token"}),
	}).Create(cred).Error
}

func (r *gormCredentialRepo) Delete(ctx context.Context, scope string) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Where("scope = ?", scope).Delete(&Credential{}).Error
}
