package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"
)

const (
	DefaultCompanyName     = "Minha Empresa"
	DefaultCompanySubtitle = "Climatização e Refrigeração"
	DefaultFooterText      = "Obrigado pela preferência!"
)

type ISettingsUseCase interface {
	Get(ctx context.Context, userID string) (entities.CompanySettings, error)
	Save(ctx context.Context, userID string, s entities.CompanySettings) (entities.CompanySettings, error)
}

type SettingsUseCase struct {
	repo interfaces.ISettingsRepository
	feed interfaces.IChangeFeed
	now  func() time.Time
}

var _ ISettingsUseCase = (*SettingsUseCase)(nil)

func NewSettingsUseCase(repo interfaces.ISettingsRepository, feed interfaces.IChangeFeed) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, feed: feed, now: time.Now}
}

// Get never fails for a user that saved nothing yet: the letterhead defaults
// are returned instead.
func (u *SettingsUseCase) Get(ctx context.Context, userID string) (entities.CompanySettings, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.CompanySettings{}, err
	}
	s, err := u.repo.Get(ctx, userID)
	if err != nil {
		return entities.CompanySettings{}, err
	}
	s.UserID = userID
	return WithSettingsDefaults(s), nil
}

// Save overwrites the whole record.
func (u *SettingsUseCase) Save(ctx context.Context, userID string, s entities.CompanySettings) (entities.CompanySettings, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.CompanySettings{}, err
	}
	s.UserID = userID
	s.CompanyName = strings.TrimSpace(s.CompanyName)
	s.CompanySubtitle = strings.TrimSpace(s.CompanySubtitle)
	s.Phone = strings.TrimSpace(s.Phone)
	s.FooterText = strings.TrimSpace(s.FooterText)
	s.UpdatedAt = u.now().UTC()

	saved, err := u.repo.Put(ctx, s)
	if err != nil {
		log.Printf("[settings][usecase] save failed user_id=%s err=%v", userID, err)
		return entities.CompanySettings{}, err
	}
	publishChange(ctx, u.feed, userID, entities.CollectionSettings)
	return saved, nil
}

// WithSettingsDefaults fills blank letterhead fields.
func WithSettingsDefaults(s entities.CompanySettings) entities.CompanySettings {
	if s.CompanyName == "" {
		s.CompanyName = DefaultCompanyName
	}
	if s.CompanySubtitle == "" {
		s.CompanySubtitle = DefaultCompanySubtitle
	}
	if s.FooterText == "" {
		s.FooterText = DefaultFooterText
	}
	return s
}
