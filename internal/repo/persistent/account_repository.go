package persistent

import (
	"errors"

	"tikify/internal/entity"
	"tikify/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	CreateAccount(account *entity.Account) error
	FindAccountByUsername(username string) (*entity.Account, error)
	CreateInvite(code string) error
	ConsumeInvite(code string) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(account *entity.Account) error {
	accountModel := &model.AccountModel{
		ID:           account.ID,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
	}
	if err := r.db.Create(accountModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrUsernameTaken
		}
		return err
	}
	account.ID = accountModel.ID
	account.CreatedAt = accountModel.CreatedAt
	return nil
}

func (r *accountRepository) FindAccountByUsername(username string) (*entity.Account, error) {
	var accountModel model.AccountModel
	if err := r.db.Where("username = ?", username).First(&accountModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, err
	}
	return ToAccountEntity(&accountModel), nil
}

func (r *accountRepository) CreateInvite(code string) error {
	return r.db.Create(&model.InviteModel{Code: code}).Error
}

// ConsumeInvite marks an unused invite as used. The guarded UPDATE makes the
// code single-use even under concurrent registrations.
func (r *accountRepository) ConsumeInvite(code string) error {
	result := r.db.Model(&model.InviteModel{}).
		Where("code = ? AND used = ?", code, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrInviteInvalid
	}
	return nil
}
