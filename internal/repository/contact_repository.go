package repository

import (
	"context"

	"gorm.io/gorm"

	"usercontacts/internal/model"
)

const contactsByUserSQL = `
SELECT c.id, c.email, c.phone, u.first_name, u.last_name
FROM contacts c
JOIN users u ON c.user_id = u.id
WHERE u.id = @userID
ORDER BY c.id DESC`

// ContactRepository defines contact persistence operations.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Contact, error)
	List(ctx context.Context) ([]model.Contact, error)
	ListByUserID(ctx context.Context, userID uint) ([]model.Contact, error)
	ListByUserRaw(ctx context.Context, userID uint) ([]model.ContactRow, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create creates a new contact.
func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Omit("User").Create(contact).Error
}

// Update updates an existing contact.
func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Omit("User").Save(contact).Error
}

// Delete deletes a contact by ID.
func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Contact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a contact by ID.
func (r *contactRepository) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// List returns every contact with the owner's id and names.
func (r *contactRepository) List(ctx context.Context) ([]model.Contact, error) {
	contacts := []model.Contact{}
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name")
		}).
		Order("id").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// ListByUserID lists the contacts owned by a user.
func (r *contactRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// ListByUserRaw runs the contacts-by-user join as a parameterized raw query.
func (r *contactRepository) ListByUserRaw(ctx context.Context, userID uint) ([]model.ContactRow, error) {
	rows := []model.ContactRow{}
	if err := r.db.WithContext(ctx).Raw(contactsByUserSQL, map[string]interface{}{"userID": userID}).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
