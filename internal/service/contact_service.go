package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"usercontacts/internal/cache"
	apperrors "usercontacts/internal/errors"
	"usercontacts/internal/model"
	"usercontacts/internal/repository"
)

// ContactPatch carries the fields of a partial contact update; nil means unchanged.
type ContactPatch struct {
	Email *string
	Phone *string
}

// ContactService handles contact operations.
type ContactService interface {
	AddContact(ctx context.Context, userID uint, contact *model.Contact) (*model.Contact, error)
	GetContact(ctx context.Context, id uint) (*model.Contact, error)
	ListContacts(ctx context.Context) ([]model.Contact, error)
	ListUserContacts(ctx context.Context, userID uint) ([]model.Contact, error)
	ContactsByUser(ctx context.Context, userID uint) ([]model.ContactRow, error)
	UpdateContact(ctx context.Context, id uint, patch ContactPatch) (*model.Contact, error)
	DeleteContact(ctx context.Context, id uint) error
}

type contactService struct {
	users    repository.UserRepository
	contacts repository.ContactRepository
	cache    *cache.Client
	validate *validator.Validate
}

// NewContactService creates a new contact service.
func NewContactService(users repository.UserRepository, contacts repository.ContactRepository, cache *cache.Client) ContactService {
	return &contactService{
		users:    users,
		contacts: contacts,
		cache:    cache,
		validate: validator.New(),
	}
}

// AddContact attaches a normalized, validated contact to an existing user.
func (s *contactService) AddContact(ctx context.Context, userID uint, contact *model.Contact) (*model.Contact, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	contact.ID = 0
	contact.UserID = userID
	contact.User = nil
	if err := s.save(ctx, contact, s.contacts.Create); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) GetContact(ctx context.Context, id uint) (*model.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context) ([]model.Contact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// ListUserContacts returns the user's contacts; an unknown user simply has none.
func (s *contactService) ListUserContacts(ctx context.Context, userID uint) ([]model.Contact, error) {
	contacts, err := s.contacts.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user contacts: %w", err)
	}
	return contacts, nil
}

func (s *contactService) ContactsByUser(ctx context.Context, userID uint) ([]model.ContactRow, error) {
	rows, err := s.contacts.ListByUserRaw(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("contacts by user: %w", err)
	}
	return rows, nil
}

func (s *contactService) UpdateContact(ctx context.Context, id uint, patch ContactPatch) (*model.Contact, error) {
	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil {
		contact.Email = *patch.Email
	}
	if patch.Phone != nil {
		contact.Phone = *patch.Phone
	}
	if err := s.save(ctx, contact, s.contacts.Update); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id uint) error {
	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrContactNotFound
		}
		return fmt.Errorf("delete contact: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(contact.UserID))
	return nil
}

// save normalizes and validates contact before handing it to persist.
func (s *contactService) save(ctx context.Context, contact *model.Contact, persist func(context.Context, *model.Contact) error) error {
	contact.Normalize()
	if err := validateStruct(s.validate, contact); err != nil {
		return err
	}
	if err := persist(ctx, contact); err != nil {
		if repository.IsDuplicateKey(err) {
			return uniqueViolation("email")
		}
		return fmt.Errorf("save contact: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(contact.UserID))
	return nil
}
