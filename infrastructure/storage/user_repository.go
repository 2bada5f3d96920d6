//go:generate go run go.uber.org/mock/mockgen -source=user_repository.go -destination=../../mocks/mock_user_repository.go -package=mocks
package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"quickchat/domain"
	"quickchat/errors"
)

type IUserRepository interface {
	CreateUser(email, fullName, bio, hashedPassword string) (string, error)
	GetUserByEmail(email string) (User, error)
	GetUserByID(id string) (domain.User, error)
	UpdateProfile(id, fullName, bio, profilePic string) (domain.User, error)
	ListExcluding(userID string) ([]domain.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is the repository-level representation of an account. Unlike
// domain.User it carries the password hash, which never leaves this layer
// except for credential checks.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Bio          string    `json:"bio"`
	ProfilePic   string    `json:"profile_pic"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func userKey(id string) []byte    { return []byte("user:id:" + id) }
func emailKey(email string) []byte { return []byte("user:email:" + email) }

// CreateUser persists a new account and its email index. It returns the newly
// generated user ID, or ErrUserAlreadyExists when the email is taken.
func (u UserRepository) CreateUser(email, fullName, bio, hashedPassword string) (string, error) {
	newID := uuid.NewString()
	record := User{
		ID:           newID,
		Email:        email,
		FullName:     fullName,
		Bio:          bio,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(emailKey(email), []byte(newID)); err != nil {
			return err
		}
		return txn.Set(userKey(newID), data)
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}

func (u UserRepository) GetUserByEmail(email string) (User, error) {
	var record User
	err := u.db.View(func(txn *badger.Txn) error {
		indexItem, err := txn.Get(emailKey(email))
		if err == badger.ErrKeyNotFound {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		id, err := indexItem.ValueCopy(nil)
		if err != nil {
			return err
		}
		return u.readUser(txn, string(id), &record)
	})
	return record, err
}

func (u UserRepository) GetUserByID(id string) (domain.User, error) {
	var record User
	err := u.db.View(func(txn *badger.Txn) error {
		return u.readUser(txn, id, &record)
	})
	if err != nil {
		return domain.User{}, err
	}
	return record.toDomain(), nil
}

// UpdateProfile mutates the editable profile fields only. An empty profilePic
// keeps the current picture, matching the product's update semantics.
func (u UserRepository) UpdateProfile(id, fullName, bio, profilePic string) (domain.User, error) {
	var record User
	err := u.db.Update(func(txn *badger.Txn) error {
		if err := u.readUser(txn, id, &record); err != nil {
			return err
		}
		record.FullName = fullName
		record.Bio = bio
		if profilePic != "" {
			record.ProfilePic = profilePic
		}
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return txn.Set(userKey(id), data)
	})
	if err != nil {
		return domain.User{}, err
	}
	return record.toDomain(), nil
}

// ListExcluding returns every account except the given one. This feeds the
// contact sidebar, so password hashes are stripped via the domain mapping.
func (u UserRepository) ListExcluding(userID string) ([]domain.User, error) {
	prefix := []byte("user:id:")
	var records []User

	err := u.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var record User
				if err := json.Unmarshal(value, &record); err != nil {
					return err
				}
				if record.ID != userID {
					records = append(records, record)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(r User, _ int) domain.User {
		return r.toDomain()
	}), nil
}

func (u UserRepository) readUser(txn *badger.Txn, id string, out *User) error {
	item, err := txn.Get(userKey(id))
	if err == badger.ErrKeyNotFound {
		return errors.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(value []byte) error {
		return json.Unmarshal(value, out)
	})
}

func (r User) toDomain() domain.User {
	return domain.User{
		ID:         r.ID,
		Email:      r.Email,
		FullName:   r.FullName,
		Bio:        r.Bio,
		ProfilePic: r.ProfilePic,
		CreatedAt:  r.CreatedAt,
	}
}
