package repository

import "microloan/domain"

type UserRepository interface {
	Create(user domain.User) (domain.User, error)
	ByID(id int64) (domain.User, error)
	ByEmail(email string) (domain.User, error)
	All() ([]domain.User, error)
	UpdateCibil(id int64, score int) error
	Delete(id int64) error
}
