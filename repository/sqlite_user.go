package repository

import (
	"database/sql"
	"errors"
	"time"

	"microloan/domain"
)

type SQLiteUserRepository struct {
	store *Store
}

func NewSQLiteUserRepository(store *Store) *SQLiteUserRepository {
	return &SQLiteUserRepository{store: store}
}

func (r *SQLiteUserRepository) Create(user domain.User) (domain.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	res, err := r.store.db.Exec(`INSERT INTO users
		(full_name, email, mobile, password, role, aadhar, pan, cibil_score, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		user.FullName, user.Email, user.Mobile, user.Password, user.Role,
		user.Aadhar, user.PAN, user.CibilScore, user.CreatedAt.Unix(),
	)
	if err != nil {
		return domain.User{}, err
	}
	user.ID, err = res.LastInsertId()
	return user, err
}

func (r *SQLiteUserRepository) ByID(id int64) (domain.User, error) {
	return r.scanOne(r.store.db.QueryRow(
		`SELECT id, full_name, email, mobile, password, role, aadhar, pan, cibil_score, created_at
		 FROM users WHERE id = ?`, id))
}

func (r *SQLiteUserRepository) ByEmail(email string) (domain.User, error) {
	return r.scanOne(r.store.db.QueryRow(
		`SELECT id, full_name, email, mobile, password, role, aadhar, pan, cibil_score, created_at
		 FROM users WHERE email = ?`, email))
}

func (r *SQLiteUserRepository) scanOne(row *sql.Row) (domain.User, error) {
	var user domain.User
	var createdAt int64
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Mobile,
		&user.Password, &user.Role, &user.Aadhar, &user.PAN, &user.CibilScore, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	user.CreatedAt = time.Unix(createdAt, 0)
	return user, nil
}

func (r *SQLiteUserRepository) All() ([]domain.User, error) {
	rows, err := r.store.db.Query(
		`SELECT id, full_name, email, mobile, password, role, aadhar, pan, cibil_score, created_at
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		var createdAt int64
		if err := rows.Scan(&user.ID, &user.FullName, &user.Email, &user.Mobile,
			&user.Password, &user.Role, &user.Aadhar, &user.PAN, &user.CibilScore, &createdAt); err != nil {
			return nil, err
		}
		user.CreatedAt = time.Unix(createdAt, 0)
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *SQLiteUserRepository) UpdateCibil(id int64, score int) error {
	res, err := r.store.db.Exec(`UPDATE users SET cibil_score = ? WHERE id = ?`, score, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *SQLiteUserRepository) Delete(id int64) error {
	res, err := r.store.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
