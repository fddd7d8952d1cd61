package user

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, email, password, full_name, created_at, updated_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, email, password, full_name, created_at, updated_at FROM users WHERE lower(email) = lower($1)`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (email, password, full_name, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`,
		u.Email, u.Password, u.FullName, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}
