package postgres

import (
	"database/sql"
	"fmt"

	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/rbac"
	"github.com/commerceops/backoffice/internal/user"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	query := `SELECT id, email, name, role, is_active, created_at, updated_at FROM users WHERE id = $1`
	if err := r.db.Get(&u, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	u.Permissions = rbac.PermissionStrings(rbac.Role(u.Role))
	return &u, nil
}

func (r *UserRepository) List(query pagination.PageQuery) ([]*user.User, int64, error) {
	where := ""
	args := []interface{}{}
	if query.HasSearch() {
		where = ` WHERE LOWER(name) LIKE $1 OR LOWER(email) LIKE $1`
		args = append(args, "%"+query.SearchPattern()+"%")
	}

	var total int64
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM users`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT id, email, name, role, is_active, created_at, updated_at FROM users%s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, query.PageSize, query.Offset())

	var users []*user.User
	if err := r.db.Select(&users, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	for _, u := range users {
		u.Permissions = rbac.PermissionStrings(rbac.Role(u.Role))
	}
	return users, total, nil
}
