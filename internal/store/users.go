package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/punchamoorthee/bankledger/internal/domain"
	"github.com/punchamoorthee/bankledger/internal/validate"
)

type userRow struct {
	name    string
	surname string
	user    domain.NewUser
}

// AddUsers splits every full name first and only then writes the batch.
func (s *Store) AddUsers(ctx context.Context, users ...domain.NewUser) (domain.Result, error) {
	rows := make([]userRow, 0, len(users))
	for i, u := range users {
		name, surname, err := validate.FullName(u.FullName)
		if err != nil {
			err = fmt.Errorf("AddUsers: item %d: %w", i, err)
			return domain.ResultFromError(err), err
		}
		rows = append(rows, userRow{name: name, surname: surname, user: u})
	}

	if len(rows) > 0 {
		err := s.withTx(ctx, "AddUsers", func(tx pgx.Tx) error {
			batch := &pgx.Batch{}
			for _, r := range rows {
				batch.Queue(
					"INSERT INTO users (name, surname, birth_day, accounts) VALUES ($1, $2, $3, $4)",
					r.name, r.surname, r.user.BirthDay, r.user.Accounts,
				)
			}
			return tx.SendBatch(ctx, batch).Close()
		})
		if err != nil {
			return domain.ResultFromError(err), err
		}
	}

	return domain.Success(fmt.Sprintf("Added %d users", len(rows)), len(rows)), nil
}

// ModifyUser applies the fields present in patch. A user that does not exist is ErrNotFound.
func (s *Store) ModifyUser(ctx context.Context, userID int64, patch domain.UserPatch) (domain.Result, error) {
	query, args, err := buildUserUpdate(userID, patch)
	if err != nil {
		err = fmt.Errorf("ModifyUser: %w", err)
		return domain.ResultFromError(err), err
	}

	err = s.withTx(ctx, "ModifyUser", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return domain.ResultFromError(err), err
	}
	return domain.Success("User updated", 1), nil
}

// buildUserUpdate renders the UPDATE for the present patch fields in a fixed column order.
func buildUserUpdate(userID int64, patch domain.UserPatch) (string, []any, error) {
	if patch.Empty() {
		return "", nil, &domain.FormatError{Field: "patch", Reason: "no fields to update"}
	}

	name, surname := patch.Name, patch.Surname
	if patch.FullName != nil {
		first, last, err := validate.FullName(*patch.FullName)
		if err != nil {
			return "", nil, err
		}
		name, surname = &first, &last
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return "", nil, &domain.FormatError{Field: "name", Reason: "must not be empty"}
		}
		add("name", *name)
	}
	if surname != nil {
		if strings.TrimSpace(*surname) == "" {
			return "", nil, &domain.FormatError{Field: "surname", Reason: "must not be empty"}
		}
		add("surname", *surname)
	}
	if patch.BirthDay != nil {
		add("birth_day", *patch.BirthDay)
	}
	if patch.Accounts != nil {
		add("accounts", *patch.Accounts)
	}

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args, nil
}

// DeleteUser removes a user that owns no accounts. Owners are rejected with
// ErrUserHasAccounts rather than leaving accounts pointing at nobody.
func (s *Store) DeleteUser(ctx context.Context, userID int64) (domain.Result, error) {
	err := s.withTx(ctx, "DeleteUser", func(tx pgx.Tx) error {
		var owned int64
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM accounts WHERE user_id = $1", userID).Scan(&owned); err != nil {
			return err
		}
		if owned > 0 {
			return fmt.Errorf("user %d owns %d accounts: %w", userID, owned, domain.ErrUserHasAccounts)
		}

		tag, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return domain.ResultFromError(err), err
	}
	return domain.Success(fmt.Sprintf("Deleted user %d", userID), 1), nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	var u domain.User
	err := s.withReadTx(ctx, "GetUser", func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT id, COALESCE(name, ''), COALESCE(surname, ''), birth_day, COALESCE(accounts, '')
			 FROM users WHERE id = $1`, userID,
		).Scan(&u.ID, &u.Name, &u.Surname, &u.BirthDay, &u.Accounts)
		if err == pgx.ErrNoRows {
			return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
		}
		return err
	})
	return u, err
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.withReadTx(ctx, "ListUsers", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id, COALESCE(name, ''), COALESCE(surname, ''), birth_day, COALESCE(accounts, '')
			 FROM users ORDER BY id`)
		if err != nil {
			return err
		}
		users, err = pgx.CollectRows(rows, pgx.RowToStructByPos[domain.User])
		return err
	})
	return users, err
}
