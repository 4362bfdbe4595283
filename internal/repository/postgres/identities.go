package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/repository"
)

const identitiesTable = "portal.identities"

var identityColumns = []string{
	"id",
	"name",
	"natural_id",
	"email",
	"phone",
	"password_hash",
	"role",
	"verification_code",
	"reset_password_token",
	"created_at",
	"updated_at",
}

// IdentityRepository implements port.IdentityStore using PostgreSQL.
type IdentityRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewIdentityRepository wires a PostgreSQL-backed identity repository.
func NewIdentityRepository(exec pgExecutor) *IdentityRepository {
	return &IdentityRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new identity row and returns it with the generated id.
func (r *IdentityRepository) Create(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	var emailValue any
	if identity.Email != "" {
		emailValue = identity.Email
	}

	var phoneValue any
	if identity.Phone != nil && *identity.Phone != "" {
		phoneValue = *identity.Phone
	}

	now := time.Now().UTC()
	createdAt := identity.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := identity.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	query := r.builder.Insert(identitiesTable).
		Columns(
			"name",
			"natural_id",
			"email",
			"phone",
			"password_hash",
			"role",
			"verification_code",
			"reset_password_token",
			"created_at",
			"updated_at",
		).
		Values(
			identity.Name,
			identity.NaturalID,
			emailValue,
			phoneValue,
			identity.PasswordHash,
			string(identity.Role),
			identity.VerificationCode,
			identity.ResetToken,
			createdAt,
			updatedAt,
		).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()
	if err != nil {
		return domain.Identity{}, fmt.Errorf("build insert identity sql: %w", err)
	}

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&identity.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Identity{}, repository.ErrDuplicate
		}
		return domain.Identity{}, fmt.Errorf("insert identity: %w", err)
	}

	identity.CreatedAt = createdAt
	identity.UpdatedAt = updatedAt

	return identity, nil
}

// GetByNaturalID retrieves an identity by its natural identifier.
func (r *IdentityRepository) GetByNaturalID(ctx context.Context, naturalID string) (*domain.Identity, error) {
	return r.getBy(ctx, squirrel.Eq{"natural_id": naturalID}, "identity by natural id")
}

// GetByEmail retrieves an identity by email address.
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email}, "identity by email")
}

// GetByResetToken retrieves the identity holding an outstanding reset token.
func (r *IdentityRepository) GetByResetToken(ctx context.Context, token string) (*domain.Identity, error) {
	return r.getBy(ctx, squirrel.Eq{"reset_password_token": token}, "identity by reset token")
}

// GetByVerificationCode retrieves an identity by its verification code.
func (r *IdentityRepository) GetByVerificationCode(ctx context.Context, code string) (*domain.Identity, error) {
	return r.getBy(ctx, squirrel.Eq{"verification_code": code}, "identity by verification code")
}

func (r *IdentityRepository) getBy(ctx context.Context, pred squirrel.Eq, what string) (*domain.Identity, error) {
	stmt, args, err := r.builder.
		Select(identityColumns...).
		From(identitiesTable).
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s sql: %w", what, err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	var (
		identity   domain.Identity
		email      sql.NullString
		phone      sql.NullString
		code       sql.NullString
		resetToken sql.NullString
		role       string
	)

	if err := row.Scan(
		&identity.ID,
		&identity.Name,
		&identity.NaturalID,
		&email,
		&phone,
		&identity.PasswordHash,
		&role,
		&code,
		&resetToken,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan %s: %w", what, err)
	}

	identity.Role = domain.Role(role)
	if email.Valid {
		identity.Email = email.String
	}
	if phone.Valid {
		val := phone.String
		identity.Phone = &val
	}
	if code.Valid {
		val := code.String
		identity.VerificationCode = &val
	}
	if resetToken.Valid {
		val := resetToken.String
		identity.ResetToken = &val
	}

	return &identity, nil
}

// SetResetToken installs (or overwrites) the reset token on an identity.
func (r *IdentityRepository) SetResetToken(ctx context.Context, identityID int64, token string) error {
	stmt, args, err := r.builder.Update(identitiesTable).
		Set("reset_password_token", token).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": identityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set reset token sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ConsumeResetToken installs the new credential hash and clears the reset
// token in one conditional update keyed on the token value. Concurrent
// callers race on the WHERE clause; at most one row matches, so at most
// one caller gets the identity id back.
func (r *IdentityRepository) ConsumeResetToken(ctx context.Context, token string, passwordHash string, changedAt time.Time) (int64, error) {
	stmt, args, err := r.builder.Update(identitiesTable).
		Set("password_hash", passwordHash).
		Set("reset_password_token", nil).
		Set("updated_at", changedAt).
		Where(squirrel.Eq{"reset_password_token": token}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build consume reset token sql: %w", err)
	}

	var identityID int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&identityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("consume reset token: %w", err)
	}

	return identityID, nil
}

var _ port.IdentityStore = (*IdentityRepository)(nil)
