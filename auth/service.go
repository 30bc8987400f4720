package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/Charchl1/Blog-Project/apperror"
	"github.com/Charchl1/Blog-Project/config"
	"github.com/Charchl1/Blog-Project/forms"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// adminBootstrapLockID is the advisory lock key serializing registration
// transactions, so at most one of them can observe the empty users table.
const adminBootstrapLockID = 874219042

// Service defines the authentication operations used by the HTTP layer and
// the background session cleaner.
type Service interface {
	// Register creates a user and establishes a session for it (auto-login).
	Register(ctx context.Context, form *forms.RegisterForm) (*User, *Session, error)
	// Login verifies credentials and establishes a session.
	Login(ctx context.Context, form *forms.LoginForm) (*User, *Session, error)
	// Logout removes the session record.
	Logout(ctx context.Context, token uuid.UUID) error
	// IdentityForToken resolves a session token to an Identity. Unknown or
	// expired tokens resolve to the anonymous (nil) identity without error.
	IdentityForToken(ctx context.Context, token uuid.UUID) (*Identity, error)
	// PurgeExpiredSessions deletes sessions past their expiry and reports
	// how many were removed.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authServiceImpl struct {
	db  *pgxpool.Pool
	cfg config.SessionConfig
}

// NewService creates the pgx-backed authentication service.
func NewService(db *pgxpool.Pool, cfg config.SessionConfig) Service {
	return &authServiceImpl{db: db, cfg: cfg}
}

// Register hashes the password, inserts the user and opens a session, all in
// one transaction. A duplicate email surfaces as a ConflictError and leaves
// no trace in the database. The first user on an empty database becomes the
// admin.
func (s *authServiceImpl) Register(ctx context.Context, form *forms.RegisterForm) (_ *User, _ *Session, err error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperror.NewInternalError("failed to hash password", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	user := &User{
		Email:          strings.ToLower(form.Email),
		HashedPassword: string(hashedPassword),
		Name:           form.Name,
	}

	// The admin role goes to whoever registers first. The advisory lock is
	// held until commit, so concurrent registrations cannot both see the
	// table empty.
	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, adminBootstrapLockID); err != nil {
		err = apperror.NewDatabaseError("failed to acquire registration lock", err)
		return nil, nil, err
	}
	var hasUsers bool
	if err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&hasUsers); err != nil {
		err = apperror.NewDatabaseError("failed to check existing users", err)
		return nil, nil, err
	}
	user.Role = RoleMember
	if !hasUsers {
		user.Role = RoleAdmin
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		user.Email, user.HashedPassword, user.Name, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			err = apperror.NewConflictError("You have already signed up with that email. Try to log in.", nil)
			return nil, nil, err
		}
		err = apperror.NewDatabaseError("failed to create user", err)
		return nil, nil, err
	}

	session, err := s.insertSession(ctx, tx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Login verifies the email and password and opens a session. The two failure
// modes are reported separately so the pages can tell the user whether to
// register or to re-check the password.
func (s *authServiceImpl) Login(ctx context.Context, form *forms.LoginForm) (*User, *Session, error) {
	var user User
	err := s.db.QueryRow(ctx, `
		SELECT id, email, password, name, role, created_at
		FROM users
		WHERE email = $1`,
		strings.ToLower(form.Email),
	).Scan(&user.ID, &user.Email, &user.HashedPassword, &user.Name, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperror.NewAuthError("User with that email does not exist. Check your email or register.", nil)
		}
		return nil, nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(form.Password)); err != nil {
		return nil, nil, apperror.NewAuthError("Wrong password.", nil)
	}

	session, err := s.insertSession(ctx, s.db, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return &user, session, nil
}

// Logout deletes the session record. Deleting an already-removed session is
// not an error; the cookie is cleared either way.
func (s *authServiceImpl) Logout(ctx context.Context, token uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return apperror.NewDatabaseError("failed to delete session", err)
	}
	return nil
}

// IdentityForToken looks up the session and its user in one query. A missing
// or expired session is the anonymous identity, not an error.
func (s *authServiceImpl) IdentityForToken(ctx context.Context, token uuid.UUID) (*Identity, error) {
	var identity Identity
	err := s.db.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.role
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > now()`,
		token,
	).Scan(&identity.UserID, &identity.Name, &identity.Email, &identity.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to resolve session", err)
	}
	return &identity, nil
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *authServiceImpl) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, apperror.NewDatabaseError("failed to purge expired sessions", err)
	}
	return tag.RowsAffected(), nil
}

// isUniqueViolation reports whether err is a unique violation on the named
// constraint. An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, letting
// insertSession run inside or outside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *authServiceImpl) insertSession(ctx context.Context, q querier, userID int) (*Session, error) {
	session := &Session{
		Token:     uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.cfg.TTL),
	}
	var token uuid.UUID
	err := q.QueryRow(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING token`,
		session.Token, session.UserID, session.ExpiresAt,
	).Scan(&token)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create session", err)
	}
	return session, nil
}
