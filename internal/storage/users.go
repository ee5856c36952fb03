package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/PoluyanbIch/BreadBot/internal/zodiac"
)

// MaxPasswordBytes - предел bcrypt, пароль длиннее не хешируется
const MaxPasswordBytes = 72

var (
	ErrUserExists      = errors.New("user already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

type User struct {
	UserID   int64
	Gender   zodiac.Gender
	Birthday time.Time
	ZodiacID int
}

// Sign возвращает знак зодиака, сохраненный при регистрации
func (u User) Sign() (zodiac.Sign, error) {
	_, sign, err := zodiac.FromID(u.ZodiacID)
	return sign, err
}

type UserStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db, now: time.Now}
}

func (s *UserStore) Exists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id=$1`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user %d: %w", userID, err)
	}
	return true, nil
}

// Add регистрирует пользователя: пароль хранится как bcrypt-хеш, знак зодиака считается сразу.
func (s *UserStore) Add(ctx context.Context, userID int64, password string, gender zodiac.Gender, birthday time.Time) (User, error) {
	sign, err := zodiac.SignFor(birthday.Day(), birthday.Month())
	if err != nil {
		return User{}, err
	}
	zodiacID, err := zodiac.ID(gender, sign)
	if err != nil {
		return User{}, err
	}

	if len(password) > MaxPasswordBytes {
		return User{}, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	// ON CONFLICT закрывает гонку двух регистраций с одним user_id
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, password_hash, gender, birth_day, birth_month, birth_year, zodiac_id, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, string(hash), string(gender), birthday.Day(), int(birthday.Month()), birthday.Year(), zodiacID, s.now().Unix())
	if err != nil {
		return User{}, fmt.Errorf("insert user %d: %w", userID, err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("insert user %d: %w", userID, err)
	}
	if inserted == 0 {
		return User{}, ErrUserExists
	}

	return User{UserID: userID, Gender: gender, Birthday: birthday, ZodiacID: zodiacID}, nil
}

func (s *UserStore) Get(ctx context.Context, userID int64) (User, error) {
	var (
		u                User
		gender           string
		day, month, year int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, gender, birth_day, birth_month, birth_year, zodiac_id FROM users WHERE user_id=$1`, userID).
		Scan(&u.UserID, &gender, &day, &month, &year, &u.ZodiacID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("load user %d: %w", userID, err)
	}
	u.Gender = zodiac.Gender(gender)
	u.Birthday = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return u, nil
}

// CheckPassword сверяет пароль с сохраненным хешем
func (s *UserStore) CheckPassword(ctx context.Context, userID int64, password string) (bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE user_id=$1`, userID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, fmt.Errorf("load password for %d: %w", userID, err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}
