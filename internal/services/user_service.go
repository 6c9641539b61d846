package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
	"busbackend/internal/logger"
	"busbackend/internal/repositories"
)

// UserService handles counter-agent accounts and credentials. Admins manage
// counters; agents may only change their own username and password.
type UserService struct {
	UserRepo repositories.UserRepository
	Log      logger.Logger
}

func NewUserService(userRepo repositories.UserRepository, log logger.Logger) *UserService {
	return &UserService{UserRepo: userRepo, Log: log}
}

// Authenticate checks username/password and rejects blocked accounts.
// The generic message keeps username probing uninformative.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.UserRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, domain.UnauthorizedError{Msg: "username atau password salah"}
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, domain.UnauthorizedError{Msg: "username atau password salah"}
	}
	if user.IsBlocked {
		return models.User{}, domain.UnauthorizedError{Msg: "akun diblokir"}
	}
	return user, nil
}

type CounterInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	City        string `json:"city"`
	CounterName string `json:"counterName"`
}

func (s *UserService) CreateCounter(ctx context.Context, actor domain.Actor, in CounterInput) (models.User, error) {
	if !actor.IsAdmin() {
		return models.User{}, domain.UnauthorizedError{Msg: "hanya admin"}
	}
	if len(strings.TrimSpace(in.Password)) < 6 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "password minimal 6 karakter"}
	}
	user := models.User{
		Username:    strings.TrimSpace(in.Username),
		Role:        domain.RoleCounter,
		City:        strings.TrimSpace(in.City),
		CounterName: strings.TrimSpace(in.CounterName),
	}
	if err := user.Validate(); err != nil {
		return models.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
	}
	user.PasswordHash = string(hash)

	created, err := s.UserRepo.Create(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	s.Log.Info("counter created", "user_id", created.ID, "username", created.Username, "counter", created.CounterName)
	return created, nil
}

// EditCounter lets an admin reset a counter's username and/or password.
func (s *UserService) EditCounter(ctx context.Context, actor domain.Actor, id domain.ID, username, password string) error {
	if !actor.IsAdmin() {
		return domain.UnauthorizedError{Msg: "hanya admin"}
	}
	var uname, hash *string
	if u := strings.TrimSpace(username); u != "" {
		uname = &u
	}
	if p := strings.TrimSpace(password); p != "" {
		if len(p) < 6 {
			return domain.ValidationError{Field: "password", Msg: "password minimal 6 karakter"}
		}
		h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
		if err != nil {
			return domain.InternalError{Msg: "gagal meng-hash password", Err: err}
		}
		hs := string(h)
		hash = &hs
	}
	return s.UserRepo.UpdateCredentials(ctx, id, uname, hash)
}

func (s *UserService) ListCounters(ctx context.Context, actor domain.Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.UnauthorizedError{Msg: "hanya admin"}
	}
	return s.UserRepo.ListCounters(ctx)
}

// ToggleBlock flips the blocked flag and returns the new state.
func (s *UserService) ToggleBlock(ctx context.Context, actor domain.Actor, id domain.ID) (bool, error) {
	if !actor.IsAdmin() {
		return false, domain.UnauthorizedError{Msg: "hanya admin"}
	}
	user, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !user.IsBlocked
	if err := s.UserRepo.SetBlocked(ctx, id, next); err != nil {
		return false, err
	}
	s.Log.Info("counter block toggled", "user_id", id, "blocked", next)
	return next, nil
}

func (s *UserService) DeleteCounter(ctx context.Context, actor domain.Actor, id domain.ID) error {
	if !actor.IsAdmin() {
		return domain.UnauthorizedError{Msg: "hanya admin"}
	}
	if actor.UserID == id {
		return domain.ValidationError{Msg: "tidak bisa menghapus akun sendiri"}
	}
	return s.UserRepo.Delete(ctx, id)
}

// ChangePassword verifies the current password before setting the new one.
func (s *UserService) ChangePassword(ctx context.Context, actor domain.Actor, current, next string) error {
	user, err := s.UserRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ValidationError{Field: "currentPassword", Msg: "password saat ini salah"}
	}
	if len(strings.TrimSpace(next)) < 6 {
		return domain.ValidationError{Field: "newPassword", Msg: "password minimal 6 karakter"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "gagal meng-hash password", Err: err}
	}
	hs := string(hash)
	return s.UserRepo.UpdateCredentials(ctx, actor.UserID, nil, &hs)
}

// UpdateProfile lets an agent change their own username.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, username string) error {
	u := strings.TrimSpace(username)
	if u == "" {
		return domain.ValidationError{Field: "username", Msg: "username wajib diisi"}
	}
	return s.UserRepo.UpdateCredentials(ctx, actor.UserID, &u, nil)
}

func (s *UserService) Profile(ctx context.Context, actor domain.Actor) (models.User, error) {
	return s.UserRepo.GetByID(ctx, actor.UserID)
}
