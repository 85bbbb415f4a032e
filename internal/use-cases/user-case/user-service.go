package user_case

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/cache"
	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	user_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	user_repo "github.com/Xenn-00/vorgang-meister/internal/repo/user-repo"
	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const profileTTL = 15 * time.Minute

type UserService struct {
	repo      user_repo.UserRepoContract
	txManager tx.TxManager
	cache     cache.Cache
	now       func() time.Time
}

func NewUserService(db *pgxpool.Pool, redis *redis.Client) UserServiceContract {
	return &UserService{
		repo:      user_repo.NewUserRepo(db),
		txManager: tx.NewPgxTxManager(db),
		cache:     cache.NewRedisCache(redis),
		now:       time.Now,
	}
}

func profileKey(userID string) string {
	return fmt.Sprintf("user_profile:%s", userID)
}

func (s *UserService) UserSelfProfile(ctx context.Context, userID string) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	// Redis dient nur als Cache, NICHT als Source of Truth
	var cached user_dto.UserProfileResponse
	if found, err := s.cache.Get(ctx, profileKey(userID), &cached); err == nil && found {
		return &cached, nil
	}

	// Bei Cache-Fehlern wird bewusst fortgefahren (Fallback auf DB)
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := user_dto.FromEntity(user)
	if err := s.cache.Set(ctx, profileKey(userID), resp, profileTTL); err != nil {
		log.Warn().Err(err.Err).Msg("Fehler beim Einstellen der Redis-Cache")
	}

	return &resp, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter user_dto.UserListFilter) ([]user_dto.UserProfileResponse, *app_errors.AppError) {
	var role *entity.UserRole
	if filter.Role != "" {
		r := entity.UserRole(filter.Role)
		role = &r
	}

	users, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}

	resp := make([]user_dto.UserProfileResponse, 0, len(users))
	for i := range users {
		resp = append(resp, user_dto.FromEntity(&users[i]))
	}
	return resp, nil
}

func (s *UserService) CreateUser(ctx context.Context, req user_dto.CreateUserRequest) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	role := entity.UserRole(req.Role)
	if !role.IsValid() {
		return nil, app_errors.NewFieldValidationError("role", "userRole", "validation.user_role")
	}

	hashed, hashErr := utils.GenerateHash(req.Password)
	if hashErr != nil {
		log.Error().Err(hashErr).Msg("Fehler beim Erzeugen des Passwort-Hashes")
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", hashErr)
	}

	userID, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
	}

	user := &entity.UserEntity{
		ID:           userID.String(),
		Username:     strings.TrimSpace(req.Username),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	user.UpdatedAt = user.CreatedAt

	if err := s.repo.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("Benutzer angelegt")
	resp := user_dto.FromEntity(user)
	return &resp, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, req user_dto.ChangePasswordRequest) *app_errors.AppError {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, hashErr := utils.VerifyHash(user.PasswordHash, req.OldPassword)
	if hashErr != nil || !ok {
		return app_errors.NewFieldValidationError("old_password", "mismatch", "user.old_password_mismatch")
	}

	hashed, genErr := utils.GenerateHash(req.NewPassword)
	if genErr != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", genErr)
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer t.Rollback(ctx)

	if err := s.repo.UpdatePasswordHashTx(ctx, t, userID, hashed); err != nil {
		return err
	}

	return t.Commit(ctx)
}

// RequireTechniker stellt sicher, dass jede ID einen aktiven Benutzer mit Rolle Techniker bezeichnet.
func (s *UserService) RequireTechniker(ctx context.Context, workerIDs []string) *app_errors.AppError {
	users, err := s.repo.FindManyByIDs(ctx, workerIDs)
	if err != nil {
		return err
	}

	byID := make(map[string]*entity.UserEntity, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	details := []app_errors.FieldError{}
	for i, id := range workerIDs {
		field := fmt.Sprintf("worker_ids[%d]", i)
		u, ok := byID[id]
		switch {
		case !ok:
			details = append(details, app_errors.FieldError{Field: field, Reason: "not_found", MessageKey: "user_not_found"})
		case !u.IsActive || u.Role != entity.TECHNIKER:
			details = append(details, app_errors.FieldError{Field: field, Reason: "role", MessageKey: "validation.worker_role"})
		}
	}
	if len(details) > 0 {
		return app_errors.NewValidationError(details)
	}
	return nil
}
