package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService struct {
	categoryStore CategoryStore
	logger        *zap.Logger
}

func NewCategoryService(categoryStore CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryStore: categoryStore,
		logger:        logger,
	}
}

// ListByType merges the built-in set with the user's custom categories:
// built-ins first, then customs, each block sorted case-insensitively by
// name.
func (s *CategoryService) ListByType(ctx context.Context, userID uuid.UUID, catType models.CategoryType) ([]dto.CategoryResponse, error) {
	if !catType.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", ErrInvalidInput, catType)
	}

	builtins := models.BuiltinCategories(catType)
	sort.SliceStable(builtins, func(i, j int) bool {
		return strings.ToLower(builtins[i].Name) < strings.ToLower(builtins[j].Name)
	})

	customs, err := s.categoryStore.ListByOwnerAndType(ctx, userID.String(), catType)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(customs, func(i, j int) bool {
		return strings.ToLower(customs[i].Name) < strings.ToLower(customs[j].Name)
	})

	responses := make([]dto.CategoryResponse, 0, len(builtins)+len(customs))
	for i := range builtins {
		responses = append(responses, *toCategoryResponse(&builtins[i]))
	}
	for _, cat := range customs {
		responses = append(responses, *toCategoryResponse(cat))
	}
	return responses, nil
}

// Create adds a custom category. The duplicate-name check is
// case-insensitive within the type, across both built-ins and the user's
// existing customs.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	catType := models.CategoryType(req.Type)
	if !catType.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", ErrInvalidInput, req.Type)
	}

	taken, err := s.nameTaken(ctx, userID, catType, req.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryExists
	}

	now := time.Now()
	cat := &models.Category{
		ID:        uuid.NewString(),
		UserID:    userID.String(),
		Name:      req.Name,
		Type:      catType,
		Icon:      req.Icon,
		Color:     req.Color,
		IsCustom:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categoryStore.Create(ctx, cat); err != nil {
		return nil, err
	}

	return toCategoryResponse(cat), nil
}

func (s *CategoryService) Update(ctx context.Context, id string, userID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := s.ownedCustomCategory(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && !strings.EqualFold(*req.Name, cat.Name) {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
		}
		taken, err := s.nameTaken(ctx, userID, cat.Type, *req.Name, cat.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCategoryExists
		}
		cat.Name = *req.Name
	} else if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Icon != nil {
		cat.Icon = *req.Icon
	}
	if req.Color != nil {
		cat.Color = *req.Color
	}

	cat.UpdatedAt = time.Now()
	if err := s.categoryStore.Update(ctx, cat); err != nil {
		return nil, err
	}

	return toCategoryResponse(cat), nil
}

func (s *CategoryService) Delete(ctx context.Context, id string, userID uuid.UUID) error {
	cat, err := s.ownedCustomCategory(ctx, id, userID)
	if err != nil {
		return err
	}

	return s.categoryStore.Delete(ctx, cat.ID)
}

// ownedCustomCategory resolves a category id for mutation. Built-ins are
// never mutable, regardless of who asks.
func (s *CategoryService) ownedCustomCategory(ctx context.Context, id string, userID uuid.UUID) (*models.Category, error) {
	for _, builtin := range models.BuiltinCategories("") {
		if builtin.ID == id {
			return nil, ErrUnauthorized
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	cat, err := s.categoryStore.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if cat.UserID != userID.String() {
		return nil, ErrUnauthorized
	}
	return cat, nil
}

func (s *CategoryService) nameTaken(ctx context.Context, userID uuid.UUID, catType models.CategoryType, name, excludeID string) (bool, error) {
	for _, builtin := range models.BuiltinCategories(catType) {
		if strings.EqualFold(builtin.Name, name) {
			return true, nil
		}
	}

	customs, err := s.categoryStore.ListByOwnerAndType(ctx, userID.String(), catType)
	if err != nil {
		return false, err
	}
	for _, cat := range customs {
		if cat.ID != excludeID && strings.EqualFold(cat.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func toCategoryResponse(cat *models.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:       cat.ID,
		Name:     cat.Name,
		Type:     string(cat.Type),
		Icon:     cat.Icon,
		Color:    cat.Color,
		IsCustom: cat.IsCustom,
	}
}
