package service

import (
	"errors"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/repository"
	"skillspire_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (s *CategoryService) GetCategories() ([]model.Category, error) {
	return s.CategoryRepo.FindAll()
}

func (s *CategoryService) GetCategory(id string) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCategoryNotFound
	}
	return category, err
}

func (s *CategoryService) CreateCategory(req CategoryRequest) (*model.Category, error) {
	category := &model.Category{
		Name:        req.Name,
		Slug:        util.Slugify(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
	}
	if err := s.CategoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictErr("category %q already exists", req.Name)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(id string, req CategoryRequest) (*model.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		category.Slug = util.Slugify(req.Name)
	}
	category.Name = req.Name
	category.Description = req.Description
	category.Icon = req.Icon

	if err := s.CategoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictErr("category %q already exists", req.Name)
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除分类后其下课程的分类置空，课程本身保留
func (s *CategoryService) DeleteCategory(id string) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.CategoryRepo.Delete(id)
}
