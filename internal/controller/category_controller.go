package controller

import (
	"skillspire_backend/internal/service"
	"skillspire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// GetCategories godoc
// @Summary 分类列表
// @Tags 分类
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/categories [get]
func (c *CategoryController) GetCategories(ctx *gin.Context) {
	categories, err := c.CategoryService.GetCategories()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// GetCategory godoc
// @Summary 分类详情
// @Tags 分类
// @Produce json
// @Param   id path string true "分类 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/v1/categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	category, err := c.CategoryService.GetCategory(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// CreateCategory godoc
// @Summary 创建分类
// @Tags 管理后台
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CategoryRequest true "分类信息"
// @Success 201 {object} util.Response
// @Router /api/v1/admin/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.CreateCategory(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// UpdateCategory godoc
// @Summary 更新分类
// @Tags 管理后台
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "分类 ID"
// @Param   body body service.CategoryRequest true "分类信息"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.UpdateCategory(ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary 删除分类
// @Description 分类下的课程不会被删除，只是分类被置空
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param   id path string true "分类 ID"
// @Success 204 "删除成功"
// @Router /api/v1/admin/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	if err := c.CategoryService.DeleteCategory(ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
