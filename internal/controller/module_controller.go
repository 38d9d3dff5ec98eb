package controller

import (
	"skillspire_backend/internal/service"
	"skillspire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	CurriculumService *service.CurriculumService
}

func NewModuleController(curriculumService *service.CurriculumService) *ModuleController {
	return &ModuleController{CurriculumService: curriculumService}
}

// GetModules godoc
// @Summary 课程模块列表
// @Description 按 order_index 排序，课时一并返回
// @Tags 课程大纲
// @Produce json
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{slug}/modules [get]
func (c *ModuleController) GetModules(ctx *gin.Context) {
	modules, err := c.CurriculumService.GetModules(ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// CreateModule godoc
// @Summary 创建模块
// @Tags 课程大纲
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "课程 slug"
// @Param   body body service.ModuleRequest true "模块信息"
// @Success 201 {object} util.Response
// @Router /api/v1/courses/{slug}/modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.CurriculumService.CreateModule(claims, ctx.Param("slug"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary 更新模块
// @Tags 课程大纲
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "模块 ID"
// @Param   body body service.ModuleRequest true "模块信息"
// @Success 200 {object} util.Response
// @Router /api/v1/modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.CurriculumService.UpdateModule(claims, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary 删除模块
// @Description 模块下的课时、附件、讨论一并删除
// @Tags 课程大纲
// @Produce json
// @Security BearerAuth
// @Param   id path string true "模块 ID"
// @Success 204 "删除成功"
// @Router /api/v1/modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CurriculumService.DeleteModule(claims, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
