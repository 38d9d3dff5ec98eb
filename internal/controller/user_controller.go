package controller

import (
	"fmt"
	"path/filepath"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/service"
	"skillspire_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
	}
}

// UpdateProfile godoc
// @Summary 更新个人档案
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ProfileUpdateRequest true "档案信息"
// @Success 200 {object} util.Response
// @Router /api/v1/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   avatar formData file true "头像图片"
// @Success 200 {object} util.Response
// @Router /api/v1/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("avatars/%d%s", claims.UserID, filepath.Ext(file.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	profile, err := c.UserService.UpdateAvatar(claims.UserID, url)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// GetUsers godoc
// @Summary 用户列表
// @Description 管理员分页查看用户，支持按名字和邮箱搜索
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   search query string false "搜索关键字"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/admin/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	users, total, err := c.UserService.GetUsers(page, limit, ctx.Query("search"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

type RoleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole godoc
// @Summary 调整用户角色
// @Description 管理员把用户设为 admin、pengajar 或 pelajar
// @Tags 管理后台
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户 ID"
// @Param   body body RoleUpdateRequest true "目标角色"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/{id}/role [put]
func (c *UserController) UpdateUserRole(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("id"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req RoleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.UpdateUserRole(userID, model.UserRole(req.Role)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": userID, "role": req.Role})
}

// GetPlatformStats godoc
// @Summary 平台概览
// @Description 管理后台首页的用户、课程、报名统计
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PlatformStats}
// @Router /api/v1/admin/stats [get]
func (c *UserController) GetPlatformStats(ctx *gin.Context) {
	stats, err := c.UserService.GetPlatformStats()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
