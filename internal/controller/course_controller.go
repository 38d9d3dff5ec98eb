package controller

import (
	"fmt"
	"path/filepath"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/service"
	"skillspire_backend/internal/util"
	"skillspire_backend/pkg/logger"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CourseController struct {
	CourseService  *service.CourseService
	StorageService *service.StorageService
}

func NewCourseController(courseService *service.CourseService, storageService *service.StorageService) *CourseController {
	return &CourseController{
		CourseService:  courseService,
		StorageService: storageService,
	}
}

// GetCourses godoc
// @Summary 课程目录
// @Description 公开目录，只展示已发布课程，支持分类过滤和标题搜索
// @Tags 课程
// @Produce json
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   category query string false "分类 ID"
// @Param   search query string false "标题关键字"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	courses, total, err := c.CourseService.GetCourses(page, limit, ctx.Query("category"), ctx.Query("search"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetCourse godoc
// @Summary 课程详情
// @Description 按 slug 查询，带完整大纲。未发布课程只有讲师本人和管理员可见
// @Tags 课程
// @Produce json
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/v1/courses/{slug} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetCourseBySlug(ctx.Param("slug"), util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetMyCourses godoc
// @Summary 我的课程
// @Description 讲师查看自己创建的全部课程，含未发布的
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/instructor/courses [get]
func (c *CourseController) GetMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.GetMyCourses(claims)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 讲师创建课程，初始状态是草稿
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=service.CourseResponse}
// @Failure 403 {object} util.Response "非讲师"
// @Router /api/v1/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "课程 slug"
// @Param   body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Router /api/v1/courses/{slug} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(claims, ctx.Param("slug"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 仅管理员，课程下的全部内容级联删除
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Success 204 "删除成功"
// @Router /api/v1/admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteCourse(claims, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// UploadThumbnail godoc
// @Summary 上传课程封面
// @Tags 课程
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "课程 slug"
// @Param   thumbnail formData file true "封面图片"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Router /api/v1/courses/{slug}/thumbnail [post]
func (c *CourseController) UploadThumbnail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// 权限先行，校验不过就不往存储写文件
	course, err := c.CourseService.GetManagedCourse(claims, ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	oldURL := course.ThumbnailURL

	file, err := ctx.FormFile("thumbnail")
	if err != nil {
		util.BadRequest(ctx, "thumbnail file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("thumbnails/%s%s", model.GenerateUUID(), filepath.Ext(file.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	updated, err := c.CourseService.SetThumbnail(claims, ctx.Param("slug"), url)
	if err != nil {
		// 落库失败，清掉刚写入的对象
		if delErr := c.StorageService.Delete(ctx.Request.Context(), filename); delErr != nil {
			logger.Log.Warn("thumbnail cleanup failed", zap.String("key", filename), zap.Error(delErr))
		}
		util.HandleError(ctx, err)
		return
	}

	// 换图成功后删除旧封面，避免存储里积压废文件
	if oldURL != "" && oldURL != url {
		if key, ok := c.StorageService.KeyFromURL(oldURL); ok {
			if delErr := c.StorageService.Delete(ctx.Request.Context(), key); delErr != nil {
				logger.Log.Warn("stale thumbnail delete failed", zap.String("key", key), zap.Error(delErr))
			}
		}
	}

	util.Success(ctx, updated)
}

// SubmitForReview godoc
// @Summary 提交审核
// @Description 草稿或被驳回的课程提交给管理员审核
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Failure 409 {object} util.Response "当前状态不允许提交"
// @Router /api/v1/courses/{slug}/submit [post]
func (c *CourseController) SubmitForReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.CourseService.SubmitForReview(claims, ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetPendingCourses godoc
// @Summary 待审核课程
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses/pending [get]
func (c *CourseController) GetPendingCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListPendingCourses(claims)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ApproveCourse godoc
// @Summary 审批通过课程
// @Description pending → published，重复审批幂等
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Failure 409 {object} util.Response "当前状态不允许审批"
// @Router /api/v1/admin/courses/{id}/approve [post]
func (c *CourseController) ApproveCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.CourseService.ApproveCourse(claims, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// RejectCourse godoc
// @Summary 驳回课程
// @Description pending → rejected，讲师修改后可重新提交
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Failure 409 {object} util.Response "当前状态不允许驳回"
// @Router /api/v1/admin/courses/{id}/reject [post]
func (c *CourseController) RejectCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.CourseService.RejectCourse(claims, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}
