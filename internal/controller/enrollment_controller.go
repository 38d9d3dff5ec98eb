package controller

import (
	"skillspire_backend/internal/service"
	"skillspire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary 报名课程
// @Description 只能报名已发布课程，重复报名返回 409
// @Tags 学习
// @Produce json
// @Security BearerAuth
// @Param   slug path string true "课程 slug"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在或未发布"
// @Failure 409 {object} util.Response "已报名"
// @Router /api/v1/courses/{slug}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// GetMyEnrollments godoc
// @Summary 我的报名
// @Description 学生的全部报名记录，按报名时间倒序
// @Tags 学习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/enrollments [get]
func (c *EnrollmentController) GetMyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.EnrollmentService.GetMyEnrollments(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// GetProgress godoc
// @Summary 课程学习进度
// @Description 返回报名记录和已完成课时 ID 列表
// @Tags 学习
// @Produce json
// @Security BearerAuth
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=service.ProgressResponse}
// @Failure 404 {object} util.Response "未报名"
// @Router /api/v1/courses/{slug}/progress [get]
func (c *EnrollmentController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.EnrollmentService.GetProgress(claims.UserID, ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// CompleteLesson godoc
// @Summary 标记课时完成
// @Description 幂等操作，进度按已完成课时数重算
// @Tags 学习
// @Produce json
// @Security BearerAuth
// @Param   id path string true "课时 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课时不存在或未报名所属课程"
// @Router /api/v1/lessons/{id}/complete [post]
func (c *EnrollmentController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, err := c.EnrollmentService.MarkLessonComplete(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}
