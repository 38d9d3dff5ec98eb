package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/service"
	"skillspire_backend/internal/util"
	"skillspire_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LessonController struct {
	CurriculumService *service.CurriculumService
	StorageService    *service.StorageService
}

func NewLessonController(curriculumService *service.CurriculumService, storageService *service.StorageService) *LessonController {
	return &LessonController{
		CurriculumService: curriculumService,
		StorageService:    storageService,
	}
}

// GetLesson godoc
// @Summary 课时详情
// @Tags 课程大纲
// @Produce json
// @Param   id path string true "课时 ID"
// @Success 200 {object} util.Response
// @Router /api/v1/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lesson, err := c.CurriculumService.GetLesson(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// CreateLesson godoc
// @Summary 创建课时
// @Tags 课程大纲
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "模块 ID"
// @Param   body body service.LessonRequest true "课时信息"
// @Success 201 {object} util.Response
// @Router /api/v1/modules/{id}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CurriculumService.CreateLesson(claims, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary 更新课时
// @Tags 课程大纲
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时 ID"
// @Param   body body service.LessonRequest true "课时信息"
// @Success 200 {object} util.Response
// @Router /api/v1/lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CurriculumService.UpdateLesson(claims, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Tags 课程大纲
// @Produce json
// @Security BearerAuth
// @Param   id path string true "课时 ID"
// @Success 204 "删除成功"
// @Router /api/v1/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CurriculumService.DeleteLesson(claims, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// UploadVideo godoc
// @Summary 上传课时视频
// @Description 先落临时文件用 ffmpeg 探测时长，再传到存储后端
// @Tags 课程大纲
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时 ID"
// @Param   video formData file true "视频文件"
// @Success 200 {object} util.Response
// @Router /api/v1/lessons/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// 权限先行，校验不过就不往存储写文件
	if _, err := c.CurriculumService.GetManagedLesson(claims, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), model.GenerateUUID()+filepath.Ext(file.Filename))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	durationMinutes := 0
	if info, err := util.GetVideoInfo(tmpPath); err == nil {
		durationMinutes = util.DurationToMinutes(info.Duration)
	} else {
		// 探测失败不阻断上传，时长留给讲师手动填
		logger.Log.Warn("video probe failed", zap.String("lesson_id", ctx.Param("id")), zap.Error(err))
	}

	filename := fmt.Sprintf("videos/%s/%s%s", ctx.Param("id"), model.GenerateUUID(), filepath.Ext(file.Filename))
	url, err := c.StorageService.UploadFile(ctx.Request.Context(), filename, tmpPath, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	lesson, err := c.CurriculumService.SetLessonVideo(claims, ctx.Param("id"), url, durationMinutes)
	if err != nil {
		if delErr := c.StorageService.Delete(ctx.Request.Context(), filename); delErr != nil {
			logger.Log.Warn("video cleanup failed", zap.String("key", filename), zap.Error(delErr))
		}
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// UploadAttachment godoc
// @Summary 上传课时附件
// @Tags 课程大纲
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时 ID"
// @Param   file formData file true "附件"
// @Success 201 {object} util.Response
// @Router /api/v1/lessons/{id}/attachments [post]
func (c *LessonController) UploadAttachment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// 权限先行，校验不过就不往存储写文件
	if _, err := c.CurriculumService.GetManagedLesson(claims, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "attachment file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("attachments/%s/%s%s", ctx.Param("id"), model.GenerateUUID(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	attachment := &model.LessonAttachment{
		FileName: file.Filename,
		FileURL:  url,
		FileType: contentType,
		FileSize: file.Size,
	}
	created, err := c.CurriculumService.AddAttachment(claims, ctx.Param("id"), attachment)
	if err != nil {
		if delErr := c.StorageService.Delete(ctx.Request.Context(), filename); delErr != nil {
			logger.Log.Warn("attachment cleanup failed", zap.String("key", filename), zap.Error(delErr))
		}
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// DeleteAttachment godoc
// @Summary 删除课时附件
// @Tags 课程大纲
// @Produce json
// @Security BearerAuth
// @Param   id path string true "附件 ID"
// @Success 204 "删除成功"
// @Router /api/v1/attachments/{id} [delete]
func (c *LessonController) DeleteAttachment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CurriculumService.DeleteAttachment(claims, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
