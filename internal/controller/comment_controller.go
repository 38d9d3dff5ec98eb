package controller

import (
	"skillspire_backend/internal/service"
	"skillspire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// GetComments godoc
// @Summary 课时讨论区
// @Description 返回完整讨论树，顶层新帖在前，回复按时间正序
// @Tags 讨论
// @Produce json
// @Param   id path string true "课时 ID"
// @Success 200 {object} util.Response
// @Router /api/v1/lessons/{id}/comments [get]
func (c *CommentController) GetComments(ctx *gin.Context) {
	comments, err := c.CommentService.ListByLesson(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// CreateComment godoc
// @Summary 发表评论或回复
// @Description parentId 非空时是回复，父评论必须属于同一课时
// @Tags 讨论
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时 ID"
// @Param   body body service.CommentRequest true "评论内容"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "内容为空"
// @Failure 404 {object} util.Response "课时或父评论不存在"
// @Router /api/v1/lessons/{id}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.Create(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// DeleteComment godoc
// @Summary 删除评论
// @Description 作者本人或管理员可删，整棵回复子树一并删除
// @Tags 讨论
// @Produce json
// @Security BearerAuth
// @Param   id path string true "评论 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权限"
// @Router /api/v1/comments/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	deleted, err := c.CommentService.Delete(claims, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": deleted})
}
