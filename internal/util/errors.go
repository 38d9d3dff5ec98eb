package util

import "fmt"

// ErrorKind 请求级错误分类，controller 统一按 kind 映射 HTTP 状态码
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindForbidden         ErrorKind = "forbidden"
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindInvalidTransition ErrorKind = "invalid_transition"
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func ValidationErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ForbiddenErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NotFoundErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func TransitionErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrEmailRegistered    = ConflictErr("该邮箱已被注册")
	ErrInvalidCredentials = ValidationErr("invalid credentials")
	ErrPermissionDenied   = ForbiddenErr("permission denied")
	ErrUserNotFound       = NotFoundErr("用户不存在")
	ErrCourseNotFound     = NotFoundErr("course not found")
	ErrModuleNotFound     = NotFoundErr("module not found")
	ErrLessonNotFound     = NotFoundErr("lesson not found")
	ErrCommentNotFound    = NotFoundErr("comment not found")
	ErrCategoryNotFound   = NotFoundErr("category not found")
	ErrEnrollmentNotFound = NotFoundErr("enrollment not found")
	ErrAlreadyEnrolled    = ConflictErr("already enrolled in this course")
	ErrEmptyComment       = ValidationErr("评论内容不能为空")
)
