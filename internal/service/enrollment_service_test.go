package service

import (
	"errors"
	"math"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/util"
	"testing"
)

func TestEnrollPublishedOnly(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	student := env.createUser(t, "siti", model.Student)
	draft := env.createCourse(t, instructor, "Draft Course")

	// 未发布课程按不存在处理，不泄露其存在
	if _, err := env.enrollments.Enroll(student.UserID, draft.Slug); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestEnrollDuplicateConflict(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	admin := env.createUser(t, "admin", model.Admin)
	student := env.createUser(t, "siti", model.Student)

	course := env.createCourse(t, instructor, "Go Basics")
	env.publishCourse(t, instructor, admin, course.Slug)

	if _, err := env.enrollments.Enroll(student.UserID, course.Slug); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if _, err := env.enrollments.Enroll(student.UserID, course.Slug); !errors.Is(err, util.ErrAlreadyEnrolled) {
		t.Fatalf("second enroll err = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestMarkCompleteRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	admin := env.createUser(t, "admin", model.Admin)
	student := env.createUser(t, "siti", model.Student)

	course := env.createCourse(t, instructor, "Go Basics")
	lessons := env.addLessons(t, instructor, course.Slug, 2)
	env.publishCourse(t, instructor, admin, course.Slug)

	if _, err := env.enrollments.MarkLessonComplete(student.UserID, lessons[0]); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Fatalf("err = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestProgressComputation(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	admin := env.createUser(t, "admin", model.Admin)
	student := env.createUser(t, "siti", model.Student)

	course := env.createCourse(t, instructor, "Go Basics")
	lessons := env.addLessons(t, instructor, course.Slug, 4)
	env.publishCourse(t, instructor, admin, course.Slug)

	if _, err := env.enrollments.Enroll(student.UserID, course.Slug); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	enrollment, err := env.enrollments.MarkLessonComplete(student.UserID, lessons[0])
	if err != nil {
		t.Fatalf("complete lesson 1: %v", err)
	}
	if math.Abs(enrollment.Progress-25) > 0.01 {
		t.Errorf("progress = %.2f, want 25", enrollment.Progress)
	}
	if enrollment.CompletedAt != nil {
		t.Error("completed_at set before course finished")
	}

	// 重复标记幂等，进度不变
	enrollment, err = env.enrollments.MarkLessonComplete(student.UserID, lessons[0])
	if err != nil {
		t.Fatalf("re-complete lesson 1: %v", err)
	}
	if math.Abs(enrollment.Progress-25) > 0.01 {
		t.Errorf("progress after re-complete = %.2f, want 25", enrollment.Progress)
	}

	for _, id := range lessons[1:] {
		if enrollment, err = env.enrollments.MarkLessonComplete(student.UserID, id); err != nil {
			t.Fatalf("complete lesson %s: %v", id, err)
		}
	}
	if math.Abs(enrollment.Progress-100) > 0.01 {
		t.Errorf("progress = %.2f, want 100", enrollment.Progress)
	}
	if enrollment.CompletedAt == nil {
		t.Fatal("completed_at not set at 100%")
	}

	// completed_at 只写一次
	firstCompletedAt := *enrollment.CompletedAt
	enrollment, err = env.enrollments.MarkLessonComplete(student.UserID, lessons[0])
	if err != nil {
		t.Fatalf("re-complete after finish: %v", err)
	}
	progress, err := env.enrollments.GetProgress(student.UserID, course.Slug)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if progress.Enrollment.CompletedAt == nil || !progress.Enrollment.CompletedAt.Equal(firstCompletedAt) {
		t.Errorf("completed_at changed: %v vs %v", progress.Enrollment.CompletedAt, firstCompletedAt)
	}
	if len(progress.CompletedLessonIDs) != 4 {
		t.Errorf("completed lessons = %d, want 4", len(progress.CompletedLessonIDs))
	}
}

func TestProgressOrderIndependent(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	admin := env.createUser(t, "admin", model.Admin)

	course := env.createCourse(t, instructor, "Go Basics")
	lessons := env.addLessons(t, instructor, course.Slug, 3)
	env.publishCourse(t, instructor, admin, course.Slug)

	// 两个学生按不同顺序完成同样的课时，进度一致
	alice := env.createUser(t, "alice", model.Student)
	bob := env.createUser(t, "bob", model.Student)
	for _, s := range []*util.Claims{alice, bob} {
		if _, err := env.enrollments.Enroll(s.UserID, course.Slug); err != nil {
			t.Fatalf("enroll: %v", err)
		}
	}

	var aliceLast, bobLast *model.Enrollment
	var err error
	for _, id := range []string{lessons[0], lessons[2]} {
		if aliceLast, err = env.enrollments.MarkLessonComplete(alice.UserID, id); err != nil {
			t.Fatalf("alice complete: %v", err)
		}
	}
	for _, id := range []string{lessons[2], lessons[0]} {
		if bobLast, err = env.enrollments.MarkLessonComplete(bob.UserID, id); err != nil {
			t.Fatalf("bob complete: %v", err)
		}
	}

	if math.Abs(aliceLast.Progress-bobLast.Progress) > 0.01 {
		t.Errorf("progress differs: alice %.2f vs bob %.2f", aliceLast.Progress, bobLast.Progress)
	}
	if math.Abs(aliceLast.Progress-200.0/3) > 0.01 {
		t.Errorf("progress = %.2f, want %.2f", aliceLast.Progress, 200.0/3)
	}
}
