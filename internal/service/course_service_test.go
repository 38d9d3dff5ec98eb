package service

import (
	"errors"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/util"
	"testing"
)

func TestCreateCourseGeneratesUniqueSlug(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)

	first := env.createCourse(t, instructor, "Belajar Go")
	second := env.createCourse(t, instructor, "Belajar Go")
	third := env.createCourse(t, instructor, "Belajar Go")

	if first.Slug != "belajar-go" {
		t.Errorf("first slug = %q, want %q", first.Slug, "belajar-go")
	}
	if second.Slug != "belajar-go-2" {
		t.Errorf("second slug = %q, want %q", second.Slug, "belajar-go-2")
	}
	if third.Slug != "belajar-go-3" {
		t.Errorf("third slug = %q, want %q", third.Slug, "belajar-go-3")
	}
}

func TestCreateCourseRequiresInstructorRole(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "siti", model.Student)

	_, err := env.courses.CreateCourse(student, CourseRequest{Title: "Nope"})
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestSubmitForReviewTransitions(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	course := env.createCourse(t, instructor, "Go Basics")

	submitted, err := env.courses.SubmitForReview(instructor, course.Slug)
	if err != nil {
		t.Fatalf("submit draft: %v", err)
	}
	if submitted.Status != model.CoursePending {
		t.Errorf("status = %q, want pending", submitted.Status)
	}

	// pending 状态不允许重复提交
	if _, err := env.courses.SubmitForReview(instructor, course.Slug); err == nil {
		t.Fatal("expected error submitting pending course")
	} else {
		var appErr *util.AppError
		if !errors.As(err, &appErr) || appErr.Kind != util.KindInvalidTransition {
			t.Errorf("err = %v, want invalid transition", err)
		}
	}
}

func TestSubmitForReviewOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "budi", model.Instructor)
	other := env.createUser(t, "rina", model.Instructor)
	course := env.createCourse(t, owner, "Go Basics")

	if _, err := env.courses.SubmitForReview(other, course.Slug); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if status := env.courseStatus(t, course.ID); status != model.CourseDraft {
		t.Errorf("status = %q, want draft unchanged", status)
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	course := env.createCourse(t, instructor, "Go Basics")

	if _, err := env.courses.SubmitForReview(instructor, course.Slug); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// 讲师本人也不能审批自己的课程
	if _, err := env.courses.ApproveCourse(instructor, course.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if status := env.courseStatus(t, course.ID); status != model.CoursePending {
		t.Errorf("status = %q, want pending unchanged", status)
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	admin := env.createUser(t, "admin", model.Admin)
	course := env.createCourse(t, instructor, "Go Basics")
	published := env.publishCourse(t, instructor, admin, course.Slug)

	if published.Status != model.CoursePublished {
		t.Fatalf("status = %q, want published", published.Status)
	}

	// 重复审批不报错，状态不变
	again, err := env.courses.ApproveCourse(admin, course.ID)
	if err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if again.Status != model.CoursePublished {
		t.Errorf("status = %q, want published", again.Status)
	}

	// 已发布课程不能驳回
	if _, err := env.courses.RejectCourse(admin, course.ID); err == nil {
		t.Fatal("expected error rejecting published course")
	}
}

func TestRejectedCourseCanResubmit(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	admin := env.createUser(t, "admin", model.Admin)
	course := env.createCourse(t, instructor, "Go Basics")

	if _, err := env.courses.SubmitForReview(instructor, course.Slug); err != nil {
		t.Fatalf("submit: %v", err)
	}
	rejected, err := env.courses.RejectCourse(admin, course.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != model.CourseRejected {
		t.Fatalf("status = %q, want rejected", rejected.Status)
	}

	// 被驳回后可以直接重新提交
	resubmitted, err := env.courses.SubmitForReview(instructor, course.Slug)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if resubmitted.Status != model.CoursePending {
		t.Errorf("status = %q, want pending", resubmitted.Status)
	}
}

func TestUnpublishedCourseHiddenFromPublic(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	student := env.createUser(t, "siti", model.Student)
	course := env.createCourse(t, instructor, "Secret Draft")

	// 游客和学生都看不到草稿
	if _, err := env.courses.GetCourseBySlug(course.Slug, nil); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("guest err = %v, want ErrCourseNotFound", err)
	}
	if _, err := env.courses.GetCourseBySlug(course.Slug, student); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("student err = %v, want ErrCourseNotFound", err)
	}

	// 讲师本人能看到
	got, err := env.courses.GetCourseBySlug(course.Slug, instructor)
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if got.Status != model.CourseDraft {
		t.Errorf("status = %q, want draft", got.Status)
	}
}

func TestCatalogListsOnlyPublished(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	admin := env.createUser(t, "admin", model.Admin)

	env.createCourse(t, instructor, "Draft Course")
	published := env.createCourse(t, instructor, "Published Course")
	env.publishCourse(t, instructor, admin, published.Slug)

	courses, total, err := env.courses.GetCourses(1, 10, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(courses) != 1 {
		t.Fatalf("got %d courses (total %d), want 1", len(courses), total)
	}
	if courses[0].Slug != published.Slug {
		t.Errorf("listed %q, want %q", courses[0].Slug, published.Slug)
	}
}

func TestUpdateCourseRegeneratesSlugOnTitleChange(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	course := env.createCourse(t, instructor, "Old Title")

	updated, err := env.courses.UpdateCourse(instructor, course.Slug, CourseRequest{Title: "New Title", IsFree: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "new-title" {
		t.Errorf("slug = %q, want %q", updated.Slug, "new-title")
	}
}

func TestDeleteCourseAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	admin := env.createUser(t, "admin", model.Admin)
	course := env.createCourse(t, instructor, "Doomed")

	if err := env.courses.DeleteCourse(instructor, course.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("instructor delete err = %v, want ErrPermissionDenied", err)
	}
	if err := env.courses.DeleteCourse(admin, course.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := env.courses.GetCourseBySlug(course.Slug, admin); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("err = %v, want ErrCourseNotFound after delete", err)
	}
}

func TestFreeCourseOverridesStoredPrice(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)

	// 免费课即使录入了价格，对外也必须是 0
	free, err := env.courses.CreateCourse(instructor, CourseRequest{
		Title:  "Kelas Gratis",
		Price:  49.99,
		IsFree: true,
	})
	if err != nil {
		t.Fatalf("create free course: %v", err)
	}
	if free.Price != 0 {
		t.Errorf("free course price = %v, want 0", free.Price)
	}

	detail, err := env.courses.GetCourseBySlug(free.Slug, instructor)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Price != 0 {
		t.Errorf("detail price = %v, want 0", detail.Price)
	}
	if !detail.IsFree {
		t.Error("detail IsFree = false, want true")
	}

	paid, err := env.courses.CreateCourse(instructor, CourseRequest{
		Title: "Kelas Berbayar",
		Price: 49.99,
	})
	if err != nil {
		t.Fatalf("create paid course: %v", err)
	}
	if paid.Price != 49.99 {
		t.Errorf("paid course price = %v, want 49.99", paid.Price)
	}
}

func TestCourseDetailCountsLessons(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "budi", model.Instructor)
	course := env.createCourse(t, instructor, "Belajar Go")
	env.addLessons(t, instructor, course.Slug, 3)

	detail, err := env.courses.GetCourseBySlug(course.Slug, instructor)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.LessonsCount != 3 {
		t.Errorf("LessonsCount = %d, want 3", detail.LessonsCount)
	}
}
