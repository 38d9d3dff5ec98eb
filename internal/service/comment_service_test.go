package service

import (
	"errors"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/util"
	"testing"
	"time"
)

func setupLesson(t *testing.T, env *testEnv) (owner *util.Claims, lessonID string) {
	t.Helper()

	owner = env.createUser(t, "budi", model.Instructor)
	course := env.createCourse(t, owner, "Go Basics")
	lessons := env.addLessons(t, owner, course.Slug, 1)
	return owner, lessons[0]
}

func TestCommentRejectsEmptyContent(t *testing.T) {
	env := newTestEnv(t)
	_, lessonID := setupLesson(t, env)
	student := env.createUser(t, "siti", model.Student)

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := env.comments.Create(student.UserID, lessonID, CommentRequest{Content: content}); !errors.Is(err, util.ErrEmptyComment) {
			t.Errorf("content %q: err = %v, want ErrEmptyComment", content, err)
		}
	}
}

func TestCommentReplyParentMustExist(t *testing.T) {
	env := newTestEnv(t)
	_, lessonID := setupLesson(t, env)
	student := env.createUser(t, "siti", model.Student)

	bogus := model.GenerateUUID()
	_, err := env.comments.Create(student.UserID, lessonID, CommentRequest{Content: "reply", ParentID: &bogus})
	if !errors.Is(err, util.ErrCommentNotFound) {
		t.Fatalf("err = %v, want ErrCommentNotFound", err)
	}
}

func TestCommentReplyParentMustBeOnSameLesson(t *testing.T) {
	env := newTestEnv(t)
	owner, lessonID := setupLesson(t, env)
	student := env.createUser(t, "siti", model.Student)

	otherCourse := env.createCourse(t, owner, "Another Course")
	otherLessons := env.addLessons(t, owner, otherCourse.Slug, 1)

	parent, err := env.comments.Create(student.UserID, lessonID, CommentRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}

	// 跨课时回复视为父评论不存在
	_, err = env.comments.Create(student.UserID, otherLessons[0], CommentRequest{Content: "reply", ParentID: &parent.ID})
	if !errors.Is(err, util.ErrCommentNotFound) {
		t.Fatalf("err = %v, want ErrCommentNotFound", err)
	}
}

func TestCommentTreeOrdering(t *testing.T) {
	env := newTestEnv(t)
	_, lessonID := setupLesson(t, env)
	student := env.createUser(t, "siti", model.Student)

	post := func(content string, parentID *string) *model.Comment {
		t.Helper()
		c, err := env.comments.Create(student.UserID, lessonID, CommentRequest{Content: content, ParentID: parentID})
		if err != nil {
			t.Fatalf("create %q: %v", content, err)
		}
		// 时间戳必须可区分，排序断言才有意义
		time.Sleep(2 * time.Millisecond)
		return c
	}

	first := post("first thread", nil)
	post("reply 1", &first.ID)
	second := post("second thread", nil)
	reply2 := post("reply 2", &first.ID)
	post("nested reply", &reply2.ID)

	tree, err := env.comments.ListByLesson(lessonID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(tree) != 2 {
		t.Fatalf("got %d top-level threads, want 2", len(tree))
	}
	// 顶层新帖在前
	if tree[0].ID != second.ID || tree[1].ID != first.ID {
		t.Errorf("top-level order wrong: got [%s, %s]", tree[0].Content, tree[1].Content)
	}
	// 回复按时间正序
	replies := tree[1].Replies
	if len(replies) != 2 {
		t.Fatalf("got %d replies, want 2", len(replies))
	}
	if replies[0].Content != "reply 1" || replies[1].Content != "reply 2" {
		t.Errorf("reply order wrong: [%s, %s]", replies[0].Content, replies[1].Content)
	}
	if len(replies[1].Replies) != 1 || replies[1].Replies[0].Content != "nested reply" {
		t.Errorf("nested reply missing under reply 2")
	}
}

func TestDeleteCommentRemovesSubtree(t *testing.T) {
	env := newTestEnv(t)
	_, lessonID := setupLesson(t, env)
	author := env.createUser(t, "siti", model.Student)
	other := env.createUser(t, "rina", model.Student)
	admin := env.createUser(t, "admin", model.Admin)

	root, err := env.comments.Create(author.UserID, lessonID, CommentRequest{Content: "root"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	var last *model.Comment = root
	for i := 0; i < 3; i++ {
		last, err = env.comments.Create(other.UserID, lessonID, CommentRequest{Content: "reply", ParentID: &last.ID})
		if err != nil {
			t.Fatalf("create reply %d: %v", i, err)
		}
	}
	keep, err := env.comments.Create(other.UserID, lessonID, CommentRequest{Content: "unrelated"})
	if err != nil {
		t.Fatalf("create unrelated: %v", err)
	}

	// 非作者非管理员不能删
	if _, err := env.comments.Delete(other, root.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}

	deleted, err := env.comments.Delete(author, root.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted = %d, want 4 (root + 3 replies)", deleted)
	}

	tree, err := env.comments.ListByLesson(lessonID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != keep.ID {
		t.Errorf("unrelated thread should survive, got %d threads", len(tree))
	}

	// 管理员可以删别人的评论
	if _, err := env.comments.Delete(admin, keep.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
