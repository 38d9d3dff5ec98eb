package model

// Comment 课时下的讨论评论，扁平存储，ParentID 为空表示一级评论。
// 树形结构在读取时由 Service 层一次分组装配。
// swagger:model Comment
type Comment struct {
	UUIDBase
	LessonID string  `gorm:"index;type:varchar(36);not null" json:"lessonId"`
	UserID   uint    `gorm:"index;not null" json:"userId"`
	User     User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ParentID *string `gorm:"index;type:varchar(36)" json:"parentId"`
	Content  string  `gorm:"type:text;not null" json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}
