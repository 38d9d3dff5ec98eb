// 手动触发课程 slug 回填脚本
//
// 正常流程里 slug 在创建课程时生成，此脚本用于批量导入历史数据后
// 给缺失或重复 slug 的课程补一遍。
//
// 用法: go run scripts/backfill_slugs.go

package main

import (
	"fmt"
	"log"
	"skillspire_backend/internal/config"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/util"
	"skillspire_backend/pkg/database"
	"skillspire_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var courses []model.Course
	if err := db.Order("created_at ASC").Find(&courses).Error; err != nil {
		log.Fatalf("读取课程失败: %v", err)
	}

	seen := make(map[string]bool)
	fixed := 0
	for i := range courses {
		course := &courses[i]
		slug := course.Slug
		if slug == "" {
			slug = util.Slugify(course.Title)
		}
		if slug == "" {
			slug = "course-" + course.ID[:8]
		}

		base := slug
		for n := 2; seen[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		seen[slug] = true

		if slug != course.Slug {
			if err := db.Model(course).Update("slug", slug).Error; err != nil {
				log.Fatalf("更新课程 %s 失败: %v", course.ID, err)
			}
			fixed++
		}
	}

	log.Printf("完成，共回填 %d 条课程 slug", fixed)
}
