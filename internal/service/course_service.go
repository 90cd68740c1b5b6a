package service

import (
	"strings"

	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/repository"
)

// CourseService 课程目录服务（公开只读）
type CourseService struct {
	courseRepo repository.CourseRepository
}

// NewCourseService 创建课程服务
func NewCourseService(courseRepo repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// ListPublic 上架课程列表
func (s *CourseService) ListPublic(filter repository.CourseListFilter) ([]models.Course, int64, error) {
	filter.OnlyActive = true
	return s.courseRepo.List(filter)
}

// GetPublicBySlug 根据 slug 获取上架课程
func (s *CourseService) GetPublicBySlug(slug string) (*models.Course, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, ErrNotFound
	}
	course, err := s.courseRepo.GetBySlug(trimmed, true)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}
	return course, nil
}
