package service

import (
	"CourseForge/internal/service/auth"
	"CourseForge/internal/service/category"
	"CourseForge/internal/service/course"
	"CourseForge/internal/service/lesson"
	"CourseForge/internal/service/role"
	"CourseForge/internal/service/section"
)

type Collection struct {
	Auth     *auth.AuthService
	Course   *course.Service
	Category *category.Service
	Section  *section.Service
	Lesson   *lesson.Service
	Role     *role.Service
}
