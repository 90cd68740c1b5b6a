package service

import (
	"strings"
	"time"
	"unicode"

	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/repository"
)

// ArticleService 博客文章服务
type ArticleService struct {
	articleRepo repository.ArticleRepository
}

// NewArticleService 创建文章服务
func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// ArticleInput 文章创建/更新输入
type ArticleInput struct {
	Title   string
	Content string
}

// List 文章列表
func (s *ArticleService) List(filter repository.ArticleListFilter) ([]models.Article, int64, error) {
	return s.articleRepo.List(filter)
}

// GetBySlug 根据 slug 获取文章
func (s *ArticleService) GetBySlug(slug string) (*models.Article, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, ErrNotFound
	}
	article, err := s.articleRepo.GetBySlug(trimmed)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// Create 创建文章，slug 由标题派生且全局唯一
func (s *ArticleService) Create(authorID uint, input ArticleInput) (*models.Article, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrSlugInvalid
	}

	slug := Slugify(title)
	if slug == "" {
		return nil, ErrSlugInvalid
	}

	count, err := s.articleRepo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	now := time.Now()
	article := &models.Article{
		Slug:      slug,
		Title:     title,
		Content:   input.Content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	return article, nil
}

// Update 按 slug 更新文章；标题变更时重新派生 slug 并检查冲突
func (s *ArticleService) Update(slug string, input ArticleInput) (*models.Article, error) {
	article, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrSlugInvalid
	}

	newSlug := Slugify(title)
	if newSlug == "" {
		return nil, ErrSlugInvalid
	}
	if newSlug != article.Slug {
		count, err := s.articleRepo.CountBySlug(newSlug, &article.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
	}

	article.Slug = newSlug
	article.Title = title
	article.Content = input.Content
	article.UpdatedAt = time.Now()
	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete 按 slug 删除文章
func (s *ArticleService) Delete(slug string) error {
	article, err := s.GetBySlug(slug)
	if err != nil {
		return err
	}
	return s.articleRepo.Delete(article.ID)
}

// Slugify 将标题转为 URL slug：小写，非字母数字折叠为连字符
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
