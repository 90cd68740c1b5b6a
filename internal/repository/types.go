package repository

// CartOwner 购物车归属标识
// 登录用户填 UserID，匿名会话填 SessionKey，二者互斥
type CartOwner struct {
	UserID     uint
	SessionKey string
}

// IsValid 校验归属标识是否恰好占用一种身份
func (o CartOwner) IsValid() bool {
	return (o.UserID != 0) != (o.SessionKey != "")
}

// CourseListFilter 查询课程列表的过滤条件
type CourseListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// ArticleListFilter 查询文章列表的过滤条件
type ArticleListFilter struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
}
