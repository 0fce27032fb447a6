package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knchan0x/fullstack-open-bloglist/models"
	"github.com/knchan0x/fullstack-open-bloglist/stats"
)

// StatsController exposes aggregate statistics over the stored blogs.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetBlogStats reduces all stored blogs to the aggregate views: total likes,
// the most-liked blog, the most prolific author and the most-liked author.
// Aggregates over an empty store come back as null.
func (s *StatsController) GetBlogStats(ctx *gin.Context) {
	var blogs []models.Blog
	if err := s.db.Order("id").Find(&blogs).Error; err != nil {
		_ = ctx.Error(err)
		return
	}

	entries := make([]stats.Blog, len(blogs))
	for i, blog := range blogs {
		entries[i] = stats.Blog{Title: blog.Title, Author: blog.Author, Likes: blog.Likes}
	}

	payload := gin.H{
		"total_likes": stats.TotalLikes(entries),
		"favorite":    nil,
		"most_blogs":  nil,
		"most_likes":  nil,
	}
	if favorite, ok := stats.FavoriteBlog(entries); ok {
		payload["favorite"] = favorite
	}
	if byCount, ok := stats.MostBlogs(entries); ok {
		payload["most_blogs"] = byCount
	}
	if byLikes, ok := stats.MostLikes(entries); ok {
		payload["most_likes"] = byLikes
	}

	ctx.JSON(http.StatusOK, payload)
}
