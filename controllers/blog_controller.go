package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knchan0x/fullstack-open-bloglist/middleware"
	"github.com/knchan0x/fullstack-open-bloglist/models"
	"github.com/knchan0x/fullstack-open-bloglist/utils"
)

// BlogController manages CRUD operations for blogs.
type BlogController struct {
	db *gorm.DB
}

// NewBlogController creates a new BlogController instance.
func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{db: db}
}

type blogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *uint  `json:"likes"`
}

// blogJSON maps a blog to its wire form. The owner is reduced to public fields
// so the password hash can never ride along.
func blogJSON(blog models.Blog, includeOwnerID bool) gin.H {
	owner := gin.H{
		"username": blog.User.Username,
		"name":     blog.User.Name,
	}
	if includeOwnerID {
		owner["id"] = blog.User.ID
	}
	return gin.H{
		"id":     blog.ID,
		"title":  blog.Title,
		"author": blog.Author,
		"url":    blog.URL,
		"likes":  blog.Likes,
		"user":   owner,
	}
}

// ListBlogs returns every blog with its owner populated. Open to all callers.
func (b *BlogController) ListBlogs(ctx *gin.Context) {
	if body, ok := utils.CachedBody(utils.BlogListKey); ok {
		ctx.Data(http.StatusOK, "application/json", body)
		return
	}

	var blogs []models.Blog
	if err := b.db.Preload("User").Order("id").Find(&blogs).Error; err != nil {
		_ = ctx.Error(err)
		return
	}

	payload := make([]gin.H, 0, len(blogs))
	for _, blog := range blogs {
		payload = append(payload, blogJSON(blog, false))
	}

	utils.StoreBody(utils.BlogListKey, payload)
	ctx.JSON(http.StatusOK, payload)
}

// GetBlog returns one blog by id with its owner populated. Open to all callers.
func (b *BlogController) GetBlog(ctx *gin.Context) {
	id, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	cacheKey := utils.BlogDetailKey(id)
	if body, ok := utils.CachedBody(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", body)
		return
	}

	var blog models.Blog
	if err := b.db.Preload("User").First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "blog not found")
			return
		}
		_ = ctx.Error(err)
		return
	}

	payload := blogJSON(blog, true)
	utils.StoreBody(cacheKey, payload)
	ctx.JSON(http.StatusOK, payload)
}

// CreateBlog stores a new blog owned by the authenticated user.
func (b *BlogController) CreateBlog(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "token invalid")
		return
	}

	var req blogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	title := utils.Sanitize(req.Title)
	url := strings.TrimSpace(req.URL)
	if title == "" {
		utils.Fail(ctx, http.StatusBadRequest, "title is required")
		return
	}
	if url == "" {
		utils.Fail(ctx, http.StatusBadRequest, "url is required")
		return
	}

	// A missing likes field persists as zero.
	var likes uint
	if req.Likes != nil {
		likes = *req.Likes
	}

	blog := models.Blog{
		UserID: user.ID,
		Title:  title,
		Author: utils.Sanitize(req.Author),
		URL:    url,
		Likes:  likes,
	}

	if err := b.db.Create(&blog).Error; err != nil {
		_ = ctx.Error(err)
		return
	}
	blog.User = user

	utils.InvalidateBlogCache()
	ctx.JSON(http.StatusCreated, blogJSON(blog, true))
}

// UpdateBlog lets the owner change title, author, url and likes. Ownership is
// never reassigned. Presence is checked before ownership so a missing blog is
// a 404, not an authorization failure.
func (b *BlogController) UpdateBlog(ctx *gin.Context) {
	id, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var blog models.Blog
	if err := b.db.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "blog not found")
			return
		}
		_ = ctx.Error(err)
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok || user.ID != blog.UserID {
		utils.Fail(ctx, http.StatusUnauthorized, "token invalid")
		return
	}

	var req blogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	title := utils.Sanitize(req.Title)
	url := strings.TrimSpace(req.URL)
	if title == "" {
		utils.Fail(ctx, http.StatusBadRequest, "title is required")
		return
	}
	if url == "" {
		utils.Fail(ctx, http.StatusBadRequest, "url is required")
		return
	}

	blog.Title = title
	blog.Author = utils.Sanitize(req.Author)
	blog.URL = url
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	if err := b.db.Save(&blog).Error; err != nil {
		_ = ctx.Error(err)
		return
	}
	blog.User = user

	utils.InvalidateBlogCache()
	ctx.JSON(http.StatusOK, blogJSON(blog, false))
}

// DeleteBlog removes a blog after the same presence-then-ownership checks as
// UpdateBlog. The owner's blog list needs no cleanup: it is derived by query.
func (b *BlogController) DeleteBlog(ctx *gin.Context) {
	id, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var blog models.Blog
	if err := b.db.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "blog not found")
			return
		}
		_ = ctx.Error(err)
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok || user.ID != blog.UserID {
		utils.Fail(ctx, http.StatusUnauthorized, "token invalid")
		return
	}

	if err := b.db.Delete(&blog).Error; err != nil {
		_ = ctx.Error(err)
		return
	}

	utils.InvalidateBlogCache()
	ctx.Status(http.StatusNoContent)
}
