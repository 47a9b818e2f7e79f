package controllers

import (
	"net/http"
	"strings"

	"optimasfibre-web/models"
	"optimasfibre-web/services"
	"optimasfibre-web/utils"

	"github.com/gin-gonic/gin"
)

// BlogInput accepts JSON or a multipart form with an optional "image" file.
type BlogInput struct {
	Title    string `json:"title" form:"title" binding:"required"`
	Category string `json:"category" form:"category" binding:"required"`
	Content  string `json:"content" form:"content" binding:"required"`
	Excerpt  string `json:"excerpt" form:"excerpt"`
	Author   string `json:"author" form:"author"`
	ImageURL string `json:"imageUrl" form:"imageUrl" binding:"omitempty,url"`
}

type PortfolioInput struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Category    string `json:"category" form:"category" binding:"required"`
	Description string `json:"description" form:"description" binding:"required"`
	Client      string `json:"client" form:"client"`
	ImageURL    string `json:"imageUrl" form:"imageUrl" binding:"omitempty,url"`
}

type ContentController struct {
	AdminBase
	API      *services.APIClient
	Uploader *services.ImageUploader
	Public   *services.PublicContent
}

// attachImage uploads the "image" form file when the request carries one
// and returns its hosted URL; otherwise it returns current.
func (cc *ContentController) attachImage(c *gin.Context, current string) (string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return current, nil
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return current, nil
	}
	if fh.Size > services.MaxImageSize {
		return "", &services.ValidationError{Field: "image", Message: "Image must be 5MB or smaller"}
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return cc.Uploader.Upload(c.Request.Context(), fh.Filename, f)
}

// UploadImage stores a standalone image and returns its URL.
func (cc *ContentController) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Please choose an image")
		return
	}
	if fh.Size > services.MaxImageSize {
		utils.RespondWithError(c, http.StatusBadRequest, "Image must be 5MB or smaller")
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Could not read image")
		return
	}
	defer f.Close()

	url, err := cc.Uploader.Upload(c.Request.Context(), fh.Filename, f)
	if err != nil {
		cc.handleError(c, err, "Image upload failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imageUrl": url})
}

// Blog

func (cc *ContentController) GetBlogPosts(c *gin.Context) {
	posts, err := cc.API.ListBlog(c.Request.Context(), token(c))
	if err != nil {
		cc.handleError(c, err, "Failed to retrieve blog posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (cc *ContentController) bindBlog(c *gin.Context) (*models.BlogPost, bool) {
	var input BlogInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return nil, false
	}
	image, err := cc.attachImage(c, input.ImageURL)
	if err != nil {
		cc.handleError(c, err, "Image upload failed")
		return nil, false
	}
	return &models.BlogPost{
		Title:    strings.TrimSpace(input.Title),
		Category: strings.TrimSpace(input.Category),
		Content:  input.Content,
		Excerpt:  input.Excerpt,
		Author:   input.Author,
		ImageURL: image,
	}, true
}

func (cc *ContentController) CreateBlogPost(c *gin.Context) {
	post, ok := cc.bindBlog(c)
	if !ok {
		return
	}
	created, err := cc.API.CreateBlog(c.Request.Context(), token(c), post)
	if err != nil {
		cc.handleError(c, err, "Failed to create blog post")
		return
	}
	cc.Public.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

func (cc *ContentController) UpdateBlogPost(c *gin.Context) {
	post, ok := cc.bindBlog(c)
	if !ok {
		return
	}
	updated, err := cc.API.UpdateBlog(c.Request.Context(), token(c), c.Param("id"), post)
	if err != nil {
		cc.handleError(c, err, "Failed to update blog post")
		return
	}
	cc.Public.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, updated)
}

func (cc *ContentController) DeleteBlogPost(c *gin.Context) {
	if err := cc.API.DeleteBlog(c.Request.Context(), token(c), c.Param("id")); err != nil {
		cc.handleError(c, err, "Failed to delete blog post")
		return
	}
	cc.Public.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted successfully"})
}

// Portfolio

func (cc *ContentController) GetPortfolioItems(c *gin.Context) {
	items, err := cc.API.ListPortfolio(c.Request.Context(), token(c))
	if err != nil {
		cc.handleError(c, err, "Failed to retrieve portfolio")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (cc *ContentController) bindPortfolio(c *gin.Context) (*models.PortfolioItem, bool) {
	var input PortfolioInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return nil, false
	}
	image, err := cc.attachImage(c, input.ImageURL)
	if err != nil {
		cc.handleError(c, err, "Image upload failed")
		return nil, false
	}
	return &models.PortfolioItem{
		Title:       strings.TrimSpace(input.Title),
		Category:    strings.TrimSpace(input.Category),
		Description: input.Description,
		Client:      input.Client,
		ImageURL:    image,
	}, true
}

func (cc *ContentController) CreatePortfolioItem(c *gin.Context) {
	item, ok := cc.bindPortfolio(c)
	if !ok {
		return
	}
	created, err := cc.API.CreatePortfolio(c.Request.Context(), token(c), item)
	if err != nil {
		cc.handleError(c, err, "Failed to create portfolio item")
		return
	}
	cc.Public.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

func (cc *ContentController) UpdatePortfolioItem(c *gin.Context) {
	item, ok := cc.bindPortfolio(c)
	if !ok {
		return
	}
	updated, err := cc.API.UpdatePortfolio(c.Request.Context(), token(c), c.Param("id"), item)
	if err != nil {
		cc.handleError(c, err, "Failed to update portfolio item")
		return
	}
	cc.Public.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, updated)
}

func (cc *ContentController) DeletePortfolioItem(c *gin.Context) {
	if err := cc.API.DeletePortfolio(c.Request.Context(), token(c), c.Param("id")); err != nil {
		cc.handleError(c, err, "Failed to delete portfolio item")
		return
	}
	cc.Public.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item deleted successfully"})
}
