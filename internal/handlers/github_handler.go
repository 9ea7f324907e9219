package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugovasko/intern-com-backend/internal/github"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

// GitHubHandler proxies public GitHub profile lookups for candidate
// pages.
type GitHubHandler struct {
	*BaseHandler
	client *github.Client
}

func NewGitHubHandler(base *BaseHandler, client *github.Client) *GitHubHandler {
	return &GitHubHandler{
		BaseHandler: base,
		client:      client,
	}
}

func (h *GitHubHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gh := rg.Group("/github")
	{
		gh.GET("/user/:username", h.GetUser)
		gh.GET("/user/:username/repos", h.GetUserRepos)
	}
}

func (h *GitHubHandler) GetUser(c *gin.Context) {
	profile, err := h.client.GetUser(c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, apperrors.UpstreamError(err, "github", "GitHub lookup failed"))
		return
	}
	c.Data(http.StatusOK, "application/json", profile)
}

func (h *GitHubHandler) GetUserRepos(c *gin.Context) {
	repos, err := h.client.GetUserRepos(c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, apperrors.UpstreamError(err, "github", "GitHub lookup failed"))
		return
	}
	c.Data(http.StatusOK, "application/json", repos)
}
