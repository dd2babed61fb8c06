package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-storybook-kit/pkg/bible"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/generator"
	"github.com/shouni/go-storybook-kit/pkg/rules"
	"github.com/shouni/go-storybook-kit/pkg/runner"
	"github.com/shouni/go-storybook-kit/pkg/workflow"
)

type handlers struct {
	initRunner  workflow.BookInitRunner
	storyRunner workflow.StoryPageRunner
	illusRunner workflow.IllustrationRunner
}

func (h *handlers) register(engine *gin.Engine) {
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	engine.GET("/health", healthHandler)
	engine.HEAD("/health", healthHandler)

	api := engine.Group("/api")
	api.POST("/book/init", h.bookInit)
	api.POST("/story", h.story)
	api.POST("/image", h.image)
	api.POST("/image/batch", h.imageBatch)
	api.GET("/rules", h.rules)
}

// initRequest はフロントエンドのUIラベルをそのまま受け取ります。
type initRequest struct {
	Pitch        string `json:"pitch"`
	StyleLabel   string `json:"styleLabel"`
	GenreLabel   string `json:"genreLabel"`
	AgeBand      string `json:"ageBand"`
	AllowAINames *bool  `json:"allowAiNames"`
	ForceRhyme   bool   `json:"forceRhyme"`
	BookSize     string `json:"bookSize"`
}

func (h *handlers) bookInit(c *gin.Context) {
	var req initRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	// UI互換のデフォルト: 省略時は名前プールからの命名を許可する
	allowAINames := true
	if req.AllowAINames != nil {
		allowAINames = *req.AllowAINames
	}
	if req.AgeBand == "" {
		req.AgeBand = "kids"
	}
	if req.BookSize == "" {
		req.BookSize = bible.DefaultBookSize
	}

	sess, err := h.initRunner.Run(c.Request.Context(), bible.InitInput{
		Pitch:        req.Pitch,
		StyleLabel:   req.StyleLabel,
		GenreLabel:   req.GenreLabel,
		AgeBand:      req.AgeBand,
		AllowAINames: allowAINames,
		ForceRhyme:   req.ForceRhyme,
		BookSize:     req.BookSize,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book init error", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id":     sess.StoryBible.BookID,
		"story_bible": sess.StoryBible,
		"art_bible":   sess.ArtBible,
		"outline":     sess.Outline,
	})
}

type storyRequest struct {
	BookID     string `json:"book_id"`
	Page       int    `json:"page"`
	Idea       string `json:"idea"`
	ForceRhyme *bool  `json:"forceRhyme"`
}

func (h *handlers) story(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}

	result, err := h.storyRunner.Run(c.Request.Context(), generator.PageRequest{
		BookID:     req.BookID,
		Page:       req.Page,
		Idea:       req.Idea,
		ForceRhyme: req.ForceRhyme,
	})
	if err != nil {
		var verr *generator.ValidationError
		switch {
		case errors.Is(err, generator.ErrUnknownBook):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown book_id"})
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Schema validation failed after retry",
				"detail": verr.Report.Summary(),
				"raw":    verr.Raw,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "story route error", "detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result.Output)
}

// imageRequest は挿絵1枚分の生成要求です。directive_only を立てると
// 画像生成AIを呼ばず、合成されたディレクティブだけが返ります。
type imageRequest struct {
	BookID        string             `json:"book_id"`
	Page          int                `json:"page"`
	Lines         []string           `json:"lines"`
	StyleLabel    string             `json:"styleLabel"`
	GenreLabel    string             `json:"genreLabel"`
	VisualFocus   domain.VisualFocus `json:"visual_focus"`
	DirectiveOnly bool               `json:"directive_only"`
}

func (h *handlers) image(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}

	result, err := h.illusRunner.Run(c.Request.Context(), runner.IllustrationRequest{
		BookID:        req.BookID,
		Page:          req.Page,
		Lines:         req.Lines,
		StyleLabel:    req.StyleLabel,
		GenreLabel:    req.GenreLabel,
		VisualFocus:   req.VisualFocus,
		DirectiveOnly: req.DirectiveOnly,
	})
	if err != nil {
		if errors.Is(err, generator.ErrUnknownBook) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown book_id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image route error", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":              result.Page,
		"provider":          "gemini",
		"style":             result.Directive.StyleKey,
		"image_b64":         result.ImageB64,
		"visual_focus_used": result.Directive.FocusUsed,
		"job_used":          result.Directive,
	})
}

type imageBatchRequest struct {
	BookID     string `json:"book_id"`
	StyleLabel string `json:"styleLabel"`
	GenreLabel string `json:"genreLabel"`
}

func (h *handlers) imageBatch(c *gin.Context) {
	var req imageBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	results, err := h.illusRunner.RunAll(c.Request.Context(), req.BookID, req.StyleLabel, req.GenreLabel)
	if err != nil {
		if errors.Is(err, generator.ErrUnknownBook) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown book_id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image route error", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id":  req.BookID,
		"provider": "gemini",
		"pages":    results,
	})
}

// rules は UI がセレクタを構成するためのルール一式を返します。
func (h *handlers) rules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"styles":                 rules.Styles,
		"genres":                 rules.Genres,
		"ban_cliche_openers":     rules.BanClicheOpeners,
		"age_bands":              rules.AgeBands,
		"name_pool":              rules.NamePool,
		"rhyme_default_by_genre": rules.RhymeDefaults(),
	})
}
