package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The assistant endpoints never fail outward: every operation degrades to a
// deterministic fallback, so these handlers always answer 200 with content.

type SummarizeInput struct {
	Content string `json:"content" binding:"required"`
}

type IdeasInput struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count"`
}

type ImproveInput struct {
	Content     string `json:"content" binding:"required"`
	Instruction string `json:"instruction" binding:"required"`
}

type KeywordsInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type SEOInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ChatInput struct {
	Message string `json:"message" binding:"required"`
	Context string `json:"context"`
}

func (e *Env) Summarize(c *gin.Context) {
	var input SummarizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	summary := e.Assistant.Summarize(c.Request.Context(), input.Content)
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (e *Env) GenerateIdeas(c *gin.Context) {
	var input IdeasInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	ideas := e.Assistant.GenerateIdeas(c.Request.Context(), input.Topic, input.Count)
	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

func (e *Env) ImproveContent(c *gin.Context) {
	var input ImproveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	improved := e.Assistant.ImproveContent(c.Request.Context(), input.Content, input.Instruction)
	c.JSON(http.StatusOK, gin.H{"content": improved})
}

func (e *Env) GenerateKeywords(c *gin.Context) {
	var input KeywordsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	keywords := e.Assistant.GenerateKeywords(c.Request.Context(), input.Title, input.Content)
	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}

func (e *Env) OptimizeSEO(c *gin.Context) {
	var input SEOInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	result := e.Assistant.OptimizeSEO(c.Request.Context(), input.Title, input.Content)
	c.JSON(http.StatusOK, result)
}

func (e *Env) Chat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	reply := e.Assistant.Chat(c.Request.Context(), input.Message, input.Context)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
