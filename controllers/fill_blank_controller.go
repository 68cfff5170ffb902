package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/models"
)

type fillBlankPayload struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func validateFillBlankPayload(p fillBlankPayload) (string, bool) {
	if strings.TrimSpace(p.Category) == "" ||
		strings.TrimSpace(p.Question) == "" ||
		strings.TrimSpace(p.Answer) == "" {
		return "All fields (category, question, answer) are required", false
	}
	return "", true
}

// AddFillBlank thêm một câu hỏi điền khuyết (admin only)
func AddFillBlank(c *gin.Context) {
	var req fillBlankPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if msg, ok := validateFillBlankPayload(req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	q := models.FillBlankQuestion{Category: req.Category, Question: req.Question, Answer: req.Answer}
	if err := config.DB.Create(&q).Error; err != nil {
		log.Printf("Add fill-blank error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Fill in the blank question added successfully"})
}

type bulkFillBlankReq struct {
	Questions []fillBlankPayload `json:"questions"`
}

func BulkAddFillBlank(c *gin.Context) {
	var req bulkFillBlankReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Questions must be a non-empty array"})
		return
	}

	batch := make([]models.FillBlankQuestion, 0, len(req.Questions))
	for _, p := range req.Questions {
		if msg, ok := validateFillBlankPayload(p); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		batch = append(batch, models.FillBlankQuestion{Category: p.Category, Question: p.Question, Answer: p.Answer})
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&batch).Error
	}); err != nil {
		log.Printf("Bulk add fill-blank error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Questions added successfully"})
}

func ListFillBlank(c *gin.Context) {
	q := config.DB.Model(&models.FillBlankQuestion{})
	if cat := c.Query("category"); cat != "" {
		q = q.Where("LOWER(category) = LOWER(?)", cat)
	}

	var questions []models.FillBlankQuestion
	if err := q.Find(&questions).Error; err != nil {
		log.Printf("Fetch fill-blank error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "questions": questions})
}

func UpdateFillBlank(c *gin.Context) {
	var req fillBlankPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if msg, ok := validateFillBlankPayload(req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
		return
	}

	var q models.FillBlankQuestion
	if err := config.DB.First(&q, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
			return
		}
		log.Printf("Update fill-blank error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	q.Category = req.Category
	q.Question = req.Question
	q.Answer = req.Answer
	if err := config.DB.Save(&q).Error; err != nil {
		log.Printf("Update fill-blank error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question updated", "question": q})
}

type bulkUpdateFillBlank struct {
	ID uint `json:"id"`
	fillBlankPayload
}

type bulkUpdateFillBlankReq struct {
	Questions []bulkUpdateFillBlank `json:"questions"`
}

func BulkUpdateFillBlank(c *gin.Context) {
	var req bulkUpdateFillBlankReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Questions must be a non-empty array"})
		return
	}

	for _, p := range req.Questions {
		if p.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Each question must have an id"})
			return
		}
		if msg, ok := validateFillBlankPayload(p.fillBlankPayload); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
	}

	results := make([]gin.H, 0, len(req.Questions))
	for _, p := range req.Questions {
		var q models.FillBlankQuestion
		if err := config.DB.First(&q, p.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Question not found"})
				continue
			}
			log.Printf("Bulk update fill-blank error: %v", err)
			results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Internal server error"})
			continue
		}

		q.Category = p.Category
		q.Question = p.Question
		q.Answer = p.Answer
		if err := config.DB.Save(&q).Error; err != nil {
			log.Printf("Bulk update fill-blank error: %v", err)
			results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Internal server error"})
			continue
		}
		results = append(results, gin.H{"id": p.ID, "ok": true})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bulk update finished", "results": results})
}

func DeleteFillBlank(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
		return
	}

	var q models.FillBlankQuestion
	if err := config.DB.First(&q, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
			return
		}
		log.Printf("Delete fill-blank error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := config.DB.Delete(&q).Error; err != nil {
		log.Printf("Delete fill-blank error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question deleted"})
}
