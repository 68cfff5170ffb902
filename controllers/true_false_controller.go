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

type trueFalsePayload struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func validateTrueFalsePayload(p trueFalsePayload) (string, bool) {
	if strings.TrimSpace(p.Category) == "" || strings.TrimSpace(p.Question) == "" {
		return "Fields category, question, and answer (True, False, or Partly True) are required", false
	}
	if !models.IsValidTrueFalseAnswer(p.Answer) {
		return "Answer must be True, False, or Partly True", false
	}
	return "", true
}

// AddTrueFalse thêm một câu hỏi đúng/sai (admin only)
func AddTrueFalse(c *gin.Context) {
	var req trueFalsePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if msg, ok := validateTrueFalsePayload(req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	q := models.TrueFalseQuestion{Category: req.Category, Question: req.Question, Answer: req.Answer}
	if err := config.DB.Create(&q).Error; err != nil {
		log.Printf("Add true/false error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Question added successfully"})
}

type bulkTrueFalseReq struct {
	Questions []trueFalsePayload `json:"questions"`
}

func BulkAddTrueFalse(c *gin.Context) {
	var req bulkTrueFalseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Questions must be a non-empty array"})
		return
	}

	batch := make([]models.TrueFalseQuestion, 0, len(req.Questions))
	for _, p := range req.Questions {
		if msg, ok := validateTrueFalsePayload(p); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		batch = append(batch, models.TrueFalseQuestion{Category: p.Category, Question: p.Question, Answer: p.Answer})
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&batch).Error
	}); err != nil {
		log.Printf("Bulk add true/false error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Questions added successfully"})
}

func ListTrueFalse(c *gin.Context) {
	q := config.DB.Model(&models.TrueFalseQuestion{})
	if cat := c.Query("category"); cat != "" {
		q = q.Where("LOWER(category) = LOWER(?)", cat)
	}

	var questions []models.TrueFalseQuestion
	if err := q.Find(&questions).Error; err != nil {
		log.Printf("Fetch true/false error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "questions": questions})
}

func UpdateTrueFalse(c *gin.Context) {
	var req trueFalsePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if msg, ok := validateTrueFalsePayload(req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
		return
	}

	var q models.TrueFalseQuestion
	if err := config.DB.First(&q, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
			return
		}
		log.Printf("Update true/false error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	q.Category = req.Category
	q.Question = req.Question
	q.Answer = req.Answer
	if err := config.DB.Save(&q).Error; err != nil {
		log.Printf("Update true/false error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question updated", "question": q})
}

type bulkUpdateTrueFalse struct {
	ID uint `json:"id"`
	trueFalsePayload
}

type bulkUpdateTrueFalseReq struct {
	Questions []bulkUpdateTrueFalse `json:"questions"`
}

func BulkUpdateTrueFalse(c *gin.Context) {
	var req bulkUpdateTrueFalseReq
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
		if msg, ok := validateTrueFalsePayload(p.trueFalsePayload); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
	}

	results := make([]gin.H, 0, len(req.Questions))
	for _, p := range req.Questions {
		var q models.TrueFalseQuestion
		if err := config.DB.First(&q, p.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Question not found"})
				continue
			}
			log.Printf("Bulk update true/false error: %v", err)
			results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Internal server error"})
			continue
		}

		q.Category = p.Category
		q.Question = p.Question
		q.Answer = p.Answer
		if err := config.DB.Save(&q).Error; err != nil {
			log.Printf("Bulk update true/false error: %v", err)
			results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Internal server error"})
			continue
		}
		results = append(results, gin.H{"id": p.ID, "ok": true})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bulk update finished", "results": results})
}

func DeleteTrueFalse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
		return
	}

	var q models.TrueFalseQuestion
	if err := config.DB.First(&q, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
			return
		}
		log.Printf("Delete true/false error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := config.DB.Delete(&q).Error; err != nil {
		log.Printf("Delete true/false error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question deleted"})
}
