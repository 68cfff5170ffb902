package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/models"
)

// parseIDParam đọc :id dạng số; id không phải số coi như không tồn tại
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil
}

type questionPayload struct {
	Category string   `json:"category"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// validateQuestionPayload: category/question/answer không rỗng, đúng 4 option không rỗng
func validateQuestionPayload(p questionPayload) (string, bool) {
	if strings.TrimSpace(p.Category) == "" ||
		strings.TrimSpace(p.Question) == "" ||
		strings.TrimSpace(p.Answer) == "" {
		return "All fields (category, question, options, answer) are required", false
	}
	if len(p.Options) != 4 {
		return "Each question must have exactly 4 options", false
	}
	for _, opt := range p.Options {
		if strings.TrimSpace(opt) == "" {
			return "Options must not be empty", false
		}
	}
	return "", true
}

// AddQuestion thêm một câu hỏi MCQ (admin only)
func AddQuestion(c *gin.Context) {
	var req questionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if msg, ok := validateQuestionPayload(req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	q := models.Question{
		Category: req.Category,
		Question: req.Question,
		Options:  models.StringList(req.Options),
		Answer:   req.Answer,
	}
	if err := config.DB.Create(&q).Error; err != nil {
		log.Printf("Add question error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Question added successfully"})
}

type bulkQuestionsReq struct {
	Questions []questionPayload `json:"questions"`
}

// BulkAddQuestions: validate toàn bộ batch trước, một phần tử sai thì không insert gì cả
func BulkAddQuestions(c *gin.Context) {
	var req bulkQuestionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Questions must be a non-empty array"})
		return
	}

	batch := make([]models.Question, 0, len(req.Questions))
	for _, p := range req.Questions {
		if msg, ok := validateQuestionPayload(p); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		batch = append(batch, models.Question{
			Category: p.Category,
			Question: p.Question,
			Options:  models.StringList(p.Options),
			Answer:   p.Answer,
		})
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&batch).Error
	}); err != nil {
		log.Printf("Bulk add error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Questions added successfully"})
}

// ListQuestions trả về toàn bộ câu hỏi MCQ.
// ?category= lọc case-insensitive ngay trong query.
func ListQuestions(c *gin.Context) {
	q := config.DB.Model(&models.Question{})
	if cat := c.Query("category"); cat != "" {
		q = q.Where("LOWER(category) = LOWER(?)", cat)
	}

	var questions []models.Question
	if err := q.Find(&questions).Error; err != nil {
		log.Printf("Fetch questions error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "questions": questions})
}

// UpdateQuestion cập nhật một câu hỏi theo id
func UpdateQuestion(c *gin.Context) {
	var req questionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if msg, ok := validateQuestionPayload(req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
		return
	}

	var q models.Question
	if err := config.DB.First(&q, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
			return
		}
		log.Printf("Update question error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	q.Category = req.Category
	q.Question = req.Question
	q.Options = models.StringList(req.Options)
	q.Answer = req.Answer
	if err := config.DB.Save(&q).Error; err != nil {
		log.Printf("Update question error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question updated successfully", "question": q})
}

type bulkUpdateQuestion struct {
	ID uint `json:"id"`
	questionPayload
}

type bulkUpdateQuestionsReq struct {
	Questions []bulkUpdateQuestion `json:"questions"`
}

// BulkUpdateQuestions áp dụng N update độc lập và báo kết quả từng phần tử
func BulkUpdateQuestions(c *gin.Context) {
	var req bulkUpdateQuestionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Questions must be a non-empty array"})
		return
	}

	// Shape sai ở bất kỳ phần tử nào → từ chối cả batch
	for _, p := range req.Questions {
		if p.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Each question must have an id"})
			return
		}
		if msg, ok := validateQuestionPayload(p.questionPayload); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
	}

	results := make([]gin.H, 0, len(req.Questions))
	for _, p := range req.Questions {
		var q models.Question
		if err := config.DB.First(&q, p.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Question not found"})
				continue
			}
			log.Printf("Bulk update error: %v", err)
			results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Internal server error"})
			continue
		}

		q.Category = p.Category
		q.Question = p.Question
		q.Options = models.StringList(p.Options)
		q.Answer = p.Answer
		if err := config.DB.Save(&q).Error; err != nil {
			log.Printf("Bulk update error: %v", err)
			results = append(results, gin.H{"id": p.ID, "ok": false, "message": "Internal server error"})
			continue
		}
		results = append(results, gin.H{"id": p.ID, "ok": true})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bulk update finished", "results": results})
}

// DeleteQuestion xoá một câu hỏi theo id
func DeleteQuestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
		return
	}

	var q models.Question
	if err := config.DB.First(&q, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
			return
		}
		log.Printf("Delete question error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := config.DB.Delete(&q).Error; err != nil {
		log.Printf("Delete question error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question deleted successfully"})
}
