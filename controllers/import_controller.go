package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/models"
)

// readImportRows đọc sheet đầu tiên của file xlsx upload, map theo header row.
// Header so khớp lowercase: category | question | option1..option4 | answer
func readImportRows(c *gin.Context) ([]map[string]string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("Missing file upload")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("Cannot open uploaded file")
	}
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	if err != nil {
		return nil, errors.New("File is not a valid xlsx workbook")
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("Workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		return nil, errors.New("Sheet must have a header row and at least one data row")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := map[string]string{}
		for i, cell := range row {
			if i < len(header) && header[i] != "" {
				m[header[i]] = strings.TrimSpace(cell)
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// ImportQuestions nhập câu hỏi MCQ từ file xlsx (admin only), all-or-nothing
func ImportQuestions(c *gin.Context) {
	rows, err := readImportRows(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	batch := make([]models.Question, 0, len(rows))
	for _, r := range rows {
		p := questionPayload{
			Category: r["category"],
			Question: r["question"],
			Options:  []string{r["option1"], r["option2"], r["option3"], r["option4"]},
			Answer:   r["answer"],
		}
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
		log.Printf("Import questions error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Questions imported successfully", "imported": len(batch)})
}

// ImportTrueFalse nhập câu hỏi đúng/sai từ file xlsx (admin only)
func ImportTrueFalse(c *gin.Context) {
	rows, err := readImportRows(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	batch := make([]models.TrueFalseQuestion, 0, len(rows))
	for _, r := range rows {
		p := trueFalsePayload{Category: r["category"], Question: r["question"], Answer: r["answer"]}
		if msg, ok := validateTrueFalsePayload(p); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		batch = append(batch, models.TrueFalseQuestion{Category: p.Category, Question: p.Question, Answer: p.Answer})
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&batch).Error
	}); err != nil {
		log.Printf("Import true/false error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Questions imported successfully", "imported": len(batch)})
}

// ImportFillBlank nhập câu hỏi điền khuyết từ file xlsx (admin only)
func ImportFillBlank(c *gin.Context) {
	rows, err := readImportRows(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	batch := make([]models.FillBlankQuestion, 0, len(rows))
	for _, r := range rows {
		p := fillBlankPayload{Category: r["category"], Question: r["question"], Answer: r["answer"]}
		if msg, ok := validateFillBlankPayload(p); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		batch = append(batch, models.FillBlankQuestion{Category: p.Category, Question: p.Question, Answer: p.Answer})
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&batch).Error
	}); err != nil {
		log.Printf("Import fill-blank error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Questions imported successfully", "imported": len(batch)})
}
