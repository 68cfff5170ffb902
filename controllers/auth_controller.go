package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/middleware"
	"github.com/vnkhanh/question-bank-server/models"
	"github.com/vnkhanh/question-bank-server/utils"
)

type SignupReq struct {
	Name            string `json:"name" binding:"required,min=3,max=30"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=4,max=100"`
	Role            string `json:"role" binding:"required"`
	CanSeeMCQ       bool   `json:"canSeeMCQ"`
	CanSeeTrueFalse bool   `json:"canSeeTrueFalse"`
	CanSeeFillBlank bool   `json:"canSeeFillBlank"`
}

func Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !models.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role. Use 'admin' or 'student'."})
		return
	}

	var count int64
	if err := config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		log.Printf("Signup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User already exists, please log in."})
		return
	}
	if err := config.DB.Model(&models.User{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		log.Printf("Signup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Name already taken."})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	user := models.User{
		Name:            req.Name,
		Email:           req.Email,
		Password:        hash,
		Role:            req.Role,
		CanSeeMCQ:       req.CanSeeMCQ,
		CanSeeTrueFalse: req.CanSeeTrueFalse,
		CanSeeFillBlank: req.CanSeeFillBlank,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		// hai signup trùng nhau chạy song song: unique constraint là chốt chặn cuối
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User already exists, please log in."})
			return
		}
		log.Printf("Signup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Signup successful"})
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// Email sai và mật khẩu sai trả về cùng một thông báo
	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Auth failed, email or password is incorrect"})
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Auth failed, email or password is incorrect"})
		return
	}

	token, err := utils.GenerateToken(utils.JWTClaims{
		UserID:          fmt.Sprintf("%d", user.ID),
		Email:           user.Email,
		Role:            user.Role,
		CanSeeMCQ:       user.CanSeeMCQ,
		CanSeeTrueFalse: user.CanSeeTrueFalse,
		CanSeeFillBlank: user.CanSeeFillBlank,
	})
	if err != nil {
		// JWT_SECRET chưa thiết lập → fail closed
		log.Printf("Login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server configuration error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Login successful",
		"token":           token,
		"email":           user.Email,
		"role":            user.Role,
		"name":            user.Name,
		"canSeeMCQ":       user.CanSeeMCQ,
		"canSeeTrueFalse": user.CanSeeTrueFalse,
		"canSeeFillBlank": user.CanSeeFillBlank,
	})
}

type UpdateUserReq struct {
	Name  string `json:"name" binding:"required,min=3,max=30"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUser chỉ cho user tự sửa name/email của chính mình.
// Identity lấy từ claims, không lấy từ body; role và quyền không bao giờ đổi ở đây.
func UpdateUser(c *gin.Context) {
	user := c.MustGet(middleware.CtxUser).(models.User)

	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("email = ? AND id <> ?", req.Email, user.ID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already in use."})
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"email": req.Email,
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already in use."})
			return
		}
		log.Printf("Error updating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated successfully"})
}

// UserDetail trả về hồ sơ của chính user (password đã ẩn qua json:"-")
func UserDetail(c *gin.Context) {
	user := c.MustGet(middleware.CtxUser).(models.User)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
