package controllers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	config "github.com/astraclub/club-platform-go/config"
	models "github.com/astraclub/club-platform-go/models"
	utils "github.com/astraclub/club-platform-go/utils"
)

// ---------------- CREATE ----------------
// The contact path doubles as the registration fallback for events whose
// form is disabled.
func CreateContactMessage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name    string `json:"name" binding:"required"`
			Email   string `json:"email" binding:"required,email"`
			Subject string `json:"subject"`
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		message := models.ContactMessage{
			ID:        primitive.NewObjectID(),
			Name:      input.Name,
			Email:     input.Email,
			Subject:   input.Subject,
			Message:   input.Message,
			CreatedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("contact_messages")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save message"})
			return
		}

		// notify the club inbox, best-effort
		if inbox := os.Getenv("CONTACT_INBOX"); inbox != "" {
			body := fmt.Sprintf("<p><b>%s</b> (%s)</p><p>%s</p>", input.Name, input.Email, input.Message)
			if err := utils.SendEmail(inbox, "New contact message: "+input.Subject, body); err != nil {
				cfg.Logger.Warn("contact notification email failed", zap.Error(err))
			}
		}

		c.JSON(http.StatusCreated, gin.H{"id": message.ID.Hex(), "message": "message received"})
	}
}
