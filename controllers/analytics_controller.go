package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/astraclub/club-platform-go/config"
)

// ---------------- COUNTS ----------------
func GetAnalytics(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		users, err := db.Collection("users").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count users"})
			return
		}
		events, err := db.Collection("events").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count events"})
			return
		}
		registrations, err := db.Collection("form_responses").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count registrations"})
			return
		}
		pending, err := db.Collection("form_responses").CountDocuments(ctx, bson.M{"status": "pending"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count pending registrations"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_users":           users,
			"total_events":          events,
			"total_registrations":   registrations,
			"pending_registrations": pending,
		})
	}
}
