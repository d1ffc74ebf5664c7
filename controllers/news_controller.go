package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/astraclub/club-platform-go/config"
	models "github.com/astraclub/club-platform-go/models"
)

// ---------------- CREATE ----------------
func CreateNews(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title       string  `form:"title" binding:"required"`
			Content     string  `form:"content"`
			PublishDate *string `form:"publish_date"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		publishDate := time.Now()
		if parsed, err := parseEventDate(input.PublishDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		} else if parsed != nil {
			publishDate = *parsed
		}

		imageURL, err := uploadCoverImage(c, "news")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}

		now := time.Now()
		post := models.NewsPost{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Content:     input.Content,
			ImageURL:    imageURL,
			PublishDate: publishDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("news")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, post); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create news post"})
			return
		}

		c.JSON(http.StatusCreated, post)
	}
}

// ---------------- LIST ----------------
func ListNews(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("news")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "publish_date", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch news"})
			return
		}

		var posts []models.NewsPost
		if err := cursor.All(ctx, &posts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode news"})
			return
		}

		if len(posts) == 0 {
			c.JSON(http.StatusOK, []models.NewsPost{})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// ---------------- UPDATE ----------------
func UpdateNews(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
			return
		}

		var input struct {
			Title       string  `form:"title"`
			Content     string  `form:"content"`
			PublishDate *string `form:"publish_date"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Content != "" {
			update["content"] = input.Content
		}
		if parsed, err := parseEventDate(input.PublishDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		} else if parsed != nil {
			update["publish_date"] = *parsed
		}

		imageURL, err := uploadCoverImage(c, "news")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}
		if imageURL != "" {
			update["image_url"] = imageURL
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("news")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update news post"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "news post not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "news post updated"})
	}
}

// ---------------- DELETE ----------------
func DeleteNews(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("news")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete news post"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "news post not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "news post deleted"})
	}
}
