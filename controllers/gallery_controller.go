package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/astraclub/club-platform-go/config"
	models "github.com/astraclub/club-platform-go/models"
	utils "github.com/astraclub/club-platform-go/utils"
)

// ---------------- CREATE ----------------
func CreateGalleryImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title string `form:"title"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		imageURL, err := uploadCoverImage(c, "gallery")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}
		if imageURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		image := models.GalleryImage{
			ID:        primitive.NewObjectID(),
			Title:     input.Title,
			ImageURL:  imageURL,
			CreatedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("gallery_images")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, image); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save gallery image"})
			return
		}

		c.JSON(http.StatusCreated, image)
	}
}

// ---------------- LIST ----------------
func ListGalleryImages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("gallery_images")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch gallery"})
			return
		}

		var images []models.GalleryImage
		if err := cursor.All(ctx, &images); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode gallery"})
			return
		}

		if len(images) == 0 {
			c.JSON(http.StatusOK, []models.GalleryImage{})
			return
		}
		c.JSON(http.StatusOK, images)
	}
}

// ---------------- DELETE ----------------
func DeleteGalleryImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("gallery_images")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.GalleryImage
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "gallery image not found"})
			return
		}

		if _, err := col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete gallery image"})
			return
		}

		if err := utils.DeleteFromCloudinary(existing.ImageURL); err != nil {
			cfg.Logger.Warn("could not delete gallery asset", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"message": "gallery image deleted"})
	}
}
