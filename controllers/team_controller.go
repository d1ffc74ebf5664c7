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
func CreateTeamMember(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name  string `form:"name" binding:"required"`
			Role  string `form:"role"`
			Bio   string `form:"bio"`
			Order int    `form:"order"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		photoURL, err := uploadCoverImage(c, "team")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "photo upload failed", "details": err.Error()})
			return
		}

		now := time.Now()
		member := models.TeamMember{
			ID:        primitive.NewObjectID(),
			Name:      input.Name,
			Role:      input.Role,
			Bio:       input.Bio,
			PhotoURL:  photoURL,
			Order:     input.Order,
			CreatedAt: now,
			UpdatedAt: now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("team_members")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, member); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create team member"})
			return
		}

		c.JSON(http.StatusCreated, member)
	}
}

// ---------------- LIST ----------------
func ListTeamMembers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("team_members")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch team members"})
			return
		}

		var members []models.TeamMember
		if err := cursor.All(ctx, &members); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode team members"})
			return
		}

		if len(members) == 0 {
			c.JSON(http.StatusOK, []models.TeamMember{})
			return
		}
		c.JSON(http.StatusOK, members)
	}
}

// ---------------- UPDATE ----------------
func UpdateTeamMember(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
			return
		}

		var input struct {
			Name  string `form:"name"`
			Role  string `form:"role"`
			Bio   string `form:"bio"`
			Order *int   `form:"order"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Role != "" {
			update["role"] = input.Role
		}
		if input.Bio != "" {
			update["bio"] = input.Bio
		}
		if input.Order != nil {
			update["order"] = *input.Order
		}

		photoURL, err := uploadCoverImage(c, "team")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "photo upload failed", "details": err.Error()})
			return
		}
		if photoURL != "" {
			update["photo_url"] = photoURL
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("team_members")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update team member"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "team member not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "team member updated"})
	}
}

// ---------------- DELETE ----------------
func DeleteTeamMember(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("team_members")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete team member"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "team member not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "team member deleted"})
	}
}
