package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	config "github.com/astraclub/club-platform-go/config"
	forms "github.com/astraclub/club-platform-go/forms"
	models "github.com/astraclub/club-platform-go/models"
	utils "github.com/astraclub/club-platform-go/utils"
)

// ---------------- CREATE ----------------
func CreateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields ---
		var input struct {
			Title              string  `form:"title" binding:"required"`
			Description        string  `form:"description"`
			Category           string  `form:"category"`
			Date               *string `form:"date"`
			Venue              string  `form:"venue"`
			RegistrationFee    float64 `form:"registration_fee"`
			MaxParticipants    int     `form:"max_participants"`
			IsRegistrationOpen bool    `form:"is_registration_open"`
			IsFeatured         bool    `form:"is_featured"`
			FormSchema         string  `form:"form_schema"`
			Webhook            string  `form:"webhook"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		date, err := parseEventDate(input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		schema, err := decodeSchema(input.FormSchema)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		webhook, err := decodeWebhook(input.Webhook)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// --- Handle cover image upload ---
		imageURL, err := uploadCoverImage(c, "events")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}

		// --- Save event ---
		now := time.Now()
		event := models.Event{
			ID:                 primitive.NewObjectID(),
			Title:              input.Title,
			Description:        input.Description,
			Category:           input.Category,
			Date:               date,
			Venue:              input.Venue,
			RegistrationFee:    input.RegistrationFee,
			MaxParticipants:    input.MaxParticipants,
			IsRegistrationOpen: input.IsRegistrationOpen,
			IsFeatured:         input.IsFeatured,
			ImageURL:           imageURL,
			FormSchema:         schema,
			Webhook:            webhook,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
			return
		}

		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- LIST ----------------
func ListEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if q := c.Query("q"); q != "" {
			filter["title"] = bson.M{"$regex": q, "$options": "i"}
		}
		if category := c.Query("category"); category != "" {
			filter["category"] = category
		}

		// --- Fetch data ---
		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode events"})
			return
		}

		if len(events) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		// --- Generate ETag from the most recently updated event ---
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, events)
	}
}

// ---------------- GET ----------------
func GetEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var event models.Event
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("events").
			FindOne(ctx, bson.M{"_id": eventID}).
			Decode(&event)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, event)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		if err := col.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		// --- Bind input (form-data for mixed text + file upload) ---
		var input struct {
			Title              string  `form:"title"`
			Description        string  `form:"description"`
			Category           string  `form:"category"`
			Date               *string `form:"date"`
			Venue              string  `form:"venue"`
			RegistrationFee    float64 `form:"registration_fee"`
			MaxParticipants    int     `form:"max_participants"`
			IsRegistrationOpen *bool   `form:"is_registration_open"`
			IsFeatured         *bool   `form:"is_featured"`
			FormSchema         string  `form:"form_schema"`
			Webhook            string  `form:"webhook"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}

		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.Category != "" {
			update["category"] = input.Category
		}
		if input.Venue != "" {
			update["venue"] = input.Venue
		}
		if input.RegistrationFee > 0 {
			update["registration_fee"] = input.RegistrationFee
		}
		if input.MaxParticipants > 0 {
			update["max_participants"] = input.MaxParticipants
		}
		if input.IsRegistrationOpen != nil {
			update["is_registration_open"] = *input.IsRegistrationOpen
		}
		if input.IsFeatured != nil {
			update["is_featured"] = *input.IsFeatured
		}
		if input.Date != nil && *input.Date != "" {
			date, err := parseEventDate(input.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			update["date"] = date
		}
		if input.FormSchema != "" {
			schema, err := decodeSchema(input.FormSchema)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			update["form_schema"] = schema
		}
		if input.Webhook != "" {
			webhook, err := decodeWebhook(input.Webhook)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			update["webhook"] = webhook
		}

		// --- Handle new cover image upload ---
		imageURL, err := uploadCoverImage(c, "events")
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

		if _, err := col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update event"})
			return
		}

		var updated models.Event
		if err := col.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "event updated successfully",
			"event":   updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		if _, err := col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete event"})
			return
		}

		// registrations live and die with their event
		respCol := cfg.MongoClient.Database(cfg.DBName).Collection("form_responses")
		if _, err := respCol.DeleteMany(ctx, bson.M{"event_id": oid}); err != nil {
			cfg.Logger.Warn("could not delete event registrations",
				zap.String("event_id", oid.Hex()), zap.Error(err))
		}

		if existing.ImageURL != "" {
			if err := utils.DeleteFromCloudinary(existing.ImageURL); err != nil {
				cfg.Logger.Warn("could not delete event image", zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
	}
}

// ---------------- helpers ----------------

func parseEventDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		// Try fallback formats
		layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
		for _, layout := range layouts {
			if t, e := time.Parse(layout, *raw); e == nil {
				parsed = t
				err = nil
				break
			}
		}
		if err != nil {
			return nil, fmt.Errorf("invalid date format, use RFC3339 or YYYY-MM-DD")
		}
	}
	return &parsed, nil
}

func decodeSchema(raw string) (forms.Schema, error) {
	var schema forms.Schema
	if raw == "" {
		return schema, nil
	}
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return schema, fmt.Errorf("invalid form_schema JSON")
	}
	if err := schema.Validate(); err != nil {
		return schema, err
	}
	return schema, nil
}

func decodeWebhook(raw string) (models.WebhookConfig, error) {
	var webhook models.WebhookConfig
	if raw == "" {
		return webhook, nil
	}
	if err := json.Unmarshal([]byte(raw), &webhook); err != nil {
		return webhook, fmt.Errorf("invalid webhook JSON")
	}
	return webhook, nil
}

func uploadCoverImage(c *gin.Context, folder string) (string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return "", nil
	}
	files := form.File["image"] // key must be "image"
	if len(files) == 0 {
		return "", nil
	}
	file, err := files[0].Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return utils.UploadImage(file, folder)
}
