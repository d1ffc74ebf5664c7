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
	forms "github.com/astraclub/club-platform-go/forms"
	middleware "github.com/astraclub/club-platform-go/middleware"
	models "github.com/astraclub/club-platform-go/models"
	utils "github.com/astraclub/club-platform-go/utils"
)

// registration availability, checked in order: the open flag first, then the
// schema, matching the public registration page.
const (
	regClosed = "closed"
	regInert  = "inert"
	regOpen   = "open"
)

func registrationState(event models.Event) string {
	if !event.IsRegistrationOpen {
		return regClosed
	}
	if !event.FormSchema.Active() {
		return regInert
	}
	return regOpen
}

// ---------------- RENDER FORM ----------------
func GetRegistrationForm(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := loadEvent(cfg, c)
		if !ok {
			return
		}

		switch registrationState(event) {
		case regClosed:
			c.JSON(http.StatusOK, gin.H{"form": nil, "closed": true})
			return
		case regInert:
			// inert schema: registration goes through the contact page
			c.JSON(http.StatusOK, gin.H{"form": nil, "fallback": "contact"})
			return
		}

		controls := forms.Render(event.FormSchema, forms.NewState())
		c.JSON(http.StatusOK, gin.H{"form": controls, "event_title": event.Title})
	}
}

// ---------------- SUBMIT ----------------
func SubmitRegistration(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := loadEvent(cfg, c)
		if !ok {
			return
		}

		switch registrationState(event) {
		case regClosed:
			c.JSON(http.StatusConflict, gin.H{"error": "registration is closed"})
			return
		case regInert:
			c.JSON(http.StatusConflict, gin.H{"error": "registration form is not open", "fallback": "contact"})
			return
		}

		// --- Collect values and held files ---
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}
		state := forms.StateFromMultipart(event.FormSchema, form)

		// --- Validate every field before any upload ---
		if errs := forms.Validate(event.FormSchema, state); len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
			return
		}

		// --- Resolve file uploads and build the response map ---
		responses, err := forms.Assemble(c.Request.Context(), event.FormSchema, state,
			utils.CloudinaryUploader{}, event.ID.Hex())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		// --- Persist (status assigned here, never by the submitter) ---
		response := models.FormResponse{
			ID:          primitive.NewObjectID(),
			EventID:     event.ID,
			EventTitle:  event.Title,
			UserID:      submitterID(c),
			Responses:   responses,
			Status:      models.StatusPending,
			SubmittedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("form_responses")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, response); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save registration"})
			return
		}
		middleware.RecordRegistration()

		// --- Best-effort webhook relay; the stored response is the source of truth ---
		webhookSent := false
		if event.Webhook.Enabled && event.Webhook.URL != "" {
			result := utils.SendWebhook(c.Request.Context(), event.Webhook.URL, utils.WebhookPayload{
				EventID:     event.ID.Hex(),
				EventTitle:  event.Title,
				SubmittedAt: response.SubmittedAt.UTC().Format(time.RFC3339),
				Responses:   responses,
				ResponseID:  response.ID.Hex(),
			})
			webhookSent = result.Sent
			if result.Error != nil {
				middleware.RecordWebhookFailure()
				cfg.Logger.Warn("webhook relay failed, registration already saved",
					zap.String("event_id", event.ID.Hex()),
					zap.String("response_id", response.ID.Hex()),
					zap.Error(result.Error))
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":           response.ID.Hex(),
			"message":      "registration submitted",
			"webhook_sent": webhookSent,
		})
	}
}

// ---------------- LIST ----------------
func ListRegistrations(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("form_responses")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if eventID := c.Query("event_id"); eventID != "" {
			oid, err := primitive.ObjectIDFromHex(eventID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
				return
			}
			filter["event_id"] = oid
		}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch registrations"})
			return
		}

		var responses []models.FormResponse
		if err := cursor.All(ctx, &responses); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode registrations"})
			return
		}

		if len(responses) == 0 {
			c.JSON(http.StatusOK, []models.FormResponse{})
			return
		}
		c.JSON(http.StatusOK, responses)
	}
}

// ---------------- UPDATE STATUS ----------------
func UpdateRegistrationStatus(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending, approved or rejected"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("form_responses")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := col.UpdateOne(ctx, bson.M{"_id": oid},
			bson.M{"$set": bson.M{"status": input.Status}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update status"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": input.Status})
	}
}

// ---------------- DELETE ----------------
func DeleteRegistration(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("form_responses")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete registration"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "registration deleted"})
	}
}

// submitterID resolves the authenticated user, or nil for anonymous
// submissions.
func submitterID(c *gin.Context) *primitive.ObjectID {
	uid := c.GetString("user_id")
	if uid == "" {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil
	}
	return &oid
}
