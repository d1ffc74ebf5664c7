package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/astraclub/club-platform-go/config"
	forms "github.com/astraclub/club-platform-go/forms"
	models "github.com/astraclub/club-platform-go/models"
)

// The builder endpoints load the event's schema, apply one mutation through
// forms.Builder and persist the snapshot the builder emits. The event always
// holds the current {enabled, fields} pair; there is no separate save step.

// ---------------- REPLACE SCHEMA ----------------
func SaveFormSchema(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var schema forms.Schema
		if err := c.ShouldBindJSON(&schema); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := schema.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := persistSchema(cfg, oid, schema); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, schema)
	}
}

// ---------------- ADD FIELD ----------------
func AddFormField(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Type forms.FieldType `json:"type" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !input.Type.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field type"})
			return
		}

		var added forms.Field
		runBuilder(cfg, c, func(b *forms.Builder) {
			added = b.AddField(input.Type)
		}, func() {
			c.JSON(http.StatusCreated, added)
		})
	}
}

// ---------------- UPDATE FIELD ----------------
func UpdateFormField(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd forms.FieldUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fieldID := c.Param("fieldId")
		var schema forms.Schema
		runBuilder(cfg, c, func(b *forms.Builder) {
			b.UpdateField(fieldID, upd)
			schema = b.Schema()
		}, func() {
			c.JSON(http.StatusOK, schema)
		})
	}
}

// ---------------- DELETE FIELD ----------------
func DeleteFormField(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		fieldID := c.Param("fieldId")
		var schema forms.Schema
		runBuilder(cfg, c, func(b *forms.Builder) {
			b.DeleteField(fieldID)
			schema = b.Schema()
		}, func() {
			c.JSON(http.StatusOK, schema)
		})
	}
}

// ---------------- MOVE FIELD ----------------
func MoveFormField(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Direction forms.Direction `json:"direction" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Direction != forms.MoveUp && input.Direction != forms.MoveDown {
			c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
			return
		}

		fieldID := c.Param("fieldId")
		var schema forms.Schema
		runBuilder(cfg, c, func(b *forms.Builder) {
			b.MoveField(fieldID, input.Direction)
			schema = b.Schema()
		}, func() {
			c.JSON(http.StatusOK, schema)
		})
	}
}

// ---------------- TOGGLE ENABLED ----------------
func SetFormEnabled(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Enabled *bool `json:"enabled" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var schema forms.Schema
		runBuilder(cfg, c, func(b *forms.Builder) {
			b.SetEnabled(*input.Enabled)
			schema = b.Schema()
		}, func() {
			c.JSON(http.StatusOK, schema)
		})
	}
}

// ---------------- PREVIEW ----------------
func PreviewForm(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := loadEvent(cfg, c)
		if !ok {
			return
		}
		controls := forms.Preview(event.FormSchema)
		if controls == nil {
			c.JSON(http.StatusOK, gin.H{"form": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"form": controls, "enabled": event.FormSchema.Enabled})
	}
}

// ---------------- helpers ----------------

func loadEvent(cfg *config.Config, c *gin.Context) (models.Event, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return models.Event{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var event models.Event
	err = cfg.MongoClient.Database(cfg.DBName).
		Collection("events").
		FindOne(ctx, bson.M{"_id": oid}).
		Decode(&event)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return models.Event{}, false
	}
	return event, true
}

// runBuilder loads the schema, applies op through a Builder whose change
// notification persists the snapshot, then writes the success response.
func runBuilder(cfg *config.Config, c *gin.Context, op func(*forms.Builder), respond func()) {
	event, ok := loadEvent(cfg, c)
	if !ok {
		return
	}

	var saveErr error
	builder := forms.NewBuilder(event.FormSchema, func(schema forms.Schema) {
		saveErr = persistSchema(cfg, event.ID, schema)
	})

	op(builder)

	if saveErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": saveErr.Error()})
		return
	}
	respond()
}

func persistSchema(cfg *config.Config, eventID primitive.ObjectID, schema forms.Schema) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
	_, err := col.UpdateOne(ctx, bson.M{"_id": eventID}, bson.M{"$set": bson.M{
		"form_schema": schema,
		"updated_at":  time.Now(),
	}})
	return err
}
